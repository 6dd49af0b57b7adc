package service

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"rolepanel/models"
)

// PanelRepository defines the interface for panel data access
type PanelRepository interface {
	// Create creates a new panel with default style and color
	Create(ctx context.Context, guildID int64, name string, description *string) (*models.Panel, error)

	// FindByID retrieves a panel by its ID, nil if absent
	FindByID(ctx context.Context, id uuid.UUID) (*models.Panel, error)

	// FindByGuildAndName retrieves a panel by guild and name, nil if absent
	FindByGuildAndName(ctx context.Context, guildID int64, name string) (*models.Panel, error)

	// FindByMessageID retrieves the panel posted as the given message, nil if absent
	FindByMessageID(ctx context.Context, messageID int64) (*models.Panel, error)

	// ListByGuild returns all panels in a guild ordered by name
	ListByGuild(ctx context.Context, guildID int64) ([]*models.Panel, error)

	// Update applies the given partial update, nil if the panel is gone
	Update(ctx context.Context, id uuid.UUID, update *models.PanelUpdate) (*models.Panel, error)

	// Delete removes a panel and cascades to its roles
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByGuildAndName reports whether a guild already has a panel with the name
	ExistsByGuildAndName(ctx context.Context, guildID int64, name string) (bool, error)

	// SearchByNamePrefix returns panel names matching a prefix, for autocomplete
	SearchByNamePrefix(ctx context.Context, guildID int64, prefix string, limit int) ([]string, error)
}

// PanelRoleRepository defines the interface for panel role data access
type PanelRoleRepository interface {
	// Create adds a role entry to a panel
	Create(ctx context.Context, panelID uuid.UUID, roleID int64, label string, emoji, description *string, position int32) (*models.PanelRole, error)

	// FindByPanelAndRole retrieves a panel's entry for a role, nil if absent
	FindByPanelAndRole(ctx context.Context, panelID uuid.UUID, roleID int64) (*models.PanelRole, error)

	// ListByPanel returns a panel's roles ordered by position
	ListByPanel(ctx context.Context, panelID uuid.UUID) ([]*models.PanelRole, error)

	// CountByPanel returns how many roles a panel holds
	CountByPanel(ctx context.Context, panelID uuid.UUID) (int64, error)

	// GetMaxPosition returns the highest position in a panel, 0 when empty
	GetMaxPosition(ctx context.Context, panelID uuid.UUID) (int32, error)

	// DeleteByPanelAndRole removes a single role entry from a panel
	DeleteByPanelAndRole(ctx context.Context, panelID uuid.UUID, roleID int64) error
}

// GuildConfigRepository defines the interface for per-guild settings
type GuildConfigRepository interface {
	// FindByGuild retrieves a guild's config, nil if never configured
	FindByGuild(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// SetAuditChannel upserts the audit channel for a guild
	SetAuditChannel(ctx context.Context, guildID int64, channelID *int64) (*models.GuildConfig, error)
}

// Discord abstracts the gateway session operations the services need.
// IDs are int64 to match the data model; the session adapter converts
// to Discord's string snowflakes at the boundary.
type Discord interface {
	// BotUserID returns the bot's own user ID from the gateway session state
	BotUserID() int64

	// GuildRoles returns all roles in a guild
	GuildRoles(guildID int64) ([]*discordgo.Role, error)

	// GuildMember returns a member of a guild
	GuildMember(guildID, userID int64) (*discordgo.Member, error)

	// GuildMemberRoleAdd grants a role to a member
	GuildMemberRoleAdd(guildID, userID, roleID int64) error

	// GuildMemberRoleRemove revokes a role from a member
	GuildMemberRoleRemove(guildID, userID, roleID int64) error

	// GuildChannels returns all channels in a guild
	GuildChannels(guildID int64) ([]*discordgo.Channel, error)

	// ChannelMessageSendComplex posts a message with embeds and components
	ChannelMessageSendComplex(channelID int64, data *discordgo.MessageSend) (*discordgo.Message, error)

	// ChannelMessageEditComplex edits a previously posted message
	ChannelMessageEditComplex(channelID, messageID int64, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) (*discordgo.Message, error)

	// ChannelMessageDelete deletes a message
	ChannelMessageDelete(channelID, messageID int64) error
}

// PanelService defines the interface for panel lifecycle operations
type PanelService interface {
	// CreatePanel creates an empty panel after validating the name
	CreatePanel(ctx context.Context, guildID int64, name string, description *string) (*models.Panel, error)

	// GetPanel retrieves a panel and verifies it belongs to the guild
	GetPanel(ctx context.Context, panelID uuid.UUID, guildID int64) (*models.Panel, error)

	// GetPanelByName retrieves a panel by name within a guild
	GetPanelByName(ctx context.Context, guildID int64, name string) (*models.Panel, error)

	// ListPanels returns all panels in a guild
	ListPanels(ctx context.Context, guildID int64) ([]*models.Panel, error)

	// UpdatePanel applies a partial update, revalidating the name on rename
	UpdatePanel(ctx context.Context, panelID uuid.UUID, guildID int64, update *models.PanelUpdate) (*models.Panel, error)

	// DeletePanel removes a panel, deleting its posted message best effort
	DeletePanel(ctx context.Context, panelID uuid.UUID, guildID int64) error

	// AddRole attaches a role to a panel, enforcing the 25 role cap
	AddRole(ctx context.Context, panelID uuid.UUID, guildID, roleID int64, label string, emoji, description *string) (*models.PanelRole, error)

	// RemoveRole detaches a role from a panel
	RemoveRole(ctx context.Context, panelID uuid.UUID, guildID, roleID int64) error

	// ListRoles returns a panel's roles in display order
	ListRoles(ctx context.Context, panelID uuid.UUID) ([]*models.PanelRole, error)

	// PostPanel publishes a panel message to a channel. A panel already
	// posted in the same channel is edited in place; moving channels
	// deletes the old message first.
	PostPanel(ctx context.Context, panelID uuid.UUID, guildID, channelID int64, message *discordgo.MessageSend) (*models.Panel, error)

	// SearchPanelNames returns panel names matching a prefix, for autocomplete
	SearchPanelNames(ctx context.Context, guildID int64, prefix string, limit int) ([]string, error)
}

// SyncResult reports the outcome of reconciling a member's roles
// against their panel selection.
type SyncResult struct {
	Added   []models.RoleChange
	Removed []models.RoleChange
	Skipped []models.RoleChange
}

// Changed reports whether the sync touched any role.
func (r *SyncResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// RoleService defines the interface for member role operations
type RoleService interface {
	// Toggle grants the role if the member lacks it, revokes it otherwise.
	// Returns whether the role was added and its panel label.
	Toggle(ctx context.Context, panelID uuid.UUID, guildID, userID, roleID int64) (bool, string, error)

	// Sync reconciles the member's roles with the selected set, granting
	// missing selections and revoking deselected panel roles. Roles that
	// fail validation are skipped without aborting the rest.
	Sync(ctx context.Context, panelID uuid.UUID, guildID, userID int64, selected []int64) (*SyncResult, error)
}

// AuditLogger defines the interface for recording role changes to a
// guild's audit channel. All methods are no-ops when no channel is set.
type AuditLogger interface {
	// LogRoleAdded records a single role grant
	LogRoleAdded(ctx context.Context, guildID, userID int64, panel *models.Panel, change models.RoleChange)

	// LogRoleRemoved records a single role revocation
	LogRoleRemoved(ctx context.Context, guildID, userID int64, panel *models.Panel, change models.RoleChange)

	// LogSync records the outcome of a bulk reconciliation
	LogSync(ctx context.Context, guildID, userID int64, panel *models.Panel, result *SyncResult)
}

// GuildConfigService defines the interface for guild settings operations
type GuildConfigService interface {
	// GetConfig returns a guild's config, nil when never configured
	GetConfig(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// SetAuditChannel sets or clears the audit channel for a guild
	SetAuditChannel(ctx context.Context, guildID int64, channelID *int64) (*models.GuildConfig, error)
}
