package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"rolepanel/apperr"
	"rolepanel/models"
)

const (
	// MaxRolesPerPanel caps how many roles one panel can hold. Discord
	// select menus accept at most 25 options.
	MaxRolesPerPanel = 25

	// MaxPanelNameLength caps the panel name length
	MaxPanelNameLength = 100

	// MaxRoleLabelLength caps the per-role label length, matching the
	// Discord button label limit
	MaxRoleLabelLength = 80
)

// panelService implements the PanelService interface
type panelService struct {
	panelRepo     PanelRepository
	panelRoleRepo PanelRoleRepository
	discord       Discord
}

// NewPanelService creates a new panel service
func NewPanelService(panelRepo PanelRepository, panelRoleRepo PanelRoleRepository, discord Discord) PanelService {
	return &panelService{
		panelRepo:     panelRepo,
		panelRoleRepo: panelRoleRepo,
		discord:       discord,
	}
}

// validatePanelName trims and checks a panel name, returning the
// cleaned value.
func validatePanelName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.InvalidInput("Panel name cannot be empty.")
	}
	if len([]rune(name)) > MaxPanelNameLength {
		return "", apperr.InvalidInput("Panel name is too long (100 characters max).")
	}
	return name, nil
}

// CreatePanel creates an empty panel after validating the name
func (s *panelService) CreatePanel(ctx context.Context, guildID int64, name string, description *string) (*models.Panel, error) {
	name, err := validatePanelName(name)
	if err != nil {
		return nil, err
	}

	exists, err := s.panelRepo.ExistsByGuildAndName(ctx, guildID, name)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if exists {
		return nil, apperr.NameExists()
	}

	panel, err := s.panelRepo.Create(ctx, guildID, name, description)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return panel, nil
}

// GetPanel retrieves a panel and verifies it belongs to the guild.
// A panel from another guild is reported as not found rather than
// leaking its existence.
func (s *panelService) GetPanel(ctx context.Context, panelID uuid.UUID, guildID int64) (*models.Panel, error) {
	panel, err := s.panelRepo.FindByID(ctx, panelID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if panel == nil || panel.GuildID != guildID {
		return nil, apperr.NotFound("Panel")
	}
	return panel, nil
}

// GetPanelByName retrieves a panel by name within a guild
func (s *panelService) GetPanelByName(ctx context.Context, guildID int64, name string) (*models.Panel, error) {
	panel, err := s.panelRepo.FindByGuildAndName(ctx, guildID, strings.TrimSpace(name))
	if err != nil {
		return nil, apperr.Database(err)
	}
	if panel == nil {
		return nil, apperr.NotFound("Panel")
	}
	return panel, nil
}

// ListPanels returns all panels in a guild
func (s *panelService) ListPanels(ctx context.Context, guildID int64) ([]*models.Panel, error) {
	panels, err := s.panelRepo.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return panels, nil
}

// UpdatePanel applies a partial update, revalidating the name on rename
func (s *panelService) UpdatePanel(ctx context.Context, panelID uuid.UUID, guildID int64, update *models.PanelUpdate) (*models.Panel, error) {
	panel, err := s.GetPanel(ctx, panelID, guildID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name, err := validatePanelName(*update.Name)
		if err != nil {
			return nil, err
		}
		update.Name = &name

		if name != panel.Name {
			exists, err := s.panelRepo.ExistsByGuildAndName(ctx, guildID, name)
			if err != nil {
				return nil, apperr.Database(err)
			}
			if exists {
				return nil, apperr.NameExists()
			}
		}
	}

	updated, err := s.panelRepo.Update(ctx, panelID, update)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if updated == nil {
		return nil, apperr.NotFound("Panel")
	}
	return updated, nil
}

// DeletePanel removes a panel, deleting its posted message best effort
func (s *panelService) DeletePanel(ctx context.Context, panelID uuid.UUID, guildID int64) error {
	panel, err := s.GetPanel(ctx, panelID, guildID)
	if err != nil {
		return err
	}

	if panel.IsPosted() {
		if err := s.discord.ChannelMessageDelete(*panel.ChannelID, *panel.MessageID); err != nil {
			// The message may already be gone. The panel record is the
			// source of truth, so keep going.
			log.WithFields(log.Fields{
				"panel_id":   panel.ID,
				"channel_id": *panel.ChannelID,
				"message_id": *panel.MessageID,
				"error":      err,
			}).Warn("Failed to delete posted panel message")
		}
	}

	if err := s.panelRepo.Delete(ctx, panelID); err != nil {
		return apperr.Database(err)
	}
	return nil
}

// AddRole attaches a role to a panel, enforcing the 25 role cap
func (s *panelService) AddRole(ctx context.Context, panelID uuid.UUID, guildID, roleID int64, label string, emoji, description *string) (*models.PanelRole, error) {
	if _, err := s.GetPanel(ctx, panelID, guildID); err != nil {
		return nil, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, apperr.InvalidInput("Role label cannot be empty.")
	}
	if len([]rune(label)) > MaxRoleLabelLength {
		return nil, apperr.InvalidInput("Role label is too long (80 characters max).")
	}

	existing, err := s.panelRoleRepo.FindByPanelAndRole(ctx, panelID, roleID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if existing != nil {
		return nil, apperr.InvalidInput("That role is already on the panel.")
	}

	count, err := s.panelRoleRepo.CountByPanel(ctx, panelID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	if count >= MaxRolesPerPanel {
		return nil, apperr.LimitExceeded("Role")
	}

	maxPos, err := s.panelRoleRepo.GetMaxPosition(ctx, panelID)
	if err != nil {
		return nil, apperr.Database(err)
	}

	role, err := s.panelRoleRepo.Create(ctx, panelID, roleID, label, emoji, description, maxPos+1)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return role, nil
}

// RemoveRole detaches a role from a panel
func (s *panelService) RemoveRole(ctx context.Context, panelID uuid.UUID, guildID, roleID int64) error {
	if _, err := s.GetPanel(ctx, panelID, guildID); err != nil {
		return err
	}

	existing, err := s.panelRoleRepo.FindByPanelAndRole(ctx, panelID, roleID)
	if err != nil {
		return apperr.Database(err)
	}
	if existing == nil {
		return apperr.NotFound("Role")
	}

	if err := s.panelRoleRepo.DeleteByPanelAndRole(ctx, panelID, roleID); err != nil {
		return apperr.Database(err)
	}
	return nil
}

// ListRoles returns a panel's roles in display order
func (s *panelService) ListRoles(ctx context.Context, panelID uuid.UUID) ([]*models.PanelRole, error) {
	roles, err := s.panelRoleRepo.ListByPanel(ctx, panelID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return roles, nil
}

// PostPanel publishes a panel message to a channel
func (s *panelService) PostPanel(ctx context.Context, panelID uuid.UUID, guildID, channelID int64, message *discordgo.MessageSend) (*models.Panel, error) {
	panel, err := s.GetPanel(ctx, panelID, guildID)
	if err != nil {
		return nil, err
	}

	if panel.IsPosted() && *panel.ChannelID == channelID {
		// Reposting into the same channel updates the message in place
		// so members keep their link to it.
		if _, err := s.discord.ChannelMessageEditComplex(channelID, *panel.MessageID, message.Embeds, message.Components); err != nil {
			return nil, apperr.Discord(err)
		}
		return panel, nil
	}

	if panel.IsPosted() {
		// Moving channels leaves a stale message behind. Remove it best
		// effort before posting the replacement.
		if err := s.discord.ChannelMessageDelete(*panel.ChannelID, *panel.MessageID); err != nil {
			log.WithFields(log.Fields{
				"panel_id":   panel.ID,
				"channel_id": *panel.ChannelID,
				"message_id": *panel.MessageID,
				"error":      err,
			}).Warn("Failed to delete panel message in old channel")
		}
	}

	posted, err := s.discord.ChannelMessageSendComplex(channelID, message)
	if err != nil {
		return nil, apperr.Discord(err)
	}

	messageID, err := snowflakeToInt64(posted.ID)
	if err != nil {
		return nil, apperr.Internal("posted message has malformed ID: " + posted.ID)
	}

	chPtr := &channelID
	msgPtr := &messageID
	updated, err := s.panelRepo.Update(ctx, panelID, &models.PanelUpdate{
		ChannelID: &chPtr,
		MessageID: &msgPtr,
	})
	if err != nil {
		return nil, apperr.Database(err)
	}
	if updated == nil {
		return nil, apperr.NotFound("Panel")
	}
	return updated, nil
}

// SearchPanelNames returns panel names matching a prefix, for autocomplete
func (s *panelService) SearchPanelNames(ctx context.Context, guildID int64, prefix string, limit int) ([]string, error) {
	names, err := s.panelRepo.SearchByNamePrefix(ctx, guildID, strings.TrimSpace(prefix), limit)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return names, nil
}
