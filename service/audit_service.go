package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"rolepanel/models"
)

// Embed accent colors for audit entries.
const (
	colorRoleAdded   = 0x57F287
	colorRoleRemoved = 0xED4245
	colorRoleSync    = 0x5865F2
)

// auditService implements the AuditLogger interface. Entries go to the
// guild's configured audit channel. Guilds without one get no entries,
// and a failed delivery never fails the role change that triggered it.
type auditService struct {
	configRepo GuildConfigRepository
	discord    Discord
}

// NewAuditService creates a new audit logger
func NewAuditService(configRepo GuildConfigRepository, discord Discord) AuditLogger {
	return &auditService{
		configRepo: configRepo,
		discord:    discord,
	}
}

// auditChannel returns the guild's audit channel ID, or 0 when none is
// configured.
func (s *auditService) auditChannel(ctx context.Context, guildID int64) int64 {
	config, err := s.configRepo.FindByGuild(ctx, guildID)
	if err != nil {
		log.WithFields(log.Fields{
			"guild_id": guildID,
			"error":    err,
		}).Warn("Failed to load guild config for audit entry")
		return 0
	}
	if config == nil || config.AuditChannelID == nil {
		return 0
	}
	return *config.AuditChannelID
}

func (s *auditService) send(guildID, channelID int64, embed *discordgo.MessageEmbed) {
	_, err := s.discord.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		log.WithFields(log.Fields{
			"guild_id":   guildID,
			"channel_id": channelID,
			"error":      err,
		}).Warn("Failed to deliver audit entry")
	}
}

func auditEmbed(title string, color int, userID int64, panel *models.Panel) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: title,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: fmt.Sprintf("<@%d>", userID), Inline: true},
			{Name: "Panel", Value: panel.Name, Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Role Panels"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func formatChanges(changes []models.RoleChange) string {
	parts := make([]string, len(changes))
	for i, c := range changes {
		parts[i] = fmt.Sprintf("<@&%d> (%s)", c.RoleID, c.Label)
	}
	return strings.Join(parts, "\n")
}

// LogRoleAdded records a single role grant
func (s *auditService) LogRoleAdded(ctx context.Context, guildID, userID int64, panel *models.Panel, change models.RoleChange) {
	channelID := s.auditChannel(ctx, guildID)
	if channelID == 0 {
		return
	}

	embed := auditEmbed("Role Added", colorRoleAdded, userID, panel)
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Role",
		Value: formatChanges([]models.RoleChange{change}),
	})
	s.send(guildID, channelID, embed)
}

// LogRoleRemoved records a single role revocation
func (s *auditService) LogRoleRemoved(ctx context.Context, guildID, userID int64, panel *models.Panel, change models.RoleChange) {
	channelID := s.auditChannel(ctx, guildID)
	if channelID == 0 {
		return
	}

	embed := auditEmbed("Role Removed", colorRoleRemoved, userID, panel)
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Role",
		Value: formatChanges([]models.RoleChange{change}),
	})
	s.send(guildID, channelID, embed)
}

// LogSync records the outcome of a bulk reconciliation. A sync that
// changed nothing produces no entry.
func (s *auditService) LogSync(ctx context.Context, guildID, userID int64, panel *models.Panel, result *SyncResult) {
	if !result.Changed() {
		return
	}
	channelID := s.auditChannel(ctx, guildID)
	if channelID == 0 {
		return
	}

	embed := auditEmbed("Roles Synced", colorRoleSync, userID, panel)
	embed.Description = fmt.Sprintf("%d added, %d removed", len(result.Added), len(result.Removed))
	if len(result.Added) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Added",
			Value: formatChanges(result.Added),
		})
	}
	if len(result.Removed) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Removed",
			Value: formatChanges(result.Removed),
		})
	}
	if len(result.Skipped) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Skipped",
			Value: formatChanges(result.Skipped),
		})
	}
	s.send(guildID, channelID, embed)
}
