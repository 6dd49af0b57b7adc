package service

import (
	"context"

	"rolepanel/apperr"
	"rolepanel/models"
)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	configRepo GuildConfigRepository
}

// NewGuildConfigService creates a new guild config service
func NewGuildConfigService(configRepo GuildConfigRepository) GuildConfigService {
	return &guildConfigService{configRepo: configRepo}
}

// GetConfig returns a guild's config, nil when never configured
func (s *guildConfigService) GetConfig(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	config, err := s.configRepo.FindByGuild(ctx, guildID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return config, nil
}

// SetAuditChannel sets or clears the audit channel for a guild
func (s *guildConfigService) SetAuditChannel(ctx context.Context, guildID int64, channelID *int64) (*models.GuildConfig, error) {
	config, err := s.configRepo.SetAuditChannel(ctx, guildID, channelID)
	if err != nil {
		return nil, apperr.Database(err)
	}
	return config, nil
}
