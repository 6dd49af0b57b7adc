package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"rolepanel/database"
	"rolepanel/models"
)

// GuildConfigRepository provides data access for per-guild settings
type GuildConfigRepository struct {
	q queryable
}

// NewGuildConfigRepository creates a new guild config repository
func NewGuildConfigRepository(db *database.DB) *GuildConfigRepository {
	return &GuildConfigRepository{q: db.Pool}
}

const guildConfigColumns = "guild_id, audit_channel_id, created_at, updated_at"

func scanGuildConfig(row pgx.Row) (*models.GuildConfig, error) {
	var config models.GuildConfig
	err := row.Scan(
		&config.GuildID,
		&config.AuditChannelID,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// FindByGuild retrieves a guild's config, or nil if none was ever written
func (r *GuildConfigRepository) FindByGuild(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	query := `SELECT ` + guildConfigColumns + ` FROM guild_configs WHERE guild_id = $1`

	config, err := scanGuildConfig(r.q.QueryRow(ctx, query, guildID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get config for guild %d: %w", guildID, err)
	}
	return config, nil
}

// SetAuditChannel sets or clears the audit channel, creating the guild
// config row on first write
func (r *GuildConfigRepository) SetAuditChannel(ctx context.Context, guildID int64, channelID *int64) (*models.GuildConfig, error) {
	query := `
		INSERT INTO guild_configs (guild_id, audit_channel_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id) DO UPDATE SET audit_channel_id = $2, updated_at = NOW()
		RETURNING ` + guildConfigColumns

	config, err := scanGuildConfig(r.q.QueryRow(ctx, query, guildID, channelID))
	if err != nil {
		return nil, fmt.Errorf("failed to set audit channel for guild %d: %w", guildID, err)
	}
	return config, nil
}
