package models

import "time"

// GuildConfig holds per-guild bot settings. Created lazily on first
// write; a missing row just means nothing has been configured yet.
type GuildConfig struct {
	GuildID        int64     `db:"guild_id"`
	AuditChannelID *int64    `db:"audit_channel_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
