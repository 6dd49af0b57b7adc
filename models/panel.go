package models

import (
	"time"

	"github.com/google/uuid"
)

// PanelStyle determines how a posted panel renders its roles
type PanelStyle string

const (
	PanelStyleButton     PanelStyle = "button"
	PanelStyleSelectMenu PanelStyle = "select_menu"
)

// ParsePanelStyle parses a stored style value, defaulting to button
func ParsePanelStyle(s string) PanelStyle {
	if s == string(PanelStyleSelectMenu) {
		return PanelStyleSelectMenu
	}
	return PanelStyleButton
}

// DisplayName returns the human-readable style name
func (s PanelStyle) DisplayName() string {
	if s == PanelStyleSelectMenu {
		return "Select Menu"
	}
	return "Button"
}

// Toggle flips between the two styles
func (s PanelStyle) Toggle() PanelStyle {
	if s == PanelStyleButton {
		return PanelStyleSelectMenu
	}
	return PanelStyleButton
}

// Panel represents a guild's configured set of self-assignable roles
type Panel struct {
	ID          uuid.UUID  `db:"id"`
	GuildID     int64      `db:"guild_id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	Style       PanelStyle `db:"style"`
	Color       int32      `db:"color"`
	ChannelID   *int64     `db:"channel_id"`
	MessageID   *int64     `db:"message_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// IsPosted reports whether the panel has been posted to a channel
func (p *Panel) IsPosted() bool {
	return p.MessageID != nil
}

// PanelUpdate carries partial updates to a panel. The double pointers
// distinguish "leave unchanged" (nil) from "clear the column" (pointer
// to nil).
type PanelUpdate struct {
	Name        *string
	Description **string
	Style       *PanelStyle
	Color       *int32
	ChannelID   **int64
	MessageID   **int64
}
