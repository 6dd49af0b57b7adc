package models

import (
	"time"

	"github.com/google/uuid"
)

// PanelRole is one assignable role entry within a panel
type PanelRole struct {
	ID          uuid.UUID `db:"id"`
	PanelID     uuid.UUID `db:"panel_id"`
	RoleID      int64     `db:"role_id"`
	Label       string    `db:"label"`
	Emoji       *string   `db:"emoji"`
	Description *string   `db:"description"`
	Position    int32     `db:"position"`
	CreatedAt   time.Time `db:"created_at"`
}

// RoleChange records one applied grant or revoke for audit output
type RoleChange struct {
	RoleID int64
	Label  string
}
