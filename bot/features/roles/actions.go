package roles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"rolepanel/apperr"
)

// Action identifies one end-user action on a posted panel.
type Action string

const (
	ActionToggle  Action = "toggle"
	ActionSelect  Action = "select"
	ActionConfirm Action = "confirm"
)

// RoleCustomID is a decoded `role:` custom ID.
type RoleCustomID struct {
	PanelID uuid.UUID
	Action  Action

	// RoleID is set for toggle actions.
	RoleID int64
}

// ParseRoleCustomID decodes the two shapes of `role:` custom IDs:
// `role:<panelId>:<roleId>:toggle` from panel buttons and
// `role:<panelId>:select|confirm` from the menu path. Both shapes can
// reach four tokens, so a fourth token equal to "toggle" decides that
// the third one is a role ID.
func ParseRoleCustomID(customID string) (*RoleCustomID, error) {
	tokens := strings.Split(customID, ":")
	if len(tokens) < 3 || tokens[0] != "role" {
		return nil, apperr.InvalidInput("Unrecognized interaction.")
	}

	panelID, err := uuid.Parse(tokens[1])
	if err != nil {
		return nil, apperr.InvalidInput("Unrecognized interaction.")
	}

	if len(tokens) >= 4 && tokens[3] == string(ActionToggle) {
		roleID, err := strconv.ParseInt(tokens[2], 10, 64)
		if err != nil {
			return nil, apperr.InvalidInput("Unrecognized interaction.")
		}
		return &RoleCustomID{PanelID: panelID, Action: ActionToggle, RoleID: roleID}, nil
	}

	switch Action(tokens[2]) {
	case ActionSelect, ActionConfirm:
		return &RoleCustomID{PanelID: panelID, Action: Action(tokens[2])}, nil
	default:
		return nil, apperr.InvalidInput("Unrecognized interaction.")
	}
}

// ToggleCustomID encodes the button path wire form.
func ToggleCustomID(panelID uuid.UUID, roleID int64) string {
	return fmt.Sprintf("role:%s:%d:%s", panelID, roleID, ActionToggle)
}
