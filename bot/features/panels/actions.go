package panels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"rolepanel/apperr"
)

// Action identifies one wizard transition encoded in a component
// custom ID.
type Action string

const (
	ActionAddRole          Action = "add_role"
	ActionRoleAddSelect    Action = "role_add_select"
	ActionRemoveRole       Action = "remove_role"
	ActionRoleRemoveSelect Action = "role_remove_select"
	ActionStyle            Action = "style"
	ActionColor            Action = "color"
	ActionColorSelect      Action = "color_select"
	ActionCustomColor      Action = "custom_color"
	ActionPreview          Action = "preview"
	ActionBackToEdit       Action = "back_to_edit"
	ActionPost             Action = "post"
	ActionChannelSelect    Action = "channel_select"
	ActionChannelPage      Action = "channel_page"
	ActionDelete           Action = "delete"
	ActionDeleteConfirm    Action = "delete_confirm"
	ActionDeleteCancel     Action = "delete_cancel"
	ActionBack             Action = "back"

	// ActionRoleLabel is routed but has no rendered entry point yet.
	// TODO: surface a per-role label editor from the remove-role view.
	ActionRoleLabel Action = "role_label"
)

var knownActions = map[Action]bool{
	ActionAddRole:          true,
	ActionRoleAddSelect:    true,
	ActionRemoveRole:       true,
	ActionRoleRemoveSelect: true,
	ActionStyle:            true,
	ActionColor:            true,
	ActionColorSelect:      true,
	ActionCustomColor:      true,
	ActionPreview:          true,
	ActionBackToEdit:       true,
	ActionPost:             true,
	ActionChannelSelect:    true,
	ActionChannelPage:      true,
	ActionDelete:           true,
	ActionDeleteConfirm:    true,
	ActionDeleteCancel:     true,
	ActionBack:             true,
	ActionRoleLabel:        true,
}

// PanelCustomID is a decoded `panel:` custom ID.
type PanelCustomID struct {
	PanelID uuid.UUID
	Action  Action

	// Page is set for channel_page actions.
	Page int

	// RoleID is set for role_label actions.
	RoleID int64
}

// ParsePanelCustomID decodes a `panel:<id>:<action>[:<extra>]` custom
// ID. Malformed input of any kind comes back as InvalidInput.
func ParsePanelCustomID(customID string) (*PanelCustomID, error) {
	tokens := strings.Split(customID, ":")
	if len(tokens) < 3 || tokens[0] != "panel" {
		return nil, apperr.InvalidInput("Unrecognized interaction.")
	}

	panelID, err := uuid.Parse(tokens[1])
	if err != nil {
		return nil, apperr.InvalidInput("Unrecognized interaction.")
	}

	action := Action(tokens[2])
	if !knownActions[action] {
		return nil, apperr.InvalidInput("Unrecognized interaction.")
	}

	parsed := &PanelCustomID{PanelID: panelID, Action: action}
	switch action {
	case ActionChannelPage:
		if len(tokens) < 4 {
			return nil, apperr.InvalidInput("Unrecognized interaction.")
		}
		page, err := strconv.Atoi(tokens[3])
		if err != nil || page < 0 {
			return nil, apperr.InvalidInput("Unrecognized interaction.")
		}
		parsed.Page = page
	case ActionRoleLabel:
		if len(tokens) < 4 {
			return nil, apperr.InvalidInput("Unrecognized interaction.")
		}
		roleID, err := strconv.ParseInt(tokens[3], 10, 64)
		if err != nil {
			return nil, apperr.InvalidInput("Unrecognized interaction.")
		}
		parsed.RoleID = roleID
	}
	return parsed, nil
}

// CustomID encodes an action back into its wire form.
func CustomID(panelID uuid.UUID, action Action) string {
	return fmt.Sprintf("panel:%s:%s", panelID, action)
}

// ChannelPageCustomID encodes a channel pagination action.
func ChannelPageCustomID(panelID uuid.UUID, page int) string {
	return fmt.Sprintf("panel:%s:%s:%d", panelID, ActionChannelPage, page)
}

// RoleLabelCustomID encodes a per-role label action.
func RoleLabelCustomID(panelID uuid.UUID, roleID int64) string {
	return fmt.Sprintf("panel:%s:%s:%d", panelID, ActionRoleLabel, roleID)
}
