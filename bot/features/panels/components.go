package panels

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"rolepanel/bot/common"
	"rolepanel/models"
	"rolepanel/service"
)

const pageSize = 25

// colorPresets are the preset choices in the color picker, in menu
// order. The sentinel "custom" value opens the hex modal instead.
var colorPresets = []struct {
	Label string
	Value string
}{
	{"Default (Blurple)", "5793266"},
	{"Red", "15548997"},
	{"Orange", "15105570"},
	{"Yellow", "16776960"},
	{"Green", "5763719"},
	{"Blue", "3447003"},
	{"Purple", "10181046"},
	{"Pink", "15277667"},
	{"Gray", "9807270"},
	{"Custom…", customColorValue},
}

// customColorValue marks the picker entry that opens the hex modal.
const customColorValue = "custom"

func backRow(panelID uuid.UUID) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Back",
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(panelID, ActionBack),
			},
		},
	}
}

// BuildEditComponents renders the wizard home controls. Add Role is
// guarded at the 25-role cap; Remove Role and Post are guarded at zero
// roles.
func BuildEditComponents(panel *models.Panel, roles []*models.PanelRole) []discordgo.MessageComponent {
	postLabel := "Post"
	if panel.IsPosted() {
		postLabel = "Update"
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Add Role",
					Style:    discordgo.PrimaryButton,
					CustomID: CustomID(panel.ID, ActionAddRole),
					Disabled: len(roles) >= service.MaxRolesPerPanel,
				},
				discordgo.Button{
					Label:    "Remove Role",
					Style:    discordgo.SecondaryButton,
					CustomID: CustomID(panel.ID, ActionRemoveRole),
					Disabled: len(roles) == 0,
				},
				discordgo.Button{
					Label:    "Style: " + panel.Style.DisplayName(),
					Style:    discordgo.SecondaryButton,
					CustomID: CustomID(panel.ID, ActionStyle),
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Color",
					Style:    discordgo.SecondaryButton,
					CustomID: CustomID(panel.ID, ActionColor),
				},
				discordgo.Button{
					Label:    "Preview",
					Style:    discordgo.SecondaryButton,
					CustomID: CustomID(panel.ID, ActionPreview),
					Disabled: len(roles) == 0,
				},
				discordgo.Button{
					Label:    postLabel,
					Style:    discordgo.SuccessButton,
					CustomID: CustomID(panel.ID, ActionPost),
					Disabled: len(roles) == 0,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Delete",
					Style:    discordgo.DangerButton,
					CustomID: CustomID(panel.ID, ActionDelete),
				},
			},
		},
	}
}

// BuildColorSelectComponents renders the color picker menu.
func BuildColorSelectComponents(panelID uuid.UUID) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, len(colorPresets))
	for i, preset := range colorPresets {
		options[i] = discordgo.SelectMenuOption{Label: preset.Label, Value: preset.Value}
	}

	one := 1
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    CustomID(panelID, ActionColorSelect),
					Placeholder: "Pick a color...",
					MinValues:   &one,
					MaxValues:   1,
					Options:     options,
				},
			},
		},
		backRow(panelID),
	}
}

// BuildRoleAddSelectComponents renders the menu of guild roles that
// can still be added to the panel. candidates must already exclude
// managed roles, @everyone and roles already on the panel.
func BuildRoleAddSelectComponents(panelID uuid.UUID, candidates []*discordgo.Role) []discordgo.MessageComponent {
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) > pageSize {
		candidates = candidates[:pageSize]
	}

	options := make([]discordgo.SelectMenuOption, len(candidates))
	for i, role := range candidates {
		options[i] = discordgo.SelectMenuOption{Label: role.Name, Value: role.ID}
	}

	one := 1
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    CustomID(panelID, ActionRoleAddSelect),
					Placeholder: "Pick roles to add...",
					MinValues:   &one,
					MaxValues:   len(options),
					Options:     options,
				},
			},
		},
		backRow(panelID),
	}
}

// BuildRoleRemoveSelectComponents renders the menu of panel roles to
// remove.
func BuildRoleRemoveSelectComponents(panelID uuid.UUID, roles []*models.PanelRole) []discordgo.MessageComponent {
	if len(roles) > pageSize {
		roles = roles[:pageSize]
	}

	options := make([]discordgo.SelectMenuOption, len(roles))
	for i, role := range roles {
		options[i] = discordgo.SelectMenuOption{
			Label: role.Label,
			Value: common.FormatSnowflake(role.RoleID),
		}
	}

	one := 1
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    CustomID(panelID, ActionRoleRemoveSelect),
					Placeholder: "Pick roles to remove...",
					MinValues:   &one,
					MaxValues:   len(options),
					Options:     options,
				},
			},
		},
		backRow(panelID),
	}
}

// BuildDeleteConfirmComponents renders the delete confirmation
// buttons.
func BuildDeleteConfirmComponents(panelID uuid.UUID) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Yes, delete it",
					Style:    discordgo.DangerButton,
					CustomID: CustomID(panelID, ActionDeleteConfirm),
				},
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: CustomID(panelID, ActionDeleteCancel),
				},
			},
		},
	}
}

// BuildChannelSelectComponents renders one page of the channel picker.
// Navigation buttons appear only when there is more than one page,
// with the boundary button disabled at each end.
func BuildChannelSelectComponents(panelID uuid.UUID, channels []*discordgo.Channel, page int) []discordgo.MessageComponent {
	if len(channels) == 0 {
		return nil
	}

	totalPages := (len(channels) + pageSize - 1) / pageSize
	if page > totalPages-1 {
		page = totalPages - 1
	}
	start := page * pageSize
	end := start + pageSize
	if end > len(channels) {
		end = len(channels)
	}

	options := make([]discordgo.SelectMenuOption, 0, end-start)
	for _, ch := range channels[start:end] {
		options = append(options, discordgo.SelectMenuOption{
			Label: "#" + ch.Name,
			Value: ch.ID,
		})
	}

	one := 1
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    CustomID(panelID, ActionChannelSelect),
					Placeholder: "Pick a channel...",
					MinValues:   &one,
					MaxValues:   1,
					Options:     options,
				},
			},
		},
	}

	if totalPages > 1 {
		prev := page - 1
		if prev < 0 {
			prev = 0
		}
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: ChannelPageCustomID(panelID, prev),
					Disabled: page == 0,
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: ChannelPageCustomID(panelID, page+1),
					Disabled: page+1 >= totalPages,
				},
				discordgo.Button{
					Label:    "Back",
					Style:    discordgo.SecondaryButton,
					CustomID: CustomID(panelID, ActionBack),
				},
			},
		})
	} else {
		components = append(components, backRow(panelID))
	}

	return components
}

// BuildPanelComponents renders the public panel's interactive
// controls in the panel's configured style.
func BuildPanelComponents(panel *models.Panel, roles []*models.PanelRole) []discordgo.MessageComponent {
	if panel.Style == models.PanelStyleSelectMenu {
		return buildPanelSelectComponents(panel, roles)
	}
	return buildPanelButtonComponents(panel, roles)
}

// buildPanelButtonComponents packs one toggle button per role, five
// per row.
func buildPanelButtonComponents(panel *models.Panel, roles []*models.PanelRole) []discordgo.MessageComponent {
	var components []discordgo.MessageComponent
	var row []discordgo.MessageComponent

	for _, role := range roles {
		button := discordgo.Button{
			Label:    role.Label,
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("role:%s:%d:toggle", panel.ID, role.RoleID),
		}
		if role.Emoji != nil {
			button.Emoji = common.ParseEmoji(*role.Emoji)
		}
		row = append(row, button)

		if len(row) == 5 {
			components = append(components, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		components = append(components, discordgo.ActionsRow{Components: row})
	}
	return components
}

// buildPanelSelectComponents renders a multi-select over all panel
// roles plus a confirm button.
func buildPanelSelectComponents(panel *models.Panel, roles []*models.PanelRole) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, len(roles))
	for i, role := range roles {
		option := discordgo.SelectMenuOption{
			Label: role.Label,
			Value: common.FormatSnowflake(role.RoleID),
		}
		if role.Description != nil {
			option.Description = *role.Description
		}
		if role.Emoji != nil {
			option.Emoji = common.ParseEmoji(*role.Emoji)
		}
		options[i] = option
	}

	zero := 0
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    fmt.Sprintf("role:%s:select", panel.ID),
					Placeholder: "Select roles...",
					MinValues:   &zero,
					MaxValues:   len(roles),
					Options:     options,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirm",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("role:%s:confirm", panel.ID),
				},
			},
		},
	}
}
