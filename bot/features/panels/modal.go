package panels

import (
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// CreateModalCustomID marks the panel creation modal. It predates any
// panel, so it carries no UUID and is matched before the grammar
// parser runs.
const CreateModalCustomID = "panel:create:modal"

// BuildCreateModal builds the /panel create dialog.
func BuildCreateModal() discordgo.InteractionResponseData {
	return discordgo.InteractionResponseData{
		CustomID: CreateModalCustomID,
		Title:    "Create Panel",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "title",
						Label:       "Title",
						Style:       discordgo.TextInputShort,
						Placeholder: "Panel title",
						Required:    true,
						MinLength:   1,
						MaxLength:   100,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "description",
						Label:       "Description",
						Style:       discordgo.TextInputParagraph,
						Placeholder: "Panel description (optional)",
						Required:    false,
						MaxLength:   4000,
					},
				},
			},
		},
	}
}

// BuildCustomColorModal builds the hex color input dialog.
func BuildCustomColorModal(panelID uuid.UUID) discordgo.InteractionResponseData {
	return discordgo.InteractionResponseData{
		CustomID: CustomID(panelID, ActionCustomColor),
		Title:    "Custom Color",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "color",
						Label:       "Hex color",
						Style:       discordgo.TextInputShort,
						Placeholder: "#5865F2",
						Required:    true,
						MinLength:   6,
						MaxLength:   7,
					},
				},
			},
		},
	}
}

// BuildRoleLabelModal builds the per-role label editor dialog. Routed
// but not yet reachable from the rendered views.
func BuildRoleLabelModal(panelID uuid.UUID, roleID int64, roleName string) discordgo.InteractionResponseData {
	if len([]rune(roleName)) > 38 {
		roleName = string([]rune(roleName)[:38])
	}

	return discordgo.InteractionResponseData{
		CustomID: RoleLabelCustomID(panelID, roleID),
		Title:    "Edit: " + roleName,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  "label",
						Label:     "Label",
						Style:     discordgo.TextInputShort,
						Required:  true,
						MinLength: 1,
						MaxLength: 80,
						Value:     roleName,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "emoji",
						Label:       "Emoji",
						Style:       discordgo.TextInputShort,
						Placeholder: "Emoji (optional)",
						Required:    false,
						MaxLength:   100,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "description",
						Label:       "Description (select menu only)",
						Style:       discordgo.TextInputShort,
						Placeholder: "Option description (optional)",
						Required:    false,
						MaxLength:   100,
					},
				},
			},
		},
	}
}
