package panels

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"rolepanel/apperr"
	"rolepanel/bot/common"
	"rolepanel/models"
)

// HandleComponent processes `panel:` component interactions. Every
// mutating action commits before the message is re-rendered, so the
// view never gets ahead of the database.
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	parsed, err := ParsePanelCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		f.fail(s, i, "panel component", err)
		return
	}

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		f.fail(s, i, "panel component", apperr.InvalidInput("This action only works in a server."))
		return
	}

	// Cross-guild access is denied up front regardless of the action.
	panel, err := f.panelService.GetPanel(ctx, parsed.PanelID, guildID)
	if err != nil {
		f.fail(s, i, "panel component", err)
		return
	}

	switch parsed.Action {
	case ActionAddRole:
		f.showRoleAddSelect(ctx, s, i, panel)
	case ActionRoleAddSelect:
		f.applyRoleAdd(ctx, s, i, panel, guildID)
	case ActionRemoveRole:
		f.showRoleRemoveSelect(ctx, s, i, panel)
	case ActionRoleRemoveSelect:
		f.applyRoleRemove(ctx, s, i, panel, guildID)
	case ActionStyle:
		f.applyStyleToggle(ctx, s, i, panel, guildID)
	case ActionColor:
		f.showColorSelect(s, i, panel)
	case ActionColorSelect:
		f.applyColorSelect(ctx, s, i, panel, guildID)
	case ActionPreview:
		f.showPreview(ctx, s, i, panel)
	case ActionPost:
		f.showChannelSelect(ctx, s, i, panel, 0)
	case ActionChannelPage:
		f.showChannelSelect(ctx, s, i, panel, parsed.Page)
	case ActionChannelSelect:
		f.applyPost(ctx, s, i, panel, guildID)
	case ActionDelete:
		f.showDeleteConfirm(s, i, panel)
	case ActionDeleteConfirm:
		f.applyDelete(ctx, s, i, panel, guildID)
	case ActionDeleteCancel, ActionBack, ActionBackToEdit:
		f.renderHome(ctx, s, i, panel)
	default:
		f.fail(s, i, "panel component", apperr.InvalidInput("Unrecognized interaction."))
	}
}

// HandleModalSubmit processes panel modal submissions.
func (f *Feature) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	data := i.ModalSubmitData()

	if data.CustomID == CreateModalCustomID {
		f.applyCreate(ctx, s, i)
		return
	}

	parsed, err := ParsePanelCustomID(data.CustomID)
	if err != nil {
		f.fail(s, i, "panel modal", err)
		return
	}

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		f.fail(s, i, "panel modal", apperr.InvalidInput("This action only works in a server."))
		return
	}

	panel, err := f.panelService.GetPanel(ctx, parsed.PanelID, guildID)
	if err != nil {
		f.fail(s, i, "panel modal", err)
		return
	}

	switch parsed.Action {
	case ActionCustomColor:
		f.applyCustomColor(ctx, s, i, panel, guildID)
	case ActionRoleLabel:
		// Reserved; the label editor modal has no rendered entry point.
		common.RespondWithError(s, i, "This action is not available yet.")
	default:
		f.fail(s, i, "panel modal", apperr.InvalidInput("Unrecognized interaction."))
	}
}

// renderHome re-renders the wizard home view from persisted state.
func (f *Feature) renderHome(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel) {
	roles, err := f.panelService.ListRoles(ctx, panel.ID)
	if err != nil {
		f.fail(s, i, "panel render", err)
		return
	}

	err = common.UpdateComponentMessage(s, i, BuildEditEmbed(panel, roles), BuildEditComponents(panel, roles))
	if err != nil {
		log.Errorf("Error rendering panel editor: %v", err)
	}
}

func (f *Feature) applyCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		f.fail(s, i, "panel create", apperr.InvalidInput("This command only works in a server."))
		return
	}

	title := modalValue(i, "title")
	description := modalValue(i, "description")
	var descPtr *string
	if description != "" {
		descPtr = &description
	}

	panel, err := f.panelService.CreatePanel(ctx, guildID, title, descPtr)
	if err != nil {
		f.fail(s, i, "panel create", err)
		return
	}

	err = common.RespondWithEmbed(s, i, BuildEditEmbed(panel, nil), BuildEditComponents(panel, nil), true)
	if err != nil {
		log.Errorf("Error opening editor for new panel: %v", err)
	}
}

func (f *Feature) showRoleAddSelect(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel) {
	guildRoles, err := f.discord.GuildRoles(panel.GuildID)
	if err != nil {
		f.fail(s, i, "panel add role", apperr.Discord(err))
		return
	}

	existing, err := f.panelService.ListRoles(ctx, panel.ID)
	if err != nil {
		f.fail(s, i, "panel add role", err)
		return
	}
	onPanel := make(map[string]bool, len(existing))
	for _, role := range existing {
		onPanel[common.FormatSnowflake(role.RoleID)] = true
	}

	everyoneID := common.FormatSnowflake(panel.GuildID)
	var candidates []*discordgo.Role
	for _, role := range guildRoles {
		if role.Managed || role.ID == everyoneID || onPanel[role.ID] {
			continue
		}
		candidates = append(candidates, role)
	}

	if len(candidates) == 0 {
		common.RespondWithError(s, i, "No assignable roles left to add.")
		return
	}

	err = common.UpdateComponentMessage(s, i, BuildEditEmbed(panel, existing), BuildRoleAddSelectComponents(panel.ID, candidates))
	if err != nil {
		log.Errorf("Error rendering role add select: %v", err)
	}
}

// applyRoleAdd adds each selected role with the role's current name as
// the default label. Individual failures do not abort the rest.
func (f *Feature) applyRoleAdd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel, guildID int64) {
	guildRoles, err := f.discord.GuildRoles(guildID)
	if err != nil {
		f.fail(s, i, "panel add role", apperr.Discord(err))
		return
	}
	names := make(map[string]string, len(guildRoles))
	for _, role := range guildRoles {
		names[role.ID] = role.Name
	}

	for _, value := range i.MessageComponentData().Values {
		roleID, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil {
			continue
		}
		label := names[value]
		if label == "" {
			label = value
		}
		if _, aerr := f.panelService.AddRole(ctx, panel.ID, guildID, roleID, label, nil, nil); aerr != nil {
			log.WithFields(log.Fields{
				"panel_id": panel.ID,
				"role_id":  roleID,
				"error":    aerr,
			}).Warn("Failed to add role to panel")
		}
	}

	f.renderHome(ctx, s, i, panel)
}

func (f *Feature) showRoleRemoveSelect(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel) {
	roles, err := f.panelService.ListRoles(ctx, panel.ID)
	if err != nil {
		f.fail(s, i, "panel remove role", err)
		return
	}

	err = common.UpdateComponentMessage(s, i, BuildEditEmbed(panel, roles), BuildRoleRemoveSelectComponents(panel.ID, roles))
	if err != nil {
		log.Errorf("Error rendering role remove select: %v", err)
	}
}

func (f *Feature) applyRoleRemove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel, guildID int64) {
	for _, value := range i.MessageComponentData().Values {
		roleID, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil {
			continue
		}
		if rerr := f.panelService.RemoveRole(ctx, panel.ID, guildID, roleID); rerr != nil {
			log.WithFields(log.Fields{
				"panel_id": panel.ID,
				"role_id":  roleID,
				"error":    rerr,
			}).Warn("Failed to remove role from panel")
		}
	}

	f.renderHome(ctx, s, i, panel)
}

func (f *Feature) applyStyleToggle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel, guildID int64) {
	style := panel.Style.Toggle()
	updated, err := f.panelService.UpdatePanel(ctx, panel.ID, guildID, &models.PanelUpdate{Style: &style})
	if err != nil {
		f.fail(s, i, "panel style", err)
		return
	}

	f.renderHome(ctx, s, i, updated)
}

func (f *Feature) showColorSelect(s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel) {
	roles, err := f.panelService.ListRoles(context.Background(), panel.ID)
	if err != nil {
		f.fail(s, i, "panel color", err)
		return
	}

	err = common.UpdateComponentMessage(s, i, BuildEditEmbed(panel, roles), BuildColorSelectComponents(panel.ID))
	if err != nil {
		log.Errorf("Error rendering color select: %v", err)
	}
}

func (f *Feature) applyColorSelect(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel, guildID int64) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		f.renderHome(ctx, s, i, panel)
		return
	}

	if values[0] == customColorValue {
		if err := common.RespondWithModal(s, i, BuildCustomColorModal(panel.ID)); err != nil {
			log.Errorf("Error opening custom color modal: %v", err)
		}
		return
	}

	color, err := strconv.ParseInt(values[0], 10, 32)
	if err != nil {
		f.fail(s, i, "panel color", apperr.InvalidInput("Unrecognized color."))
		return
	}

	color32 := int32(color)
	updated, uerr := f.panelService.UpdatePanel(ctx, panel.ID, guildID, &models.PanelUpdate{Color: &color32})
	if uerr != nil {
		f.fail(s, i, "panel color", uerr)
		return
	}

	f.renderHome(ctx, s, i, updated)
}

func (f *Feature) applyCustomColor(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel, guildID int64) {
	raw := strings.TrimSpace(modalValue(i, "color"))
	raw = strings.TrimPrefix(raw, "#")

	color, err := strconv.ParseInt(raw, 16, 32)
	if err != nil || len(raw) != 6 {
		f.fail(s, i, "panel custom color", apperr.InvalidInput("Please enter a color as #RRGGBB."))
		return
	}

	color32 := int32(color)
	updated, uerr := f.panelService.UpdatePanel(ctx, panel.ID, guildID, &models.PanelUpdate{Color: &color32})
	if uerr != nil {
		f.fail(s, i, "panel custom color", uerr)
		return
	}

	f.renderHome(ctx, s, i, updated)
}

func (f *Feature) showPreview(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel) {
	roles, err := f.panelService.ListRoles(ctx, panel.ID)
	if err != nil {
		f.fail(s, i, "panel preview", err)
		return
	}

	// Live controls plus a way back. A full 25-role button panel
	// already occupies the five-row limit, so the back row wins over
	// the last control rows.
	components := BuildPanelComponents(panel, roles)
	if len(components) > 4 {
		components = components[:4]
	}
	components = append(components, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Back to editor",
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(panel.ID, ActionBackToEdit),
			},
		},
	})

	err = common.UpdateComponentMessage(s, i, BuildPanelEmbed(panel, roles), components)
	if err != nil {
		log.Errorf("Error rendering panel preview: %v", err)
	}
}

func (f *Feature) showChannelSelect(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel, page int) {
	channels, err := f.discord.GuildChannels(panel.GuildID)
	if err != nil {
		f.fail(s, i, "panel post", apperr.Discord(err))
		return
	}

	var postable []*discordgo.Channel
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews {
			postable = append(postable, ch)
		}
	}
	if len(postable) == 0 {
		common.RespondWithError(s, i, "No text channels available to post in.")
		return
	}

	roles, err := f.panelService.ListRoles(ctx, panel.ID)
	if err != nil {
		f.fail(s, i, "panel post", err)
		return
	}

	err = common.UpdateComponentMessage(s, i, BuildEditEmbed(panel, roles), BuildChannelSelectComponents(panel.ID, postable, page))
	if err != nil {
		log.Errorf("Error rendering channel select: %v", err)
	}
}

func (f *Feature) applyPost(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel, guildID int64) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		f.renderHome(ctx, s, i, panel)
		return
	}

	channelID, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		f.fail(s, i, "panel post", apperr.InvalidInput("Unrecognized channel."))
		return
	}

	roles, err := f.panelService.ListRoles(ctx, panel.ID)
	if err != nil {
		f.fail(s, i, "panel post", err)
		return
	}

	message := &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{BuildPanelEmbed(panel, roles)},
		Components: BuildPanelComponents(panel, roles),
	}

	updated, err := f.panelService.PostPanel(ctx, panel.ID, guildID, channelID, message)
	if err != nil {
		// Show the editor again with the failure inline rather than
		// leaving the channel picker up.
		f.renderHome(ctx, s, i, panel)
		common.FollowUpWithError(s, i, apperr.From(err).UserMessage())
		common.ReportError(f.notifier, i, "panel post", err)
		return
	}

	f.renderHome(ctx, s, i, updated)
}

func (f *Feature) showDeleteConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel) {
	embed := &discordgo.MessageEmbed{
		Title:       "Delete panel?",
		Description: "This removes **" + panel.Name + "** and its posted message. This cannot be undone.",
		Color:       0xED4245,
	}

	err := common.UpdateComponentMessage(s, i, embed, BuildDeleteConfirmComponents(panel.ID))
	if err != nil {
		log.Errorf("Error rendering delete confirmation: %v", err)
	}
}

func (f *Feature) applyDelete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, panel *models.Panel, guildID int64) {
	if err := f.panelService.DeletePanel(ctx, panel.ID, guildID); err != nil {
		f.fail(s, i, "panel delete", err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Description: "Panel **" + panel.Name + "** deleted.",
		Color:       0x57F287,
	}
	if err := common.UpdateComponentMessage(s, i, embed, []discordgo.MessageComponent{}); err != nil {
		log.Errorf("Error rendering delete result: %v", err)
	}
}

// modalValue extracts a text input value from a modal submission.
func modalValue(i *discordgo.InteractionCreate, customID string) string {
	for _, row := range i.ModalSubmitData().Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
