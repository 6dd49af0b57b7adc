package panels

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"rolepanel/apperr"
	"rolepanel/bot/common"
	"rolepanel/notify"
	"rolepanel/service"
)

// Feature handles panel management commands and the edit wizard
type Feature struct {
	panelService  service.PanelService
	configService service.GuildConfigService
	discord       service.Discord
	notifier      *notify.Notifier
}

// NewFeature creates a new panels feature instance
func NewFeature(panelService service.PanelService, configService service.GuildConfigService, discord service.Discord, notifier *notify.Notifier) *Feature {
	return &Feature{
		panelService:  panelService,
		configService: configService,
		discord:       discord,
		notifier:      notifier,
	}
}

// fail reports an error to the user and, for infrastructure failures,
// to the operator notification queue.
func (f *Feature) fail(s *discordgo.Session, i *discordgo.InteractionCreate, source string, err error) {
	log.WithFields(log.Fields{
		"source": source,
		"error":  err,
	}).Error("Panel interaction failed")
	common.RespondWithAppError(s, i, err)
	common.ReportError(f.notifier, i, source, err)
}

// HandlePanelCommand routes /panel subcommands
func (f *Feature) HandlePanelCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.HasPermission(i, discordgo.PermissionManageRoles) {
		common.RespondWithError(s, i, "You need the Manage Roles permission to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand: create, list or edit.")
		return
	}

	switch options[0].Name {
	case "create":
		f.handleCreate(s, i)
	case "list":
		f.handleList(s, i)
	case "edit":
		f.handleEdit(s, i, options[0])
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}

// HandleConfigCommand routes /config subcommands
func (f *Feature) HandleConfigCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.HasPermission(i, discordgo.PermissionAdministrator) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand: audit-channel or show.")
		return
	}

	switch options[0].Name {
	case "audit-channel":
		f.handleConfigAuditChannel(s, i, options[0])
	case "show":
		f.handleConfigShow(s, i)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.RespondWithModal(s, i, BuildCreateModal()); err != nil {
		log.Errorf("Error opening panel create modal: %v", err)
	}
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command only works in a server.")
		return
	}

	panels, err := f.panelService.ListPanels(ctx, guildID)
	if err != nil {
		f.fail(s, i, "panel list", err)
		return
	}

	roleCounts := make([]int64, len(panels))
	for idx, panel := range panels {
		roles, err := f.panelService.ListRoles(ctx, panel.ID)
		if err != nil {
			f.fail(s, i, "panel list", err)
			return
		}
		roleCounts[idx] = int64(len(roles))
	}

	if err := common.RespondWithEmbed(s, i, BuildListEmbed(panels, roleCounts), nil, true); err != nil {
		log.Errorf("Error responding to panel list: %v", err)
	}
}

func (f *Feature) handleEdit(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command only works in a server.")
		return
	}

	var name string
	for _, opt := range sub.Options {
		if opt.Name == "name" {
			name = opt.StringValue()
		}
	}
	if name == "" {
		common.RespondWithError(s, i, "Please provide a panel name.")
		return
	}

	panel, err := f.panelService.GetPanelByName(ctx, guildID, name)
	if err != nil {
		f.fail(s, i, "panel edit", err)
		return
	}

	roles, err := f.panelService.ListRoles(ctx, panel.ID)
	if err != nil {
		f.fail(s, i, "panel edit", err)
		return
	}

	err = common.RespondWithEmbed(s, i, BuildEditEmbed(panel, roles), BuildEditComponents(panel, roles), true)
	if err != nil {
		log.Errorf("Error opening panel editor: %v", err)
	}
}

// HandleAutocomplete serves panel name suggestions for /panel edit
func (f *Feature) HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		return
	}

	var prefix string
	for _, opt := range i.ApplicationCommandData().Options {
		for _, sub := range opt.Options {
			if sub.Name == "name" && sub.Focused {
				prefix = sub.StringValue()
			}
		}
	}

	names, err := f.panelService.SearchPanelNames(ctx, guildID, prefix, 25)
	if err != nil {
		log.Errorf("Error searching panel names: %v", err)
		return
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(names))
	for idx, name := range names {
		choices[idx] = &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name}
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		log.Errorf("Error responding to autocomplete: %v", err)
	}
}

func (f *Feature) handleConfigAuditChannel(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command only works in a server.")
		return
	}

	var channelID *int64
	for _, opt := range sub.Options {
		if opt.Name == "channel" {
			ch := opt.ChannelValue(s)
			if ch == nil {
				common.RespondWithError(s, i, apperr.InvalidInput("Invalid channel.").UserMessage())
				return
			}
			id, perr := common.ParseSnowflake(ch.ID)
			if perr != nil {
				common.RespondWithError(s, i, apperr.InvalidInput("Invalid channel.").UserMessage())
				return
			}
			channelID = &id
		}
	}

	config, err := f.configService.SetAuditChannel(ctx, guildID, channelID)
	if err != nil {
		f.fail(s, i, "config audit-channel", err)
		return
	}

	var message string
	if config.AuditChannelID != nil {
		message = "Audit log channel set to " + common.ChannelMention(*config.AuditChannelID) + "."
	} else {
		message = "Audit log channel cleared."
	}
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to config audit-channel: %v", err)
	}
}

func (f *Feature) handleConfigShow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "This command only works in a server.")
		return
	}

	config, err := f.configService.GetConfig(ctx, guildID)
	if err != nil {
		f.fail(s, i, "config show", err)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildConfigEmbed(config), nil, true); err != nil {
		log.Errorf("Error responding to config show: %v", err)
	}
}
