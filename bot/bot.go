package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"rolepanel/bot/features/panels"
	"rolepanel/bot/features/roles"
	"rolepanel/database"
	"rolepanel/notify"
	"rolepanel/service"
)

// Config holds bot configuration
type Config struct {
	BotName     string
	DeveloperID string
	GitHubURL   string
}

type Bot struct {
	config   Config
	session  *discordgo.Session
	db       *database.DB
	panels   *panels.Feature
	roles    *roles.Feature
	notifier *notify.Notifier
	stop     chan struct{}

	fatal     chan struct{}
	fatalOnce sync.Once
}

// New wires the features onto an unopened gateway session, opens it
// and registers the slash commands. The session is created by the
// caller so the service layer can share its adapter.
func New(config Config, dg *discordgo.Session, db *database.DB, panelService service.PanelService, roleService service.RoleService, configService service.GuildConfigService, notifier *notify.Notifier) (*Bot, error) {
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	discord := NewSessionAdapter(dg)

	bot := &Bot{
		config:   config,
		session:  dg,
		db:       db,
		panels:   panels.NewFeature(panelService, configService, discord, notifier),
		roles:    roles.NewFeature(roleService, notifier),
		notifier: notifier,
		stop:     make(chan struct{}),
		fatal:    make(chan struct{}),
	}

	dg.AddHandler(bot.handleInteraction)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Infof("Logged in as %s", r.User.Username)
	})
	dg.AddHandler(bot.handleDisconnect)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	bot.roles.StartCleanup(bot.stop)

	return bot, nil
}

func (b *Bot) Close() error {
	close(b.stop)
	return b.session.Close()
}

// Fatal is closed when the gateway connection is lost for good. The
// caller shuts the application down when it fires.
func (b *Bot) Fatal() <-chan struct{} {
	return b.fatal
}

// handleDisconnect notifies the operator and signals shutdown when the
// gateway connection drops. Close stops the session too, so an
// intentional shutdown is not reported.
func (b *Bot) handleDisconnect(s *discordgo.Session, d *discordgo.Disconnect) {
	select {
	case <-b.stop:
		return
	default:
	}

	log.Error("Gateway connection lost")
	b.notifier.Critical("Gateway Fatal Error", "The gateway connection was lost. Shutting down.")
	b.fatalOnce.Do(func() {
		close(b.fatal)
	})
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)

	case discordgo.InteractionApplicationCommandAutocomplete:
		if i.ApplicationCommandData().Name == "panel" {
			b.panels.HandleAutocomplete(s, i)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, "panel:"):
			b.panels.HandleComponent(s, i)
		case strings.HasPrefix(customID, "role:"):
			b.roles.HandleComponent(s, i)
		}

	case discordgo.InteractionModalSubmit:
		if strings.HasPrefix(i.ModalSubmitData().CustomID, "panel:") {
			b.panels.HandleModalSubmit(s, i)
		}
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "panel":
		b.panels.HandlePanelCommand(s, i)
	case "config":
		b.panels.HandleConfigCommand(s, i)
	case "ping":
		b.handlePing(s, i)
	case "about":
		b.handleAbout(s, i)
	case "help":
		b.handleHelp(s, i)
	}
}

func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	gatewayRTT := s.HeartbeatLatency()

	dbStart := time.Now()
	dbErr := b.db.Ping(context.Background())
	dbRTT := time.Since(dbStart)

	dbLine := fmt.Sprintf("Database: %dms", dbRTT.Milliseconds())
	if dbErr != nil {
		dbLine = "Database: unreachable"
	}

	message := fmt.Sprintf("🏓 Pong!\nGateway: %dms\n%s", gatewayRTT.Milliseconds(), dbLine)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to ping command: %v", err)
	}
}

func (b *Bot) handleAbout(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title:       b.config.BotName,
		Description: "Self-assignable role panels for your server.",
		Color:       0x5865F2,
	}
	if b.config.DeveloperID != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Developer",
			Value:  fmt.Sprintf("<@%s>", b.config.DeveloperID),
			Inline: true,
		})
	}
	if b.config.GitHubURL != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Source",
			Value:  b.config.GitHubURL,
			Inline: true,
		})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to about command: %v", err)
	}
}

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title: "Commands",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "/panel create",
				Value: "Create a new role panel (requires Manage Roles).",
			},
			{
				Name:  "/panel list",
				Value: "List this server's role panels.",
			},
			{
				Name:  "/panel edit <name>",
				Value: "Open the panel editor.",
			},
			{
				Name:  "/config audit-channel [channel]",
				Value: "Set or clear the audit log channel (requires Administrator).",
			},
			{
				Name:  "/config show",
				Value: "Show the current server settings.",
			},
		},
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to help command: %v", err)
	}
}
