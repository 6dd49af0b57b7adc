package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"rolepanel/bot"
	"rolepanel/config"
	"rolepanel/database"
	"rolepanel/health"
	"rolepanel/notify"
	"rolepanel/repository"
	"rolepanel/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting role panel bot...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	notifier := notify.NewNotifier(cfg.ErrorWebhookURL)
	notifier.Start()

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}
	discord := bot.NewSessionAdapter(session)

	log.Info("Initializing services...")
	panelRepo := repository.NewPanelRepository(db)
	panelRoleRepo := repository.NewPanelRoleRepository(db)
	configRepo := repository.NewGuildConfigRepository(db)

	auditLogger := service.NewAuditService(configRepo, discord)
	panelService := service.NewPanelService(panelRepo, panelRoleRepo, discord)
	roleService := service.NewRoleService(panelRepo, panelRoleRepo, discord, auditLogger)
	configService := service.NewGuildConfigService(configRepo)

	healthServer := health.NewServer(cfg.HealthPort, db)
	healthServer.Start()

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		BotName:     cfg.BotName,
		DeveloperID: cfg.BotDeveloperID,
		GitHubURL:   cfg.BotGitHubURL,
	}
	discordBot, err := bot.New(botConfig, session, db, panelService, roleService, configService, notifier)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	healthServer.SetReady(true)

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	select {
	case <-ctx.Done():
	case <-discordBot.Fatal():
		log.Error("Gateway connection lost, shutting down")
	}

	log.Info("Shutting down bot...")
	healthServer.SetReady(false)

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	// Flush queued error notifications before exiting
	notifier.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error shutting down health server: %v", err)
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}
