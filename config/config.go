package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string

	// Database configuration
	DatabaseURL string

	// Error notification webhook (optional)
	ErrorWebhookURL string

	// Health endpoint
	HealthPort int

	// Bot identity shown by /about
	BotName        string
	BotDeveloperID string
	BotGitHubURL   string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, reading a local .env
// file first if one exists
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DiscordToken:    os.Getenv("DISCORD_TOKEN"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ErrorWebhookURL: os.Getenv("ERROR_WEBHOOK_URL"),
		HealthPort:      8080,
		BotName:         "Role Panel Bot",
		BotDeveloperID:  os.Getenv("BOT_DEVELOPER_ID"),
		BotGitHubURL:    os.Getenv("BOT_GITHUB_URL"),
		Environment:     os.Getenv("ENVIRONMENT"),
	}

	if port := os.Getenv("HEALTH_PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil || parsed <= 0 || parsed > 65535 {
			return nil, fmt.Errorf("HEALTH_PORT must be a valid port number, got %q", port)
		}
		config.HealthPort = parsed
	}

	if name := os.Getenv("BOT_NAME"); name != "" {
		config.BotName = name
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
