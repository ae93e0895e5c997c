package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"guardian-bot/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load builds the configuration from environment variables and the YAML
// settings file.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	webhookURL := os.Getenv("LOG_WEBHOOK_URL")
	if webhookURL == "" {
		log.Println("Warning: LOG_WEBHOOK_URL not set, audit logging will be disabled")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/guardian.db"
	}

	settingsPath := os.Getenv("SETTINGS_PATH")
	if settingsPath == "" {
		settingsPath = "data/settings.yaml"
	}

	cfg := &model.Config{
		BotToken:      token,
		AppID:         appID,
		LogWebhookURL: webhookURL,
		DatabasePath:  dbPath,
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
		Guilds:        make(map[string]model.GuildSettings),
	}

	v := viper.New()
	v.SetConfigFile(settingsPath)
	v.SetDefault("reconcile.timed_interval", 10*time.Minute)
	v.SetDefault("reconcile.regular_interval", 3*time.Minute)
	v.SetDefault("reconcile.timed_offset", 90*time.Second)
	v.SetDefault("reconcile.regular_offset", 30*time.Second)
	v.SetDefault("reconcile.ticket_close_delay", 12*time.Hour)
	v.SetDefault("reconcile.sample_interval", 30*time.Second)

	if _, err := os.Stat(settingsPath); err != nil {
		log.Printf("Warning: settings file not found at %s, using defaults.", settingsPath)
	} else if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", settingsPath, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	for guildID, gs := range cfg.Guilds {
		gs.GuildID = guildID
		cfg.Guilds[guildID] = gs
	}

	return cfg, nil
}
