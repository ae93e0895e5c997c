package model

import (
	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// Bot provides an interface for bot functionality to avoid circular dependencies.
type Bot interface {
	GetConfig() *Config
	GetSession() *discordgo.Session
	GetDB() *sqlx.DB
}

// ConfigProvider exposes the current configuration snapshot.
type ConfigProvider interface {
	GetConfig() *Config
}
