package bot

import (
	"log"
	"sync/atomic"

	"guardian-bot/crossguild"
	"guardian-bot/model"
	"guardian-bot/scanner"
	"guardian-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

const pingBufferCapacity = 360 // 3h of samples at the default 30s interval

type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	DB                 *sqlx.DB
	Engine             *scanner.Engine
	Sync               *crossguild.Service
	Audit              *utils.AuditLogger
	Pings              *model.SampleBuffer

	config    atomic.Value // *model.Config
	scheduler *Scheduler
}

func New(cfg *model.Config, db *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentGuildModeration
	dg.StateEnabled = false

	audit := utils.NewAuditLogger(cfg.LogWebhookURL)
	b := &Bot{
		Session: dg,
		DB:      db,
		Audit:   audit,
		Pings:   model.NewSampleBuffer(pingBufferCapacity),
	}
	b.config.Store(cfg)

	client := scanner.NewSessionClient(dg)
	b.Engine = scanner.New(db, client, b, audit)
	b.Sync = crossguild.New(db, client, audit)
	b.scheduler = NewScheduler(b)
	return b, nil
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetDB() *sqlx.DB {
	return b.DB
}

func (b *Bot) GetScheduler() *Scheduler {
	return b.scheduler
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	b.scheduler.Stop()
	b.Session.Close()
	b.DB.Close()
}
