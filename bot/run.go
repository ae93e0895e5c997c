package bot

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"guardian-bot/commands"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (b *Bot) Run() {
	if err := b.Session.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	log.Println("Registering commands for configured guilds...")
	cmds := commands.Generate()
	for guildID := range b.GetConfig().Guilds {
		registered, err := b.Session.ApplicationCommandBulkOverwrite(b.GetConfig().AppID, guildID, cmds)
		if err != nil {
			log.Printf("cannot update commands for guild '%s': %v", guildID, err)
			continue
		}
		b.RegisteredCommands = append(b.RegisteredCommands, registered...)
	}

	b.scheduler.Start()

	if addr := b.GetConfig().MetricsAddr; addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Printf("Serving metrics on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("Metrics listener stopped: %v", err)
			}
		}()
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	b.Audit.Info("system", "startup", "Bot has started successfully.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
