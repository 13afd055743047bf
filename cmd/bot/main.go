package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/Dnns01/fernuni-bot/config"
	"github.com/Dnns01/fernuni-bot/internal/api"
	"github.com/Dnns01/fernuni-bot/internal/bot"
	"github.com/Dnns01/fernuni-bot/internal/store"
)

func main() {
	cfg := config.LoadConfig()

	st := store.New(cfg.AppointmentsFile)
	if err := st.Load(); err != nil {
		// Running with an undefined store would silently drop appointments.
		log.Fatalf("load appointments: %v", err)
	}

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalf("create session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent

	b := bot.New(dg, st, cfg.DateTimeFormat)
	dg.AddHandler(b.HandleMessageCreate)
	dg.AddHandler(b.HandleReactionAdd)

	if err := dg.Open(); err != nil {
		log.Fatalf("open gateway: %v", err)
	}
	defer dg.Close()

	b.SetBotUser(dg.State.User.ID)
	b.StartScheduler()
	defer b.StopScheduler()

	if cfg.APIPort != "" {
		go func() {
			if err := api.Start(cfg.APIPort, st); err != nil {
				log.Printf("status server stopped: %v", err)
			}
		}()
	}

	log.Printf("✅ bot %s is running, press Ctrl+C to exit", dg.State.User.Username)
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc
}
