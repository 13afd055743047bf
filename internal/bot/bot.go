// Package bot implements the appointment and poll features on top of the
// Discord API: prefix commands, reaction handling and the reminder tick.
package bot

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"

	"github.com/Dnns01/fernuni-bot/internal/constants"
	"github.com/Dnns01/fernuni-bot/internal/store"
	"github.com/Dnns01/fernuni-bot/internal/utils"
)

const commandPrefix = "!"

type Bot struct {
	session Session
	store   *store.Store
	// layout is the Go time layout appointments are entered and stored in.
	layout string
	botID  string
	cron   *cron.Cron
}

func New(session Session, st *store.Store, dateTimeLayout string) *Bot {
	return &Bot{
		session: session,
		store:   st,
		layout:  dateTimeLayout,
	}
}

// SetBotUser records the bot's own user ID, known once the gateway session
// is open. The bot's reactions are excluded from tallies and mentions.
func (b *Bot) SetBotUser(id string) {
	b.botID = id
}

// HandleMessageCreate is the discordgo handler for incoming messages.
func (b *Bot) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	b.handleCommand(m.ChannelID, m.GuildID, m.Author.ID, m.Content)
}

func (b *Bot) handleCommand(channelID, guildID, authorID, content string) {
	if !strings.HasPrefix(content, commandPrefix) {
		return
	}

	args := utils.SplitArgs(content)
	if len(args) == 0 {
		return
	}

	switch strings.TrimPrefix(args[0], commandPrefix) {
	case "add-appointment":
		if len(args) < 5 || len(args) > 6 {
			b.reply(channelID, "Benutzung: `!add-appointment <Datum> <Zeit> <Benachrichtigung> <Titel> [Wiederholung]`")
			return
		}
		recurring := ""
		if len(args) == 6 {
			recurring = args[5]
		}
		b.AddAppointment(channelID, authorID, args[1], args[2], args[3], args[4], recurring)
	case "appointments":
		b.ListAppointments(channelID, guildID)
	case "poll":
		if len(args) < 3 {
			b.reply(channelID, "Benutzung: `!poll \"<Frage>\" \"<Antwort>\" ...`")
			return
		}
		b.CreatePoll(channelID, authorID, args[1], args[2:])
	case "help":
		b.reply(channelID, constants.MsgHelp)
	}
}

// reply sends a plain text message, logging instead of propagating failures.
// Command handlers have nobody to return an error to.
func (b *Bot) reply(channelID, text string) {
	if _, err := b.session.ChannelMessageSend(channelID, text); err != nil {
		log.Printf("send to channel %s failed: %v", channelID, err)
	}
}
