package bot

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Dnns01/fernuni-bot/internal/constants"
	"github.com/Dnns01/fernuni-bot/internal/store"
	"github.com/Dnns01/fernuni-bot/internal/utils"
)

// AddAppointment handles `!add-appointment`. Date and time are parsed
// against the configured layout, reminder and recurrence against the
// duration grammar. Validation failures are reported in the channel and
// leave the store untouched.
func (b *Bot) AddAppointment(channelID, authorID, date, timeOfDay, reminderSpec, title, recurringSpec string) {
	dateTime, err := time.ParseInLocation(b.layout, date+" "+timeOfDay, time.Local)
	if err != nil {
		b.reply(channelID, constants.MsgInvalidDateTime)
		return
	}

	if !utils.IsValidDuration(reminderSpec) {
		b.reply(channelID, constants.MsgInvalidReminder)
		return
	}
	reminder := utils.ToMinutes(reminderSpec)

	recurring := 0
	if recurringSpec != "" {
		if !utils.IsValidDuration(recurringSpec) {
			b.reply(channelID, constants.MsgInvalidRecurring)
			return
		}
		recurring = utils.ToMinutes(recurringSpec)
	}

	author, _ := strconv.ParseInt(authorID, 10, 64)
	if err := b.createAppointment(channelID, author, dateTime, reminder, title, recurring); err != nil {
		log.Printf("create appointment %q in channel %s: %v", title, channelID, err)
	}
}

// createAppointment posts the announcement, attaches the vote reactions and
// registers the appointment under the announcement's message ID. The
// scheduler reuses this path when re-creating recurring appointments.
func (b *Bot) createAppointment(channelID string, authorID int64, dateTime time.Time, reminder int, title string, recurring int) error {
	msg, err := b.session.ChannelMessageSendEmbed(channelID, appointmentEmbed(b.layout, dateTime, reminder, title, recurring))
	if err != nil {
		return fmt.Errorf("post announcement: %w", err)
	}

	for _, emoji := range []string{constants.EmojiThumbsUp, constants.EmojiTrash} {
		if err := b.session.MessageReactionAdd(channelID, msg.ID, emoji); err != nil {
			log.Printf("add reaction %s to message %s: %v", emoji, msg.ID, err)
		}
	}

	b.store.Add(channelID, msg.ID, &store.Appointment{
		DateTime:         dateTime.Format(b.layout),
		Reminder:         reminder,
		OriginalReminder: reminder,
		Title:            title,
		AuthorID:         authorID,
		Recurring:        recurring,
	})
	if err := b.store.Save(); err != nil {
		return err
	}

	log.Printf("✅ appointment %q registered in channel %s (message %s)", title, channelID, msg.ID)
	return nil
}

func appointmentEmbed(layout string, dateTime time.Time, reminder int, title string, recurring int) *discordgo.MessageEmbed {
	desc := "Wenn du eine Benachrichtigung zum Beginn des Termins"
	if reminder > 0 {
		desc += fmt.Sprintf(", sowie %d Minuten vorher,", reminder)
	}
	desc += " erhalten möchtest, reagiere mit :thumbsup: auf diese Nachricht."

	embed := &discordgo.MessageEmbed{
		Title:       constants.TitleAppointment,
		Description: desc,
		Color:       constants.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Titel", Value: title},
			{Name: "Startzeitpunkt", Value: dateTime.Format(layout)},
		},
	}
	if reminder > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Benachrichtigung", Value: fmt.Sprintf("%d Minuten vor dem Start", reminder),
		})
	}
	if recurring > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Wiederholung", Value: fmt.Sprintf("Alle %d Minuten", recurring),
		})
	}
	return embed
}

// ListAppointments handles `!appointments`. Entries whose announcement
// message no longer exists are pruned from the store on the way.
func (b *Bot) ListAppointments(channelID, guildID string) {
	apps := b.store.Channel(channelID)
	if len(apps) == 0 {
		b.reply(channelID, constants.MsgNoAppointments)
		return
	}

	ids := make([]string, 0, len(apps))
	for id := range apps {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	sb.WriteString("Termine dieses Channels:\n")
	pruned := false

	for _, id := range ids {
		msg, err := b.session.ChannelMessage(channelID, id)
		if err != nil {
			if isNotFound(err) {
				b.store.Remove(channelID, id)
				pruned = true
				continue
			}
			log.Printf("fetch message %s in channel %s: %v", id, channelID, err)
			continue
		}
		app := apps[id]
		fmt.Fprintf(&sb, "%s: %s => https://discord.com/channels/%s/%s/%s\n",
			app.DateTime, app.Title, guildID, channelID, msg.ID)
	}

	if pruned {
		if err := b.store.Save(); err != nil {
			log.Printf("save after pruning channel %s: %v", channelID, err)
		}
	}
	b.reply(channelID, sb.String())
}

// deleteAppointment removes an appointment on the author's trash reaction.
// Reactions by anyone else are ignored.
func (b *Bot) deleteAppointment(channelID, messageID, userID string) {
	app, ok := b.store.Get(channelID, messageID)
	if !ok {
		return
	}
	uid, _ := strconv.ParseInt(userID, 10, 64)
	if uid != app.AuthorID {
		return
	}

	if err := b.session.ChannelMessageDelete(channelID, messageID); err != nil && !isNotFound(err) {
		log.Printf("delete announcement %s in channel %s: %v", messageID, channelID, err)
		return
	}
	if b.store.Remove(channelID, messageID) {
		if err := b.store.Save(); err != nil {
			log.Printf("save after deleting appointment %s: %v", messageID, err)
		}
		log.Printf("🗑 appointment %q deleted by its author", app.Title)
	}
}
