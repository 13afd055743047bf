package bot

import (
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Dnns01/fernuni-bot/internal/constants"
)

// StartScheduler begins the once-per-minute due-check. The cron spec fires
// at the top of every minute, so ticks are aligned the same way regardless
// of when the bot started.
func (b *Bot) StartScheduler() {
	c := cron.New()
	if _, err := c.AddFunc("* * * * *", func() { b.checkAppointments(time.Now()) }); err != nil {
		log.Fatalf("schedule reminder tick: %v", err)
	}
	c.Start()
	b.cron = c
	log.Println("⏰ reminder scheduler started")
}

func (b *Bot) StopScheduler() {
	if b.cron != nil {
		b.cron.Stop()
	}
}

func (b *Bot) checkAppointments(now time.Time) {
	for _, channelID := range b.store.ChannelIDs() {
		b.checkChannel(channelID, now)
	}
}

// checkChannel runs the due-check for one channel: send advance or due-now
// notices, delete fired announcements, re-create recurring appointments and
// persist once if anything was removed.
func (b *Bot) checkChannel(channelID string, now time.Time) {
	apps := b.store.Channel(channelID)
	var remove []string

	for messageID, app := range apps {
		dateTime, err := time.ParseInLocation(b.layout, app.DateTime, time.Local)
		if err != nil {
			log.Printf("appointment %s has unparseable date_time %q: %v", messageID, app.DateTime, err)
			continue
		}

		remindAt := dateTime.Add(-time.Duration(app.Reminder) * time.Minute)
		if now.Before(remindAt) {
			continue
		}

		msg, err := b.session.ChannelMessage(channelID, messageID)
		if err != nil {
			if isNotFound(err) {
				// Announcement vanished, treat the appointment as resolved.
				remove = append(remove, messageID)
			} else {
				log.Printf("fetch announcement %s in channel %s: %v", messageID, channelID, err)
			}
			continue
		}

		diff := int(math.Round(dateTime.Sub(now).Minutes()))
		due := false

		var sb strings.Builder
		sb.WriteString("Benachrichtigung!\nDer Termin \"" + app.Title + "\" ist ")
		if app.Reminder > 0 && diff > 0 {
			sb.WriteString("in " + strconv.Itoa(diff) + " Minuten fällig.")
			b.store.ZeroReminder(channelID, messageID)
		} else {
			sb.WriteString("jetzt fällig. :loudspeaker: ")
			due = true
			remove = append(remove, messageID)
		}
		sb.WriteString("\n")

		hasThumbsUp := false
		for _, r := range msg.Reactions {
			if r.Emoji != nil && r.Emoji.Name == constants.EmojiThumbsUp {
				hasThumbsUp = true
				break
			}
		}
		if hasThumbsUp {
			sb.WriteString(b.thumbsUpMentions(channelID, messageID))
		}

		b.reply(channelID, sb.String())

		if due {
			if err := b.session.ChannelMessageDelete(channelID, messageID); err != nil && !isNotFound(err) {
				log.Printf("delete announcement %s in channel %s: %v", messageID, channelID, err)
			}
		}
	}

	if len(remove) == 0 {
		return
	}

	for _, messageID := range remove {
		app, ok := b.store.Get(channelID, messageID)
		if !ok {
			continue
		}
		if app.Recurring > 0 {
			if dateTime, err := time.ParseInLocation(b.layout, app.DateTime, time.Local); err == nil {
				next := dateTime.Add(time.Duration(app.Recurring) * time.Minute)
				if err := b.createAppointment(channelID, app.AuthorID, next, app.ReminderSpec(), app.Title, app.Recurring); err != nil {
					log.Printf("recreate recurring appointment %q: %v", app.Title, err)
				}
			}
		}
		b.store.Remove(channelID, messageID)
	}

	if err := b.store.Save(); err != nil {
		log.Printf("save after due-check in channel %s: %v", channelID, err)
	}
}

// thumbsUpMentions mentions every user who reacted with the affirmative
// marker, excluding the bot itself.
func (b *Bot) thumbsUpMentions(channelID, messageID string) string {
	users, err := reactionUsers(b.session, channelID, messageID, constants.EmojiThumbsUp)
	if err != nil {
		log.Printf("list reactions on message %s: %v", messageID, err)
		return ""
	}
	var sb strings.Builder
	for _, u := range users {
		if u.ID != b.botID {
			sb.WriteString("<@!" + u.ID + ">")
		}
	}
	return sb.String()
}
