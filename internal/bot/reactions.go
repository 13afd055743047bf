package bot

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Dnns01/fernuni-bot/internal/constants"
)

// HandleReactionAdd is the discordgo handler for reaction-add events. The
// bot's own reactions (attached right after posting) are ignored.
func (b *Bot) HandleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}
	b.handleReaction(r.ChannelID, r.MessageID, r.UserID, r.Emoji.Name)
}

// handleReaction dispatches on emoji identity and the embed title of the
// reacted-to message.
func (b *Bot) handleReaction(channelID, messageID, userID, emoji string) {
	if emoji != constants.EmojiTrash && emoji != constants.EmojiStop {
		return
	}

	msg, err := b.session.ChannelMessage(channelID, messageID)
	if err != nil {
		if !isNotFound(err) {
			log.Printf("fetch reacted message %s in channel %s: %v", messageID, channelID, err)
		}
		return
	}
	if len(msg.Embeds) == 0 {
		return
	}
	title := msg.Embeds[0].Title

	switch {
	case emoji == constants.EmojiTrash && title == constants.TitleAppointment:
		b.deleteAppointment(channelID, messageID, userID)
	case emoji == constants.EmojiTrash && strings.HasPrefix(title, constants.TitlePoll):
		b.deletePollByReaction(msg, userID)
	case emoji == constants.EmojiStop && title == constants.TitlePoll:
		b.closePollByReaction(msg, userID)
	}
}

func (b *Bot) deletePollByReaction(msg *discordgo.Message, userID string) {
	p, err := PollFromMessage(msg)
	if err != nil {
		log.Printf("hydrate poll from message %s: %v", msg.ID, err)
		return
	}
	if p.authorID != userID {
		return
	}
	if err := p.Delete(b.session); err != nil {
		log.Printf("delete poll %s: %v", msg.ID, err)
	}
}

func (b *Bot) closePollByReaction(msg *discordgo.Message, userID string) {
	p, err := PollFromMessage(msg)
	if err != nil {
		log.Printf("hydrate poll from message %s: %v", msg.ID, err)
		return
	}
	if p.authorID != userID {
		return
	}
	if err := p.Close(b.session, b.botID); err != nil {
		log.Printf("close poll %s: %v", msg.ID, err)
		return
	}
	log.Printf("🛑 poll %q closed", p.question)
}
