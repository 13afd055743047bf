package bot

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// Session is the slice of the Discord API the bot uses. *discordgo.Session
// satisfies it; tests substitute a fake. All operations address messages and
// channels by ID and may fail.
type Session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	MessageReactions(channelID, messageID, emojiID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.User, error)
}

// reactionUsers enumerates every user who reacted with emoji, following
// pagination until a short page; a single call caps out at 100 users.
func reactionUsers(s Session, channelID, messageID, emoji string) ([]*discordgo.User, error) {
	var all []*discordgo.User
	after := ""
	for {
		page, err := s.MessageReactions(channelID, messageID, emoji, 100, "", after)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < 100 {
			return all, nil
		}
		after = page[len(page)-1].ID
	}
}

// isNotFound reports whether err positively identifies a missing channel or
// message. Only these are treated as "appointment already resolved"; any
// other platform error is retried on the next tick.
func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	code := restErr.Message.Code
	return code == discordgo.ErrCodeUnknownChannel || code == discordgo.ErrCodeUnknownMessage
}
