package bot

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// fakeSession implements Session against in-memory messages so handlers and
// the scheduler can be exercised without a gateway connection.
type fakeSession struct {
	botID  string
	nextID int

	messages map[string]*discordgo.Message
	// reactors maps message ID → emoji → user IDs in reaction order.
	reactors map[string]map[string][]string

	textSent []sentText
	deleted  []string
}

type sentText struct {
	channelID string
	content   string
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		botID:    "bot",
		messages: make(map[string]*discordgo.Message),
		reactors: make(map[string]map[string][]string),
	}
}

func notFoundErr() error {
	return &discordgo.RESTError{
		Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMessage},
	}
}

func (f *fakeSession) newMessage(channelID string) *discordgo.Message {
	f.nextID++
	msg := &discordgo.Message{
		ID:        strconv.Itoa(f.nextID),
		ChannelID: channelID,
	}
	f.messages[msg.ID] = msg
	return msg
}

func (f *fakeSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.textSent = append(f.textSent, sentText{channelID: channelID, content: content})
	msg := f.newMessage(channelID)
	msg.Content = content
	return msg, nil
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	msg := f.newMessage(channelID)
	msg.Embeds = []*discordgo.MessageEmbed{embed}
	return msg, nil
}

func (f *fakeSession) ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	msg, ok := f.messages[messageID]
	if !ok || msg.ChannelID != channelID {
		return nil, notFoundErr()
	}
	return msg, nil
}

func (f *fakeSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	if _, ok := f.messages[messageID]; !ok {
		return notFoundErr()
	}
	delete(f.messages, messageID)
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeSession) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	msg, ok := f.messages[messageID]
	if !ok {
		return notFoundErr()
	}
	f.addReactor(msg, emojiID, f.botID)
	return nil
}

func (f *fakeSession) MessageReactions(channelID, messageID, emojiID string, limit int, beforeID, afterID string, options ...discordgo.RequestOption) ([]*discordgo.User, error) {
	if _, ok := f.messages[messageID]; !ok {
		return nil, notFoundErr()
	}
	ids := f.reactors[messageID][emojiID]
	start := 0
	if afterID != "" {
		for i, id := range ids {
			if id == afterID {
				start = i + 1
			}
		}
	}
	end := min(start+limit, len(ids))
	var users []*discordgo.User
	for _, id := range ids[start:end] {
		users = append(users, &discordgo.User{ID: id})
	}
	return users, nil
}

// react records user reactions the way Discord would report them.
func (f *fakeSession) react(messageID, emoji string, userIDs ...string) {
	msg := f.messages[messageID]
	for _, id := range userIDs {
		f.addReactor(msg, emoji, id)
	}
}

func (f *fakeSession) addReactor(msg *discordgo.Message, emoji, userID string) {
	if f.reactors[msg.ID] == nil {
		f.reactors[msg.ID] = make(map[string][]string)
	}
	f.reactors[msg.ID][emoji] = append(f.reactors[msg.ID][emoji], userID)

	for _, r := range msg.Reactions {
		if r.Emoji.Name == emoji {
			r.Count++
			return
		}
	}
	msg.Reactions = append(msg.Reactions, &discordgo.MessageReactions{
		Count: 1,
		Emoji: &discordgo.Emoji{Name: emoji},
	})
}

func (f *fakeSession) lastText() string {
	if len(f.textSent) == 0 {
		return ""
	}
	return f.textSent[len(f.textSent)-1].content
}
