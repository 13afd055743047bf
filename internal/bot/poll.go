package bot

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Dnns01/fernuni-bot/internal/constants"
)

// Poll is a reaction-voted multiple choice question. It is never persisted:
// a live poll is fully described by its rendered message, so it can be
// rebuilt from that message alone.
type Poll struct {
	question string
	authorID string
	answers  []string
	// message is the rendered poll announcement; set only on hydrated polls
	// and required for tallying and closing.
	message *discordgo.Message
}

// NewPoll builds a fresh poll that has not been rendered yet.
func NewPoll(question, authorID string, answers []string) *Poll {
	return &Poll{
		question: question,
		authorID: authorID,
		answers:  answers,
	}
}

// PollFromMessage rebuilds a poll from its rendered message: author mention
// in field 0, question in the description, one answer per field from index 2.
func PollFromMessage(msg *discordgo.Message) (*Poll, error) {
	if len(msg.Embeds) == 0 {
		return nil, fmt.Errorf("message %s has no embed", msg.ID)
	}
	embed := msg.Embeds[0]
	if len(embed.Fields) < 2 {
		return nil, fmt.Errorf("message %s is not a poll", msg.ID)
	}

	p := &Poll{
		question: embed.Description,
		authorID: strings.TrimSuffix(strings.TrimPrefix(embed.Fields[0].Value, "<@!"), ">"),
		message:  msg,
	}
	for _, f := range embed.Fields[2:] {
		p.answers = append(p.answers, f.Value)
	}
	return p, nil
}

// Send renders the poll into channelID. In result mode every option is
// annotated with its vote count and non-bot voter mentions and no reactions
// are attached; otherwise one numbered reaction per option plus the trash
// and stop controls are added. More than 10 answers is rejected with a
// user-facing error before anything is posted.
func (p *Poll) Send(s Session, botID, channelID string, result bool) error {
	if len(p.answers) > 10 {
		if _, err := s.ChannelMessageSend(channelID, constants.MsgTooManyOptions); err != nil {
			log.Printf("send to channel %s failed: %v", channelID, err)
		}
		return fmt.Errorf("poll has %d answers, at most 10 are supported", len(p.answers))
	}

	title := constants.TitlePoll
	if result {
		title = constants.TitlePollResult
	}
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: p.question,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Erstellt von", Value: "<@!" + p.authorID + ">"},
			{Name: "​", Value: "​"},
		},
	}

	for i, answer := range p.answers {
		name := constants.PollOptions[i]
		value := answer

		if result {
			if r := p.reaction(constants.PollOptions[i]); r != nil {
				name += fmt.Sprintf(" : %d", r.Count-1)
				value += "\nStimmen: "
				users, err := reactionUsers(s, p.message.ChannelID, p.message.ID, r.Emoji.Name)
				if err != nil {
					return fmt.Errorf("list votes for option %d: %w", i+1, err)
				}
				for _, u := range users {
					if u.ID == botID {
						continue
					}
					value += "<@!" + u.ID + "> "
				}
			}
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: value})
	}

	msg, err := s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return fmt.Errorf("post poll: %w", err)
	}

	if !result {
		for i := range p.answers {
			if err := s.MessageReactionAdd(channelID, msg.ID, constants.PollOptions[i]); err != nil {
				log.Printf("add option reaction to poll %s: %v", msg.ID, err)
			}
		}
		for _, emoji := range []string{constants.EmojiTrash, constants.EmojiStop} {
			if err := s.MessageReactionAdd(channelID, msg.ID, emoji); err != nil {
				log.Printf("add control reaction to poll %s: %v", msg.ID, err)
			}
		}
	}
	return nil
}

// Close posts the result rendering to the poll's channel and deletes the
// original poll message. Only hydrated polls can be closed.
func (p *Poll) Close(s Session, botID string) error {
	if p.message == nil {
		return fmt.Errorf("poll %q has no rendered message", p.question)
	}
	if err := p.Send(s, botID, p.message.ChannelID, true); err != nil {
		return err
	}
	return p.Delete(s)
}

// Delete removes the rendered poll message.
func (p *Poll) Delete(s Session) error {
	if p.message == nil {
		return fmt.Errorf("poll %q has no rendered message", p.question)
	}
	if err := s.ChannelMessageDelete(p.message.ChannelID, p.message.ID); err != nil && !isNotFound(err) {
		return fmt.Errorf("delete poll message %s: %w", p.message.ID, err)
	}
	return nil
}

func (p *Poll) reaction(emoji string) *discordgo.MessageReactions {
	if p.message == nil {
		return nil
	}
	for _, r := range p.message.Reactions {
		if r.Emoji != nil && r.Emoji.Name == emoji {
			return r
		}
	}
	return nil
}

// CreatePoll handles `!poll`.
func (b *Bot) CreatePoll(channelID, authorID, question string, answers []string) {
	p := NewPoll(question, authorID, answers)
	if err := p.Send(b.session, b.botID, channelID, false); err != nil {
		log.Printf("create poll in channel %s: %v", channelID, err)
	}
}
