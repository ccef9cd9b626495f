package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/staticbot/staticbot/internal/bus"
)

// NewSession builds an unopened session with the gateway intents the bot
// needs: guild metadata, members, message content, and DMs.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent
	return session, nil
}

// Gateway forwards gateway message events onto the event bus.
type Gateway struct {
	session *discordgo.Session
	bus     *bus.EventBus
	logger  *slog.Logger
}

// NewGateway creates a gateway bound to the session and bus.
func NewGateway(session *discordgo.Session, eventBus *bus.EventBus, logger *slog.Logger) *Gateway {
	return &Gateway{session: session, bus: eventBus, logger: logger}
}

// Bind registers the gateway's event handlers on the session.
func (g *Gateway) Bind() {
	g.session.AddHandler(g.onMessageCreate)
}

func (g *Gateway) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}
	ev := &bus.InboundEvent{
		EventID:     m.ID,
		SpaceID:     m.ChannelID,
		WorkspaceID: m.GuildID,
		AuthorID:    m.Author.ID,
		AuthorIsBot: m.Author.Bot,
		Content:     m.Content,
		DM:          m.GuildID == "",
		TraceID:     uuid.NewString(),
	}
	if m.MessageReference != nil {
		ev.ReplyToID = m.MessageReference.MessageID
	}
	if !ev.DM {
		ev.CategoryID = g.categoryOf(s, m.ChannelID)
	}
	g.bus.Publish(ev)
}

// categoryOf resolves the channel's parent category, preferring the state
// cache over a REST round trip.
func (g *Gateway) categoryOf(s *discordgo.Session, channelID string) string {
	if ch, err := s.State.Channel(channelID); err == nil {
		return ch.ParentID
	}
	ch, err := s.Channel(channelID)
	if err != nil {
		g.logger.Warn("channel lookup failed", "channel_id", channelID, "error", err)
		return ""
	}
	return ch.ParentID
}
