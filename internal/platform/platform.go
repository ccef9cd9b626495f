// Package platform defines the workspace data model and the client
// capability surface the bot needs from the chat platform.
package platform

import (
	"context"
	"time"
)

// Participant is a workspace member.
type Participant struct {
	ID            string
	Username      string
	Discriminator string
	Nickname      string
	TagIDs        []string
}

// DisplayName returns the nickname when set, otherwise the username.
func (p *Participant) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.Username
}

// Mention returns the platform mention string for the participant.
func (p *Participant) Mention() string {
	return "<@" + p.ID + ">"
}

// HasTag reports whether the participant carries the given tag.
func (p *Participant) HasTag(tagID string) bool {
	if tagID == "" {
		return false
	}
	for _, id := range p.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// ConversationSpace is a text channel in the workspace.
type ConversationSpace struct {
	ID         string
	Name       string
	CategoryID string
	Text       bool
	CreatedAt  time.Time
}

// Event is a single message in a conversation space.
type Event struct {
	ID        string
	SpaceID   string
	AuthorID  string
	Content   string
	ReplyToID string
	Pinned    bool
	// MentionIDs are the participants mentioned by the event, in order.
	MentionIDs []string
	CreatedAt  time.Time
}

// Grant is a per-participant visibility overwrite on a conversation space.
// Membership in a managed group is exactly the set of grants with View set.
type Grant struct {
	ParticipantID string
	View          bool
}

// Client is the capability surface the command engine needs from the
// platform. All mutations are remote calls against eventually consistent
// state; callers compensate with existence checks, not transactions.
type Client interface {
	// BotID returns the bot's own participant ID, used to ignore self-authored
	// events.
	BotID() string

	ResolveParticipant(ctx context.Context, id string) (*Participant, error)
	// ResolveParticipantByName resolves an exact "Name#Discriminator" string.
	// A nil participant with nil error means the name did not resolve.
	ResolveParticipantByName(ctx context.Context, name string) (*Participant, error)

	ListChannels(ctx context.Context) ([]ConversationSpace, error)
	GetChannel(ctx context.Context, id string) (*ConversationSpace, error)
	Grants(ctx context.Context, spaceID string) ([]Grant, error)

	// History returns up to limit events from the space. With beforeID set,
	// only events older than that event are returned. Events come newest
	// first unless oldestFirst is set.
	History(ctx context.Context, spaceID string, limit int, beforeID string, oldestFirst bool) ([]Event, error)
	GetEvent(ctx context.Context, spaceID, eventID string) (*Event, error)

	CreateChannel(ctx context.Context, categoryID, name, reason string) (*ConversationSpace, error)
	DeleteChannel(ctx context.Context, spaceID, reason string) error
	SetVisibilityGrant(ctx context.Context, spaceID, participantID string, view bool) error
	ClearVisibilityGrant(ctx context.Context, spaceID, participantID string) error
	AddTag(ctx context.Context, participantID, tagID string) error
	RemoveTag(ctx context.Context, participantID, tagID string) error
	PinEvent(ctx context.Context, spaceID, eventID, reason string) error
	UnpinEvent(ctx context.Context, spaceID, eventID, reason string) error
	PurgeEvents(ctx context.Context, spaceID string, limit int) error

	// SendEvent posts text to the space, optionally as a reply to another
	// event.
	SendEvent(ctx context.Context, spaceID, text, replyToID string) error
}
