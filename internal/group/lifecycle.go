// Package group manages the lifecycle of static group channels: creation
// with uniqueness enforcement, admin deletion with creator-linked cleanup,
// and the per-channel activity report.
package group

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/staticbot/staticbot/internal/naming"
	"github.com/staticbot/staticbot/internal/platform"
	"github.com/staticbot/staticbot/internal/policy"
)

var (
	// ErrExists means a channel with the normalized name already exists.
	ErrExists = errors.New("group name already exists")
	// ErrNotFound means no channel carries the normalized name.
	ErrNotFound = errors.New("group does not exist")
	// ErrNotManaged means the named channel is outside the managed category.
	ErrNotManaged = errors.New("group is not a private static")
	// ErrLimitReached means the creator already holds the one-space tag.
	ErrLimitReached = errors.New("one group per member limit reached")
	// ErrCreatorUnknown means the creator cannot be recovered from the
	// channel's first message, so the limit tag cannot be safely revoked.
	ErrCreatorUnknown = errors.New("channel creator not defined")
)

// Manager creates and deletes managed group channels.
type Manager struct {
	client     platform.Client
	policy     *policy.Resolver
	categoryID string
}

// NewManager creates a lifecycle manager for channels under categoryID.
func NewManager(client platform.Client, resolver *policy.Resolver, categoryID string) *Manager {
	return &Manager{client: client, policy: resolver, categoryID: categoryID}
}

// Create validates and normalizes rawName, enforces the one-space limit and
// name uniqueness, then creates the channel, grants the creator visibility,
// tags the creator when the limit tag is configured, and posts the welcome
// message. The welcome mention is the only durable record of who created
// the group; Delete depends on it.
func (m *Manager) Create(ctx context.Context, creator *platform.Participant, rawName, reason string) (*platform.ConversationSpace, error) {
	if !naming.Legal(rawName) {
		return nil, naming.ErrIllegalName
	}
	if d := m.policy.AllowCreate(creator); !d.Allowed {
		return nil, ErrLimitReached
	}
	name, err := naming.Normalize(rawName)
	if err != nil {
		return nil, err
	}

	channels, err := m.client.ListChannels(ctx)
	if err != nil {
		return nil, err
	}
	for _, ch := range channels {
		if strings.TrimSpace(strings.ToLower(ch.Name)) == name {
			return nil, ErrExists
		}
	}

	space, err := m.client.CreateChannel(ctx, m.categoryID, name, reason)
	if err != nil {
		return nil, err
	}
	// Grant after creation so the category's own overwrites stay intact.
	if err := m.client.SetVisibilityGrant(ctx, space.ID, creator.ID, true); err != nil {
		return nil, err
	}
	if tag := m.policy.OneSpaceTagID; tag != "" {
		if err := m.client.AddTag(ctx, creator.ID, tag); err != nil {
			return nil, err
		}
	}
	if err := m.client.SendEvent(ctx, space.ID, "Welcome to your new group "+creator.Mention()+"!", ""); err != nil {
		return nil, err
	}
	return space, nil
}

// Delete removes the channel with the given raw name. When the one-space
// tag is configured, the creator is recovered from the first message's
// mention and loses the tag; an empty history or a first message without a
// mention aborts the deletion with ErrCreatorUnknown.
func (m *Manager) Delete(ctx context.Context, rawName, reason string) (string, error) {
	name, err := naming.Normalize(rawName)
	if err != nil {
		return "", err
	}

	channels, err := m.client.ListChannels(ctx)
	if err != nil {
		return "", err
	}
	var space *platform.ConversationSpace
	for i := range channels {
		if channels[i].Name == name {
			space = &channels[i]
			break
		}
	}
	if space == nil {
		return name, ErrNotFound
	}
	if space.CategoryID != m.categoryID {
		return name, ErrNotManaged
	}

	if tag := m.policy.OneSpaceTagID; tag != "" {
		oldest, err := m.client.History(ctx, space.ID, 1, "", true)
		if err != nil {
			return name, err
		}
		if len(oldest) == 0 || len(oldest[0].MentionIDs) == 0 {
			return name, ErrCreatorUnknown
		}
		if err := m.client.RemoveTag(ctx, oldest[0].MentionIDs[0], tag); err != nil {
			return name, err
		}
	}

	if err := m.client.DeleteChannel(ctx, space.ID, reason); err != nil {
		return name, err
	}
	return name, nil
}

// Activity is one line of the last-message report.
type Activity struct {
	Name string
	Last time.Time
}

// ActivityReport lists every text channel under the managed category with
// its last activity timestamp: the newest message's creation time, or the
// channel's own creation time when the channel is empty. Sorted ascending.
func (m *Manager) ActivityReport(ctx context.Context) ([]Activity, error) {
	channels, err := m.client.ListChannels(ctx)
	if err != nil {
		return nil, err
	}
	var out []Activity
	for _, ch := range channels {
		if ch.CategoryID != m.categoryID || !ch.Text {
			continue
		}
		last := ch.CreatedAt
		newest, err := m.client.History(ctx, ch.ID, 1, "", false)
		if err != nil {
			return nil, err
		}
		if len(newest) > 0 {
			last = newest[0].CreatedAt
		}
		out = append(out, Activity{Name: ch.Name, Last: last})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Last.Before(out[j].Last) })
	return out, nil
}
