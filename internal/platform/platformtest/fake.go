// Package platformtest provides an in-memory platform.Client for tests.
package platformtest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/staticbot/staticbot/internal/platform"
)

// Sent records one outbound message.
type Sent struct {
	SpaceID   string
	Text      string
	ReplyToID string
}

// Fake is an in-memory platform.Client. Zero value is usable.
type Fake struct {
	mu sync.Mutex

	SelfID       string
	Participants map[string]*platform.Participant
	Channels     map[string]*platform.ConversationSpace
	// events per space, oldest first
	events map[string][]platform.Event
	grants map[string]map[string]bool
	nextID int

	// Errs forces an error for the named method (e.g. "CreateChannel").
	Errs map[string]error

	SentMessages []Sent
	Purged       map[string]int
}

func (f *Fake) init() {
	if f.Participants == nil {
		f.Participants = map[string]*platform.Participant{}
	}
	if f.Channels == nil {
		f.Channels = map[string]*platform.ConversationSpace{}
	}
	if f.events == nil {
		f.events = map[string][]platform.Event{}
	}
	if f.grants == nil {
		f.grants = map[string]map[string]bool{}
	}
	if f.Purged == nil {
		f.Purged = map[string]int{}
	}
}

func (f *Fake) fail(method string) error {
	if f.Errs == nil {
		return nil
	}
	return f.Errs[method]
}

// AddParticipant registers a workspace member.
func (f *Fake) AddParticipant(p *platform.Participant) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	f.Participants[p.ID] = p
}

// AddChannel registers a conversation space.
func (f *Fake) AddChannel(c *platform.ConversationSpace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	f.Channels[c.ID] = c
}

// AddEvent appends an event to its space's history and returns it.
func (f *Fake) AddEvent(ev platform.Event) platform.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if ev.ID == "" {
		f.nextID++
		ev.ID = fmt.Sprintf("ev-%d", f.nextID)
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Unix(int64(1700000000+len(f.events[ev.SpaceID])), 0)
	}
	f.events[ev.SpaceID] = append(f.events[ev.SpaceID], ev)
	return ev
}

// GrantView sets a visibility grant directly.
func (f *Fake) GrantView(spaceID, participantID string, view bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if f.grants[spaceID] == nil {
		f.grants[spaceID] = map[string]bool{}
	}
	f.grants[spaceID][participantID] = view
}

// HasGrant reports whether a grant record exists and whether it allows view.
func (f *Fake) HasGrant(spaceID, participantID string) (exists, view bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	view, exists = f.grants[spaceID][participantID]
	return exists, view
}

// EventByID returns a copy of the stored event, if present.
func (f *Fake) EventByID(spaceID, eventID string) (platform.Event, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	for _, ev := range f.events[spaceID] {
		if ev.ID == eventID {
			return ev, true
		}
	}
	return platform.Event{}, false
}

func (f *Fake) BotID() string { return f.SelfID }

func (f *Fake) ResolveParticipant(_ context.Context, id string) (*platform.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("ResolveParticipant"); err != nil {
		return nil, err
	}
	return f.Participants[id], nil
}

func (f *Fake) ResolveParticipantByName(_ context.Context, name string) (*platform.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("ResolveParticipantByName"); err != nil {
		return nil, err
	}
	for _, p := range f.Participants {
		if p.Username+"#"+p.Discriminator == name {
			return p, nil
		}
	}
	return nil, nil
}

func (f *Fake) ListChannels(_ context.Context) ([]platform.ConversationSpace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("ListChannels"); err != nil {
		return nil, err
	}
	out := make([]platform.ConversationSpace, 0, len(f.Channels))
	for _, c := range f.Channels {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fake) GetChannel(_ context.Context, id string) (*platform.ConversationSpace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("GetChannel"); err != nil {
		return nil, err
	}
	c, ok := f.Channels[id]
	if !ok {
		return nil, platform.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *Fake) Grants(_ context.Context, spaceID string) ([]platform.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("Grants"); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(f.grants[spaceID]))
	for id := range f.grants[spaceID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]platform.Grant, 0, len(ids))
	for _, id := range ids {
		out = append(out, platform.Grant{ParticipantID: id, View: f.grants[spaceID][id]})
	}
	return out, nil
}

func (f *Fake) History(_ context.Context, spaceID string, limit int, beforeID string, oldestFirst bool) ([]platform.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("History"); err != nil {
		return nil, err
	}
	evs := f.events[spaceID]
	if beforeID != "" {
		cut := -1
		for i, ev := range evs {
			if ev.ID == beforeID {
				cut = i
				break
			}
		}
		if cut >= 0 {
			evs = evs[:cut]
		}
	}
	out := make([]platform.Event, len(evs))
	copy(out, evs)
	if !oldestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *Fake) GetEvent(_ context.Context, spaceID, eventID string) (*platform.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("GetEvent"); err != nil {
		return nil, err
	}
	for _, ev := range f.events[spaceID] {
		if ev.ID == eventID {
			cp := ev
			return &cp, nil
		}
	}
	return nil, platform.ErrNotFound
}

func (f *Fake) CreateChannel(_ context.Context, categoryID, name, _ string) (*platform.ConversationSpace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("CreateChannel"); err != nil {
		return nil, err
	}
	f.nextID++
	c := &platform.ConversationSpace{
		ID:         fmt.Sprintf("ch-%d", f.nextID),
		Name:       name,
		CategoryID: categoryID,
		Text:       true,
		CreatedAt:  time.Unix(int64(1700000000+f.nextID), 0),
	}
	f.Channels[c.ID] = c
	return c, nil
}

func (f *Fake) DeleteChannel(_ context.Context, spaceID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("DeleteChannel"); err != nil {
		return err
	}
	if _, ok := f.Channels[spaceID]; !ok {
		return platform.ErrNotFound
	}
	delete(f.Channels, spaceID)
	delete(f.events, spaceID)
	delete(f.grants, spaceID)
	return nil
}

func (f *Fake) SetVisibilityGrant(_ context.Context, spaceID, participantID string, view bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("SetVisibilityGrant"); err != nil {
		return err
	}
	if f.grants[spaceID] == nil {
		f.grants[spaceID] = map[string]bool{}
	}
	f.grants[spaceID][participantID] = view
	return nil
}

func (f *Fake) ClearVisibilityGrant(_ context.Context, spaceID, participantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("ClearVisibilityGrant"); err != nil {
		return err
	}
	delete(f.grants[spaceID], participantID)
	return nil
}

func (f *Fake) AddTag(_ context.Context, participantID, tagID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("AddTag"); err != nil {
		return err
	}
	p, ok := f.Participants[participantID]
	if !ok {
		return platform.ErrNotFound
	}
	if !p.HasTag(tagID) {
		p.TagIDs = append(p.TagIDs, tagID)
	}
	return nil
}

func (f *Fake) RemoveTag(_ context.Context, participantID, tagID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("RemoveTag"); err != nil {
		return err
	}
	p, ok := f.Participants[participantID]
	if !ok {
		return platform.ErrNotFound
	}
	out := p.TagIDs[:0]
	for _, id := range p.TagIDs {
		if id != tagID {
			out = append(out, id)
		}
	}
	p.TagIDs = out
	return nil
}

func (f *Fake) PinEvent(_ context.Context, spaceID, eventID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("PinEvent"); err != nil {
		return err
	}
	return f.setPinned(spaceID, eventID, true)
}

func (f *Fake) UnpinEvent(_ context.Context, spaceID, eventID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("UnpinEvent"); err != nil {
		return err
	}
	return f.setPinned(spaceID, eventID, false)
}

func (f *Fake) setPinned(spaceID, eventID string, pinned bool) error {
	for i, ev := range f.events[spaceID] {
		if ev.ID == eventID {
			f.events[spaceID][i].Pinned = pinned
			return nil
		}
	}
	return platform.ErrNotFound
}

func (f *Fake) PurgeEvents(_ context.Context, spaceID string, limit int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("PurgeEvents"); err != nil {
		return err
	}
	evs := f.events[spaceID]
	if limit > len(evs) {
		limit = len(evs)
	}
	f.events[spaceID] = evs[:len(evs)-limit]
	f.Purged[spaceID] += limit
	return nil
}

func (f *Fake) SendEvent(_ context.Context, spaceID, text, replyToID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.init()
	if err := f.fail("SendEvent"); err != nil {
		return err
	}
	f.SentMessages = append(f.SentMessages, Sent{SpaceID: spaceID, Text: text, ReplyToID: replyToID})
	ev := platform.Event{
		SpaceID:   spaceID,
		AuthorID:  f.SelfID,
		Content:   text,
		ReplyToID: replyToID,
	}
	f.nextID++
	ev.ID = fmt.Sprintf("ev-%d", f.nextID)
	ev.CreatedAt = time.Unix(int64(1700000000+f.nextID), 0)
	rest := text
	for {
		start := strings.Index(rest, "<@")
		if start < 0 {
			break
		}
		rest = rest[start+2:]
		end := strings.Index(rest, ">")
		if end < 0 {
			break
		}
		ev.MentionIDs = append(ev.MentionIDs, strings.TrimPrefix(rest[:end], "!"))
		rest = rest[end+1:]
	}
	f.events[spaceID] = append(f.events[spaceID], ev)
	return nil
}

// LastSent returns the most recent outbound message to the space.
func (f *Fake) LastSent(spaceID string) (Sent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.SentMessages) - 1; i >= 0; i-- {
		if f.SentMessages[i].SpaceID == spaceID {
			return f.SentMessages[i], true
		}
	}
	return Sent{}, false
}

var _ platform.Client = (*Fake)(nil)
