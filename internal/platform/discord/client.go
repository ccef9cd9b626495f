// Package discord implements the platform client on top of the Discord
// REST and gateway APIs.
package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/staticbot/staticbot/internal/platform"
)

const purgePageSize = 100

// Client adapts a discordgo session to the platform capability surface.
// All operations are scoped to a single guild.
type Client struct {
	session *discordgo.Session
	guildID string
	botID   string
}

// NewClient wraps an opened session. The session must be connected so the
// bot's own user is known.
func NewClient(session *discordgo.Session, guildID string) (*Client, error) {
	if session.State == nil || session.State.User == nil {
		return nil, errors.New("discord: session is not connected")
	}
	return &Client{
		session: session,
		guildID: guildID,
		botID:   session.State.User.ID,
	}, nil
}

func (c *Client) BotID() string { return c.botID }

// mapErr translates Discord REST errors into the platform sentinels so
// callers can branch on permission and existence failures.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		switch rest.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", platform.ErrForbidden, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", platform.ErrNotFound, err)
		}
	}
	return err
}

func (c *Client) ResolveParticipant(ctx context.Context, id string) (*platform.Participant, error) {
	member, err := c.session.GuildMember(c.guildID, id, discordgo.WithContext(ctx))
	if err != nil {
		if isUnknownMember(err) {
			return nil, nil
		}
		return nil, mapErr(err)
	}
	return memberToParticipant(member), nil
}

// isUnknownMember reports whether err says the member (not the guild) does
// not exist. A 404 for the guild itself must surface as a not-found error,
// not as an unresolved participant.
func isUnknownMember(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) || rest.Message == nil {
		return false
	}
	return rest.Message.Code == discordgo.ErrCodeUnknownMember ||
		rest.Message.Code == discordgo.ErrCodeUnknownUser
}

func (c *Client) ResolveParticipantByName(ctx context.Context, name string) (*platform.Participant, error) {
	username, discriminator := name, ""
	if i := strings.LastIndex(name, "#"); i >= 0 {
		username, discriminator = name[:i], name[i+1:]
	}
	if username == "" {
		return nil, nil
	}
	members, err := c.session.GuildMembersSearch(c.guildID, username, 1000, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapErr(err)
	}
	for _, m := range members {
		if m.User == nil || m.User.Username != username {
			continue
		}
		if discriminator != "" && m.User.Discriminator != discriminator {
			continue
		}
		return memberToParticipant(m), nil
	}
	return nil, nil
}

func memberToParticipant(m *discordgo.Member) *platform.Participant {
	p := &platform.Participant{Nickname: m.Nick, TagIDs: m.Roles}
	if m.User != nil {
		p.ID = m.User.ID
		p.Username = m.User.Username
		p.Discriminator = m.User.Discriminator
	}
	return p
}

func (c *Client) ListChannels(ctx context.Context) ([]platform.ConversationSpace, error) {
	channels, err := c.session.GuildChannels(c.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapErr(err)
	}
	out := make([]platform.ConversationSpace, 0, len(channels))
	for _, ch := range channels {
		out = append(out, *channelToSpace(ch))
	}
	return out, nil
}

func (c *Client) GetChannel(ctx context.Context, id string) (*platform.ConversationSpace, error) {
	ch, err := c.session.Channel(id, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapErr(err)
	}
	return channelToSpace(ch), nil
}

func channelToSpace(ch *discordgo.Channel) *platform.ConversationSpace {
	space := &platform.ConversationSpace{
		ID:         ch.ID,
		Name:       ch.Name,
		CategoryID: ch.ParentID,
		Text:       ch.Type == discordgo.ChannelTypeGuildText,
	}
	if ts, err := discordgo.SnowflakeTimestamp(ch.ID); err == nil {
		space.CreatedAt = ts
	}
	return space
}

// Grants reads the per-member permission overwrites of the channel. The
// bot's own overwrite is not a membership grant and is skipped.
func (c *Client) Grants(ctx context.Context, spaceID string) ([]platform.Grant, error) {
	ch, err := c.session.Channel(spaceID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapErr(err)
	}
	var out []platform.Grant
	for _, ow := range ch.PermissionOverwrites {
		if ow.Type != discordgo.PermissionOverwriteTypeMember || ow.ID == c.botID {
			continue
		}
		out = append(out, platform.Grant{
			ParticipantID: ow.ID,
			View:          ow.Allow&discordgo.PermissionViewChannel != 0,
		})
	}
	return out, nil
}

func (c *Client) History(ctx context.Context, spaceID string, limit int, beforeID string, oldestFirst bool) ([]platform.Event, error) {
	if oldestFirst {
		return c.historyOldest(ctx, spaceID, limit, beforeID)
	}
	messages, err := c.session.ChannelMessages(spaceID, limit, beforeID, "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapErr(err)
	}
	out := make([]platform.Event, 0, len(messages))
	for _, m := range messages {
		out = append(out, *messageToEvent(m))
	}
	return out, nil
}

// historyOldest pages from the start of the channel. The channel ID is a
// snowflake older than every message in it, so it works as the initial
// "after" cursor.
func (c *Client) historyOldest(ctx context.Context, spaceID string, limit int, beforeID string) ([]platform.Event, error) {
	messages, err := c.session.ChannelMessages(spaceID, limit, "", spaceID, "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapErr(err)
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	out := make([]platform.Event, 0, len(messages))
	for _, m := range messages {
		if m.ID == beforeID && beforeID != "" {
			break
		}
		out = append(out, *messageToEvent(m))
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *Client) GetEvent(ctx context.Context, spaceID, eventID string) (*platform.Event, error) {
	m, err := c.session.ChannelMessage(spaceID, eventID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapErr(err)
	}
	return messageToEvent(m), nil
}

func messageToEvent(m *discordgo.Message) *platform.Event {
	ev := &platform.Event{
		ID:        m.ID,
		SpaceID:   m.ChannelID,
		Content:   m.Content,
		Pinned:    m.Pinned,
		CreatedAt: m.Timestamp,
	}
	if m.Author != nil {
		ev.AuthorID = m.Author.ID
	}
	if m.MessageReference != nil {
		ev.ReplyToID = m.MessageReference.MessageID
	}
	for _, u := range m.Mentions {
		ev.MentionIDs = append(ev.MentionIDs, u.ID)
	}
	return ev
}

// CreateChannel creates a private text channel under the category: hidden
// from everyone, visible to the bot itself. Member grants are added
// separately.
func (c *Client) CreateChannel(ctx context.Context, categoryID, name, reason string) (*platform.ConversationSpace, error) {
	data := discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: categoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:   c.guildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    c.botID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel,
			},
		},
	}
	ch, err := c.session.GuildChannelCreateComplex(c.guildID, data,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(reason))
	if err != nil {
		return nil, mapErr(err)
	}
	return channelToSpace(ch), nil
}

func (c *Client) DeleteChannel(ctx context.Context, spaceID, reason string) error {
	_, err := c.session.ChannelDelete(spaceID,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(reason))
	return mapErr(err)
}

func (c *Client) SetVisibilityGrant(ctx context.Context, spaceID, participantID string, view bool) error {
	var allow, deny int64
	if view {
		allow = discordgo.PermissionViewChannel
	} else {
		deny = discordgo.PermissionViewChannel
	}
	err := c.session.ChannelPermissionSet(spaceID, participantID,
		discordgo.PermissionOverwriteTypeMember, allow, deny, discordgo.WithContext(ctx))
	return mapErr(err)
}

func (c *Client) ClearVisibilityGrant(ctx context.Context, spaceID, participantID string) error {
	err := c.session.ChannelPermissionDelete(spaceID, participantID, discordgo.WithContext(ctx))
	return mapErr(err)
}

func (c *Client) AddTag(ctx context.Context, participantID, tagID string) error {
	err := c.session.GuildMemberRoleAdd(c.guildID, participantID, tagID, discordgo.WithContext(ctx))
	return mapErr(err)
}

func (c *Client) RemoveTag(ctx context.Context, participantID, tagID string) error {
	err := c.session.GuildMemberRoleRemove(c.guildID, participantID, tagID, discordgo.WithContext(ctx))
	return mapErr(err)
}

func (c *Client) PinEvent(ctx context.Context, spaceID, eventID, reason string) error {
	err := c.session.ChannelMessagePin(spaceID, eventID,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(reason))
	return mapErr(err)
}

func (c *Client) UnpinEvent(ctx context.Context, spaceID, eventID, reason string) error {
	err := c.session.ChannelMessageUnpin(spaceID, eventID,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(reason))
	return mapErr(err)
}

// PurgeEvents deletes up to limit of the newest messages, paging through
// history and bulk-deleting each page.
func (c *Client) PurgeEvents(ctx context.Context, spaceID string, limit int) error {
	remaining := limit
	before := ""
	for remaining > 0 {
		page := remaining
		if page > purgePageSize {
			page = purgePageSize
		}
		messages, err := c.session.ChannelMessages(spaceID, page, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return mapErr(err)
		}
		if len(messages) == 0 {
			return nil
		}
		ids := make([]string, 0, len(messages))
		for _, m := range messages {
			ids = append(ids, m.ID)
		}
		if len(ids) == 1 {
			err = c.session.ChannelMessageDelete(spaceID, ids[0], discordgo.WithContext(ctx))
		} else {
			err = c.session.ChannelMessagesBulkDelete(spaceID, ids, discordgo.WithContext(ctx))
		}
		if err != nil {
			return mapErr(err)
		}
		before = ids[len(ids)-1]
		remaining -= len(ids)
	}
	return nil
}

func (c *Client) SendEvent(ctx context.Context, spaceID, text, replyToID string) error {
	var err error
	if replyToID != "" {
		_, err = c.session.ChannelMessageSendReply(spaceID, text, &discordgo.MessageReference{
			MessageID: replyToID,
			ChannelID: spaceID,
			GuildID:   c.guildID,
		}, discordgo.WithContext(ctx))
	} else {
		_, err = c.session.ChannelMessageSend(spaceID, text, discordgo.WithContext(ctx))
	}
	return mapErr(err)
}

var _ platform.Client = (*Client)(nil)
