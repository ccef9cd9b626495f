// Package policy provides role-based command authorization.
package policy

import (
	"github.com/staticbot/staticbot/internal/config"
	"github.com/staticbot/staticbot/internal/platform"
)

// Decision is the result of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

// Resolver evaluates a participant's role tags against the configured
// policy roles. Optional roles are disabled when their ID is empty.
type Resolver struct {
	AdminTagID     string
	BlacklistTagID string
	// WhitelistTagID, when set, restricts the bot to whitelisted senders.
	WhitelistTagID string
	// OneSpaceTagID, when set, marks participants who already created a group.
	OneSpaceTagID string
	// BotTagID marks bot accounts excluded from membership listings.
	BotTagID string
}

// NewResolver builds a resolver from the configured role IDs.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		AdminTagID:     cfg.AdminRoleID,
		BlacklistTagID: cfg.BlacklistRoleID,
		WhitelistTagID: cfg.WhitelistRoleID,
		OneSpaceTagID:  cfg.OneChannelRoleID,
		BotTagID:       cfg.BotsRoleID,
	}
}

// IsAdmin reports whether the participant carries the admin tag.
func (r *Resolver) IsAdmin(p *platform.Participant) bool {
	return p.HasTag(r.AdminTagID)
}

// IsBot reports whether the participant carries the bots tag.
func (r *Resolver) IsBot(p *platform.Participant) bool {
	return p.HasTag(r.BotTagID)
}

// Authorize decides whether the sender may use the bot at all: not
// blacklisted, and whitelisted when whitelisting is enabled.
func (r *Resolver) Authorize(p *platform.Participant) Decision {
	if p.HasTag(r.BlacklistTagID) {
		return Decision{Reason: "sender_blacklisted"}
	}
	if r.WhitelistTagID != "" && !p.HasTag(r.WhitelistTagID) {
		return Decision{Reason: "sender_not_whitelisted"}
	}
	return Decision{Allowed: true, Reason: "sender_authorized"}
}

// AllowCreate decides whether the sender may create another group. Admins
// bypass the one-space limit; the limit only applies when its tag is
// configured.
func (r *Resolver) AllowCreate(p *platform.Participant) Decision {
	if r.OneSpaceTagID != "" && !r.IsAdmin(p) && p.HasTag(r.OneSpaceTagID) {
		return Decision{Reason: "one_space_limit_reached"}
	}
	return Decision{Allowed: true, Reason: "create_allowed"}
}
