// Package membership derives and mutates group membership from visibility
// grants on a conversation space. Membership is never stored: a participant
// is in the group iff they hold a view grant and are not a bot account.
package membership

import (
	"context"

	"github.com/staticbot/staticbot/internal/platform"
	"github.com/staticbot/staticbot/internal/policy"
)

// Engine answers and changes membership questions for managed spaces.
type Engine struct {
	client platform.Client
	policy *policy.Resolver
}

// NewEngine creates a membership engine.
func NewEngine(client platform.Client, resolver *policy.Resolver) *Engine {
	return &Engine{client: client, policy: resolver}
}

// ChangeResult reports the outcome of an Add or Remove invocation.
type ChangeResult struct {
	// Changed lists participants whose grant was mutated, in argument order,
	// deduplicated by participant ID.
	Changed []*platform.Participant
	// Unresolved lists argument strings that did not resolve to a
	// participant, deduplicated, in first-appearance order.
	Unresolved []string
}

// Members lists the participants of the space: everyone holding an active
// view grant, excluding bot accounts. Grants pointing at participants who
// left the workspace are skipped.
func (e *Engine) Members(ctx context.Context, spaceID string) ([]*platform.Participant, error) {
	grants, err := e.client.Grants(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	var out []*platform.Participant
	for _, g := range grants {
		if !g.View {
			continue
		}
		p, err := e.client.ResolveParticipant(ctx, g.ParticipantID)
		if err != nil {
			return nil, err
		}
		if p == nil || e.policy.IsBot(p) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Add grants visibility to every resolvable name that is not already a
// member. Repeated names and names already granted within this invocation
// are mutated at most once.
func (e *Engine) Add(ctx context.Context, spaceID string, names []string) (ChangeResult, error) {
	members, err := e.Members(ctx, spaceID)
	if err != nil {
		return ChangeResult{}, err
	}
	existing := make(map[string]bool, len(members))
	for _, m := range members {
		existing[m.ID] = true
	}

	var res ChangeResult
	seen := map[string]bool{}
	badNames := map[string]bool{}
	for _, name := range names {
		p, err := e.client.ResolveParticipantByName(ctx, name)
		if err != nil {
			return ChangeResult{}, err
		}
		if p == nil {
			if !badNames[name] {
				badNames[name] = true
				res.Unresolved = append(res.Unresolved, name)
			}
			continue
		}
		if seen[p.ID] || existing[p.ID] {
			continue
		}
		if err := e.client.SetVisibilityGrant(ctx, spaceID, p.ID, true); err != nil {
			return ChangeResult{}, err
		}
		seen[p.ID] = true
		res.Changed = append(res.Changed, p)
	}
	return res, nil
}

// Remove clears the grant record of every resolvable name that is currently
// a member. The record is removed entirely, not set to deny.
func (e *Engine) Remove(ctx context.Context, spaceID string, names []string) (ChangeResult, error) {
	members, err := e.Members(ctx, spaceID)
	if err != nil {
		return ChangeResult{}, err
	}
	existing := make(map[string]bool, len(members))
	for _, m := range members {
		existing[m.ID] = true
	}

	var res ChangeResult
	seen := map[string]bool{}
	badNames := map[string]bool{}
	for _, name := range names {
		p, err := e.client.ResolveParticipantByName(ctx, name)
		if err != nil {
			return ChangeResult{}, err
		}
		if p == nil {
			if !badNames[name] {
				badNames[name] = true
				res.Unresolved = append(res.Unresolved, name)
			}
			continue
		}
		if seen[p.ID] || !existing[p.ID] {
			continue
		}
		if err := e.client.ClearVisibilityGrant(ctx, spaceID, p.ID); err != nil {
			return ChangeResult{}, err
		}
		seen[p.ID] = true
		res.Changed = append(res.Changed, p)
	}
	return res, nil
}
