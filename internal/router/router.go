// Package router classifies inbound events as commands and dispatches them
// to scope-specific handlers.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/staticbot/staticbot/internal/bus"
	"github.com/staticbot/staticbot/internal/config"
	"github.com/staticbot/staticbot/internal/group"
	"github.com/staticbot/staticbot/internal/membership"
	"github.com/staticbot/staticbot/internal/pins"
	"github.com/staticbot/staticbot/internal/platform"
	"github.com/staticbot/staticbot/internal/policy"
	"github.com/staticbot/staticbot/internal/status"
)

// Router dispatches inbound events into the command engines.
type Router struct {
	cfg     *config.Config
	client  platform.Client
	policy  *policy.Resolver
	members *membership.Engine
	groups  *group.Manager
	pins    *pins.Navigator
	metrics *status.Server
}

// New creates a router over the given engines. metrics may be nil.
func New(cfg *config.Config, client platform.Client, resolver *policy.Resolver,
	members *membership.Engine, groups *group.Manager, nav *pins.Navigator,
	metrics *status.Server) *Router {
	return &Router{
		cfg:     cfg,
		client:  client,
		policy:  resolver,
		members: members,
		groups:  groups,
		pins:    nav,
		metrics: metrics,
	}
}

// Dispatch processes one inbound event to completion. Non-commands are
// dropped silently; command failures are reported back into the
// originating channel and never crash the process.
func (r *Router) Dispatch(ctx context.Context, ev *bus.InboundEvent) {
	handled, err := r.route(ctx, ev)
	if !handled {
		return
	}
	r.metrics.NoteCommand(err)
	if err == nil {
		return
	}
	slog.Warn("command failed", "trace_id", ev.TraceID, "space", ev.SpaceID, "error", err)
	text := r.errorText(err)
	if sendErr := r.client.SendEvent(ctx, ev.SpaceID, text, ""); sendErr != nil {
		slog.Error("error reply failed", "trace_id", ev.TraceID, "space", ev.SpaceID, "error", sendErr)
	}
}

// route returns whether the event was an actionable command and the
// command's outcome.
func (r *Router) route(ctx context.Context, ev *bus.InboundEvent) (bool, error) {
	prefix := r.cfg.CommandPrefix
	if !strings.HasPrefix(ev.Content, prefix) {
		return false, nil
	}
	if ev.AuthorID == r.client.BotID() || ev.AuthorIsBot {
		return false, nil
	}
	if strings.Contains(ev.Content, "\n") {
		return true, usererr(errMultiline, "Can't use multiline messages when using commands.")
	}

	sender, err := r.client.ResolveParticipant(ctx, ev.AuthorID)
	if err != nil {
		if platform.IsNotFound(err) {
			return true, usererr(errConfigFault, "Guild/category was not found. Contact an admin.")
		}
		return true, err
	}
	if sender == nil {
		return true, usererr(errNotInWorkspace,
			"Discord tells me you're not in the server. If this is not the case, contact an @admin.")
	}
	if d := r.policy.Authorize(sender); !d.Allowed {
		switch d.Reason {
		case "sender_blacklisted":
			return true, usererr(errBlacklisted, "You are blacklisted from using this bot.")
		default:
			return true, usererr(errNotWhitelisted, "You are not whitelisted to use this bot.")
		}
	}

	fields := strings.Fields(ev.Content)
	name := strings.ToLower(strings.TrimPrefix(fields[0], prefix))
	args := fields[1:]

	if ev.DM {
		return r.routeDM(ctx, ev, sender, name, args)
	}
	if ev.WorkspaceID == r.cfg.GuildID && ev.CategoryID == r.cfg.CategoryID {
		return r.routeSpace(ctx, ev, sender, name, args)
	}
	// Public channel outside the managed category.
	return false, nil
}

// errorText maps a command failure to the reply shown to the sender.
func (r *Router) errorText(err error) string {
	if msg, ok := userMessage(err); ok {
		return msg
	}
	if platform.IsForbidden(err) {
		return "Bot doesn't have the permissions required for this action (@admin)."
	}
	return "Something unexpected happened. Please try again in a few minutes."
}

// requireOneName enforces the single-argument contract of $create/$delete.
// Only the $create variant of the missing-name reply carries the "Error: "
// prefix.
func requireOneName(cmd string, args []string) (string, error) {
	if len(args) == 0 {
		msg := fmt.Sprintf("Add the group name after the $%s command.", cmd)
		if cmd == "create" {
			msg = "Error: " + msg
		}
		return "", usererr(errMissingName, msg)
	}
	if len(args) > 1 {
		return "", usererr(errExtraArgs, "Error: static name must not contain whitespaces.")
	}
	return args[0], nil
}

// reasonFor renders the audit-log reason attached to mutations.
func reasonFor(sender *platform.Participant, action string) string {
	return fmt.Sprintf("%s (%s) %s", sender.Username, sender.ID, action)
}
