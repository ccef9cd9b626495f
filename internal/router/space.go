package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/staticbot/staticbot/internal/bus"
	"github.com/staticbot/staticbot/internal/pins"
	"github.com/staticbot/staticbot/internal/platform"
)

// routeSpace handles commands arriving inside a managed group channel.
func (r *Router) routeSpace(ctx context.Context, ev *bus.InboundEvent, sender *platform.Participant, name string, args []string) (bool, error) {
	switch name {
	case "hello":
		return true, r.client.SendEvent(ctx, ev.SpaceID, "BEEP BOOP", "")
	case "members":
		return true, r.listMembers(ctx, ev)
	case "mention":
		return true, r.mentionAll(ctx, ev)
	case "add":
		return true, r.addMembers(ctx, ev, args)
	case "remove":
		return true, r.removeMembers(ctx, ev, args)
	case "pin":
		return true, r.pinMessage(ctx, ev, sender)
	case "unpin":
		return true, r.unpinMessage(ctx, ev, sender)
	case "clear":
		if !r.policy.IsAdmin(sender) {
			return false, nil
		}
		return true, r.clearMessages(ctx, ev, args)
	case "help":
		return true, r.client.SendEvent(ctx, ev.SpaceID, channelHelp, "")
	default:
		return false, nil
	}
}

func (r *Router) listMembers(ctx context.Context, ev *bus.InboundEvent) error {
	members, err := r.members.Members(ctx, ev.SpaceID)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.DisplayName())
	}
	return r.client.SendEvent(ctx, ev.SpaceID,
		"The members of this channel are: \n"+strings.Join(names, "\n"), "")
}

func (r *Router) mentionAll(ctx context.Context, ev *bus.InboundEvent) error {
	members, err := r.members.Members(ctx, ev.SpaceID)
	if err != nil {
		return err
	}
	mentions := make([]string, 0, len(members))
	for _, m := range members {
		mentions = append(mentions, m.Mention())
	}
	return r.client.SendEvent(ctx, ev.SpaceID, "Hey guys! "+strings.Join(mentions, " "), "")
}

func (r *Router) addMembers(ctx context.Context, ev *bus.InboundEvent, args []string) error {
	res, err := r.members.Add(ctx, ev.SpaceID, args)
	if err != nil {
		return err
	}
	if err := r.reportUnresolved(ctx, ev.SpaceID, res.Unresolved); err != nil {
		return err
	}
	if len(res.Changed) == 0 {
		return usererr(errNothingAdded, "ERROR: No members to add!")
	}
	mentions := make([]string, 0, len(res.Changed))
	for _, p := range res.Changed {
		mentions = append(mentions, p.Mention())
	}
	return r.client.SendEvent(ctx, ev.SpaceID, "Guys, say welcome to "+joinNames(mentions)+"!", "")
}

func (r *Router) removeMembers(ctx context.Context, ev *bus.InboundEvent, args []string) error {
	res, err := r.members.Remove(ctx, ev.SpaceID, args)
	if err != nil {
		return err
	}
	if err := r.reportUnresolved(ctx, ev.SpaceID, res.Unresolved); err != nil {
		return err
	}
	if len(res.Changed) == 0 {
		return usererr(errNothingRemoved, "ERROR: No members to remove!")
	}
	mentions := make([]string, 0, len(res.Changed))
	for _, p := range res.Changed {
		mentions = append(mentions, p.Mention())
	}
	return r.client.SendEvent(ctx, ev.SpaceID, "Guys, say goodbye to "+joinNames(mentions)+"!", "")
}

// reportUnresolved posts one deduplicated error line for names that did not
// resolve. It does not abort the rest of the command.
func (r *Router) reportUnresolved(ctx context.Context, spaceID string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	text := fmt.Sprintf("User%s %s could not be found. "+
		"Make sure to use the NAME#XXXX format (i.e., DiscordLord#9999).",
		plural(len(names)), strings.Join(names, ", "))
	return r.client.SendEvent(ctx, spaceID, text, "")
}

func (r *Router) pinMessage(ctx context.Context, ev *bus.InboundEvent, sender *platform.Participant) error {
	err := r.pins.Pin(ctx, ev.SpaceID, ev.EventID, ev.ReplyToID, reasonFor(sender, "requested the pin."))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pins.ErrNoTarget):
		return usererr(err, "No messages to pin yet.")
	case errors.Is(err, pins.ErrAlreadyPinned):
		return usererr(err, "The specified message is already pinned.")
	case platform.IsNotFound(err):
		return usererr(err, "The specified message was not found.")
	default:
		return err
	}
}

func (r *Router) unpinMessage(ctx context.Context, ev *bus.InboundEvent, sender *platform.Participant) error {
	target, err := r.pins.Unpin(ctx, ev.SpaceID, ev.ReplyToID, reasonFor(sender, "requested the unpin."))
	switch {
	case err == nil:
	case errors.Is(err, pins.ErrNotReply):
		return usererr(err, "You need to reply to the message you want to $unpin.")
	case errors.Is(err, pins.ErrNotPinned):
		return usererr(err, "The specified message is not pinned.")
	case platform.IsNotFound(err):
		return usererr(err, "The specified message was not found.")
	default:
		return err
	}
	return r.client.SendEvent(ctx, ev.SpaceID, "Unpinned message.", target.ID)
}

func (r *Router) clearMessages(ctx context.Context, ev *bus.InboundEvent, args []string) error {
	rawLimit := ""
	if len(args) > 0 {
		rawLimit = args[0]
	}
	_, err := r.pins.Clear(ctx, ev.SpaceID, rawLimit)
	if errors.Is(err, pins.ErrBadLimit) {
		return usererr(err, "Unrecognized limit number.")
	}
	return err
}
