package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/staticbot/staticbot/internal/bus"
	"github.com/staticbot/staticbot/internal/group"
	"github.com/staticbot/staticbot/internal/naming"
	"github.com/staticbot/staticbot/internal/platform"
)

// routeDM handles commands arriving in a private channel.
func (r *Router) routeDM(ctx context.Context, ev *bus.InboundEvent, sender *platform.Participant, name string, args []string) (bool, error) {
	admin := r.policy.IsAdmin(sender)
	switch name {
	case "hello":
		return true, r.client.SendEvent(ctx, ev.SpaceID, "BEEP BOOP", "")
	case "create":
		return true, r.createGroup(ctx, ev, sender, args)
	case "delete":
		if !admin {
			return false, nil
		}
		return true, r.deleteGroup(ctx, ev, sender, args)
	case "last_message":
		if !admin {
			return false, nil
		}
		return true, r.lastMessageReport(ctx, ev)
	case "help":
		if admin {
			return true, r.client.SendEvent(ctx, ev.SpaceID, dmAdminHelp, "")
		}
		return true, r.client.SendEvent(ctx, ev.SpaceID, dmHelp, "")
	default:
		return false, nil
	}
}

func (r *Router) createGroup(ctx context.Context, ev *bus.InboundEvent, sender *platform.Participant, args []string) error {
	rawName, err := requireOneName("create", args)
	if err != nil {
		return err
	}

	_, err = r.groups.Create(ctx, sender, rawName, reasonFor(sender, "requested the channel."))
	switch {
	case err == nil:
	case errors.Is(err, naming.ErrIllegalName):
		return usererr(err, "Channel name can only contain lowercase English letters, numbers and dashes.")
	case errors.Is(err, group.ErrLimitReached):
		return usererr(err, "Error: you cannot create more than one channel. "+
			"Ask a co-member to create it or an @admin to remove the restriction for you.")
	case errors.Is(err, naming.ErrReservedPrefix):
		return usererr(err, "Your group name should not start with static, as it will be automatically added by the bot.\n"+
			"Example: 'fridays' will become 'static-fridays'.")
	case errors.Is(err, group.ErrExists):
		return usererr(err, "Group name already exists.")
	default:
		return err
	}

	r.metrics.NoteGroupCreated()
	return r.client.SendEvent(ctx, ev.SpaceID, "Group created, take a look in the server!", "")
}

func (r *Router) deleteGroup(ctx context.Context, ev *bus.InboundEvent, sender *platform.Participant, args []string) error {
	rawName, err := requireOneName("delete", args)
	if err != nil {
		return err
	}

	name, err := r.groups.Delete(ctx, rawName, reasonFor(sender, "asked to delete it."))
	switch {
	case err == nil:
	case errors.Is(err, naming.ErrReservedPrefix):
		return usererr(err, "Your group name should not start with static, as it will be automatically added by the bot.\n"+
			"Example: 'fridays' will become 'static-fridays'.")
	case errors.Is(err, group.ErrNotFound):
		return usererr(err, fmt.Sprintf("Group %s doesn't exist.", name))
	case errors.Is(err, group.ErrNotManaged):
		return usererr(err, fmt.Sprintf("Group %s is not a private static.", name))
	case errors.Is(err, group.ErrCreatorUnknown):
		return usererr(err, "Error: Channel creator not defined.")
	default:
		return err
	}

	r.metrics.NoteGroupDeleted()
	return r.client.SendEvent(ctx, ev.SpaceID, fmt.Sprintf("Group %s deleted.", name), "")
}

func (r *Router) lastMessageReport(ctx context.Context, ev *bus.InboundEvent) error {
	report, err := r.groups.ActivityReport(ctx)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(report))
	for _, entry := range report {
		lines = append(lines, entry.Name+" - "+entry.Last.UTC().Format("2006-01-02 15:04:05"))
	}
	return r.client.SendEvent(ctx, ev.SpaceID, strings.Join(lines, "\n"), "")
}
