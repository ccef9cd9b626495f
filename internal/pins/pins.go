// Package pins resolves reply targets and previous-message semantics for
// pinning, unpinning and purging inside a group channel.
package pins

import (
	"context"
	"errors"
	"strconv"

	"github.com/staticbot/staticbot/internal/platform"
)

// DefaultClearLimit is the number of messages purged when $clear gets no
// argument.
const DefaultClearLimit = 100

var (
	// ErrNoTarget means the channel has no message to pin.
	ErrNoTarget = errors.New("no messages to pin yet")
	// ErrAlreadyPinned means the target is pinned already.
	ErrAlreadyPinned = errors.New("message is already pinned")
	// ErrNotPinned means the unpin target is not pinned.
	ErrNotPinned = errors.New("message is not pinned")
	// ErrNotReply means unpin was not issued as a reply.
	ErrNotReply = errors.New("unpin must reply to the target message")
	// ErrBadLimit means the clear limit did not parse as an integer.
	ErrBadLimit = errors.New("unrecognized limit number")
)

// Navigator performs pin, unpin and clear operations.
type Navigator struct {
	client platform.Client
}

// NewNavigator creates a pin navigator.
func NewNavigator(client platform.Client) *Navigator {
	return &Navigator{client: client}
}

// Pin pins the replied-to event, or, when the command is not a reply, the
// event immediately preceding the command in the same channel.
func (n *Navigator) Pin(ctx context.Context, spaceID, commandEventID, replyToID, reason string) error {
	targetID := replyToID
	if targetID == "" {
		prev, err := n.client.History(ctx, spaceID, 1, commandEventID, false)
		if err != nil {
			return err
		}
		if len(prev) == 0 {
			return ErrNoTarget
		}
		targetID = prev[0].ID
	}

	target, err := n.client.GetEvent(ctx, spaceID, targetID)
	if err != nil {
		return err
	}
	if target.Pinned {
		return ErrAlreadyPinned
	}
	return n.client.PinEvent(ctx, spaceID, target.ID, reason)
}

// Unpin unpins the replied-to event and returns it so the caller can
// confirm by replying to it. The command must be a reply.
func (n *Navigator) Unpin(ctx context.Context, spaceID, replyToID, reason string) (*platform.Event, error) {
	if replyToID == "" {
		return nil, ErrNotReply
	}
	target, err := n.client.GetEvent(ctx, spaceID, replyToID)
	if err != nil {
		return nil, err
	}
	if !target.Pinned {
		return nil, ErrNotPinned
	}
	if err := n.client.UnpinEvent(ctx, spaceID, target.ID, reason); err != nil {
		return nil, err
	}
	return target, nil
}

// Clear purges the most recent messages in the channel. rawLimit is the
// optional user-supplied count; one extra message is purged so the command
// itself goes too. An unparseable limit aborts without purging.
func (n *Navigator) Clear(ctx context.Context, spaceID, rawLimit string) (int, error) {
	limit := DefaultClearLimit
	if rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			return 0, ErrBadLimit
		}
		limit = parsed
	}
	limit++
	if err := n.client.PurgeEvents(ctx, spaceID, limit); err != nil {
		return 0, err
	}
	return limit, nil
}
