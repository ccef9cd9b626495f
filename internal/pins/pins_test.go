package pins

import (
	"context"
	"errors"
	"testing"

	"github.com/staticbot/staticbot/internal/platform"
	"github.com/staticbot/staticbot/internal/platform/platformtest"
)

func TestPinWithoutReplyTargetsPreviousMessage(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)
	prev := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "pin me"})
	cmd := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "$pin"})

	if err := nav.Pin(context.Background(), "ch", cmd.ID, "", "test"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	got, ok := fake.EventByID("ch", prev.ID)
	if !ok || !got.Pinned {
		t.Fatal("previous message should be pinned")
	}
}

func TestPinReplyTargetsReferencedMessage(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)
	old := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "old"})
	fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "2", Content: "newer"})
	cmd := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "$pin", ReplyToID: old.ID})

	if err := nav.Pin(context.Background(), "ch", cmd.ID, old.ID, "test"); err != nil {
		t.Fatalf("Pin: %v", err)
	}
	got, _ := fake.EventByID("ch", old.ID)
	if !got.Pinned {
		t.Fatal("replied-to message should be pinned")
	}
}

func TestPinEmptyChannel(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)
	cmd := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "$pin"})

	if err := nav.Pin(context.Background(), "ch", cmd.ID, "", "test"); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected no-target error, got %v", err)
	}
}

func TestPinAlreadyPinned(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)
	old := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "old", Pinned: true})
	cmd := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "$pin", ReplyToID: old.ID})

	if err := nav.Pin(context.Background(), "ch", cmd.ID, old.ID, "test"); !errors.Is(err, ErrAlreadyPinned) {
		t.Fatalf("expected already-pinned error, got %v", err)
	}
}

func TestPinVanishedTarget(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)
	cmd := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "$pin", ReplyToID: "gone"})

	if err := nav.Pin(context.Background(), "ch", cmd.ID, "gone", "test"); !platform.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUnpinRequiresReply(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)
	pinned := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "x", Pinned: true})

	if _, err := nav.Unpin(context.Background(), "ch", "", "test"); !errors.Is(err, ErrNotReply) {
		t.Fatalf("expected not-reply error, got %v", err)
	}
	got, _ := fake.EventByID("ch", pinned.ID)
	if !got.Pinned {
		t.Fatal("pin state must not change on a rejected unpin")
	}
}

func TestUnpinClearsPinAndReturnsTarget(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)
	pinned := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "x", Pinned: true})

	target, err := nav.Unpin(context.Background(), "ch", pinned.ID, "test")
	if err != nil {
		t.Fatalf("Unpin: %v", err)
	}
	if target.ID != pinned.ID {
		t.Fatalf("unexpected target: %s", target.ID)
	}
	got, _ := fake.EventByID("ch", pinned.ID)
	if got.Pinned {
		t.Fatal("message should be unpinned")
	}
}

func TestUnpinNotPinned(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)
	ev := fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "x"})

	if _, err := nav.Unpin(context.Background(), "ch", ev.ID, "test"); !errors.Is(err, ErrNotPinned) {
		t.Fatalf("expected not-pinned error, got %v", err)
	}
}

func TestClearDefaultsAndIncludesCommand(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)

	n, err := nav.Clear(context.Background(), "ch", "")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != DefaultClearLimit+1 {
		t.Fatalf("expected %d, got %d", DefaultClearLimit+1, n)
	}
}

func TestClearAbortsOnBadLimit(t *testing.T) {
	fake := &platformtest.Fake{}
	nav := NewNavigator(fake)
	fake.AddEvent(platform.Event{SpaceID: "ch", AuthorID: "1", Content: "x"})

	if _, err := nav.Clear(context.Background(), "ch", "notanumber"); !errors.Is(err, ErrBadLimit) {
		t.Fatalf("expected bad-limit error, got %v", err)
	}
	if fake.Purged["ch"] != 0 {
		t.Fatal("nothing may be purged after a bad limit")
	}
}
