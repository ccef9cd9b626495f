package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/staticbot/staticbot/internal/naming"
	"github.com/staticbot/staticbot/internal/platform"
	"github.com/staticbot/staticbot/internal/platform/platformtest"
	"github.com/staticbot/staticbot/internal/policy"
)

const categoryID = "cat-1"

func newManager(oneSpaceTag string) (*Manager, *platformtest.Fake) {
	fake := &platformtest.Fake{SelfID: "bot"}
	resolver := &policy.Resolver{AdminTagID: "admin", OneSpaceTagID: oneSpaceTag}
	return NewManager(fake, resolver, categoryID), fake
}

func creator(fake *platformtest.Fake, tags ...string) *platform.Participant {
	p := &platform.Participant{ID: "10", Username: "alice", Discriminator: "1111", TagIDs: tags}
	fake.AddParticipant(p)
	return p
}

func TestCreateGrantsCreatorAndPostsWelcome(t *testing.T) {
	mgr, fake := newManager("")
	alice := creator(fake)

	space, err := mgr.Create(context.Background(), alice, "fridays", "test")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if space.Name != "static-fridays" {
		t.Fatalf("unexpected channel name: %s", space.Name)
	}
	if exists, view := fake.HasGrant(space.ID, alice.ID); !exists || !view {
		t.Fatal("creator should hold a view grant")
	}
	sent, ok := fake.LastSent(space.ID)
	if !ok {
		t.Fatal("welcome message should be posted in the new channel")
	}
	if sent.Text != "Welcome to your new group <@10>!" {
		t.Fatalf("unexpected welcome: %q", sent.Text)
	}
}

func TestCreateAddsLimitTagWhenConfigured(t *testing.T) {
	mgr, fake := newManager("one-space")
	alice := creator(fake)

	if _, err := mgr.Create(context.Background(), alice, "fridays", "test"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !alice.HasTag("one-space") {
		t.Fatal("creator should receive the one-space tag")
	}
}

func TestCreateRejectsIllegalName(t *testing.T) {
	mgr, fake := newManager("")
	alice := creator(fake)

	if _, err := mgr.Create(context.Background(), alice, "Fri Days", "test"); !errors.Is(err, naming.ErrIllegalName) {
		t.Fatalf("expected illegal-name error, got %v", err)
	}
}

func TestCreateRejectsDuplicateRegardlessOfCase(t *testing.T) {
	mgr, fake := newManager("")
	alice := creator(fake)
	fake.AddChannel(&platform.ConversationSpace{ID: "ch-old", Name: " Static-Fridays ", CategoryID: categoryID, Text: true})

	if _, err := mgr.Create(context.Background(), alice, "fridays", "test"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCreateDeniedByOneSpaceLimit(t *testing.T) {
	mgr, fake := newManager("one-space")
	alice := creator(fake, "one-space")

	if _, err := mgr.Create(context.Background(), alice, "fridays", "test"); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected limit error, got %v", err)
	}
}

func TestDeleteRemovesChannelAndLimitTag(t *testing.T) {
	mgr, fake := newManager("one-space")
	alice := creator(fake)

	space, err := mgr.Create(context.Background(), alice, "fridays", "test")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	name, err := mgr.Delete(context.Background(), "fridays", "test")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if name != "static-fridays" {
		t.Fatalf("unexpected name: %s", name)
	}
	if _, err := fake.GetChannel(context.Background(), space.ID); !platform.IsNotFound(err) {
		t.Fatal("channel should be gone")
	}
	if alice.HasTag("one-space") {
		t.Fatal("creator should lose the one-space tag")
	}
}

func TestDeleteMissingGroup(t *testing.T) {
	mgr, _ := newManager("")
	if _, err := mgr.Delete(context.Background(), "fridays", "test"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeleteOutsideCategory(t *testing.T) {
	mgr, fake := newManager("")
	fake.AddChannel(&platform.ConversationSpace{ID: "ch-x", Name: "static-fridays", CategoryID: "other", Text: true})
	if _, err := mgr.Delete(context.Background(), "fridays", "test"); !errors.Is(err, ErrNotManaged) {
		t.Fatalf("expected not-managed error, got %v", err)
	}
}

func TestDeleteAbortsWhenCreatorUnknown(t *testing.T) {
	mgr, fake := newManager("one-space")
	fake.AddChannel(&platform.ConversationSpace{ID: "ch-x", Name: "static-fridays", CategoryID: categoryID, Text: true})

	if _, err := mgr.Delete(context.Background(), "fridays", "test"); !errors.Is(err, ErrCreatorUnknown) {
		t.Fatalf("expected creator-unknown error, got %v", err)
	}
	if _, err := fake.GetChannel(context.Background(), "ch-x"); err != nil {
		t.Fatal("channel must survive an aborted deletion")
	}
}

func TestDeleteRejectsReservedPrefix(t *testing.T) {
	mgr, _ := newManager("")
	if _, err := mgr.Delete(context.Background(), "static-fridays", "test"); !errors.Is(err, naming.ErrReservedPrefix) {
		t.Fatalf("expected reserved-prefix error, got %v", err)
	}
}

func TestActivityReportSortsAscending(t *testing.T) {
	mgr, fake := newManager("")
	base := time.Unix(1700000000, 0)
	fake.AddChannel(&platform.ConversationSpace{ID: "a", Name: "static-a", CategoryID: categoryID, Text: true, CreatedAt: base.Add(3 * time.Hour)})
	fake.AddChannel(&platform.ConversationSpace{ID: "b", Name: "static-b", CategoryID: categoryID, Text: true, CreatedAt: base})
	fake.AddChannel(&platform.ConversationSpace{ID: "c", Name: "other", CategoryID: "elsewhere", Text: true, CreatedAt: base})
	fake.AddEvent(platform.Event{SpaceID: "b", AuthorID: "10", Content: "hi", CreatedAt: base.Add(5 * time.Hour)})

	report, err := mgr.ActivityReport(context.Background())
	if err != nil {
		t.Fatalf("ActivityReport: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("expected 2 managed channels, got %d", len(report))
	}
	if report[0].Name != "static-a" || report[1].Name != "static-b" {
		t.Fatalf("unexpected order: %s, %s", report[0].Name, report[1].Name)
	}
	if !report[1].Last.Equal(base.Add(5 * time.Hour)) {
		t.Fatalf("static-b last activity should come from its message, got %v", report[1].Last)
	}
}
