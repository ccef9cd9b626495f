package policy

import (
	"testing"

	"github.com/staticbot/staticbot/internal/platform"
)

func newResolver() *Resolver {
	return &Resolver{
		AdminTagID:     "admin",
		BlacklistTagID: "blacklist",
		BotTagID:       "bots",
	}
}

func TestBlacklistedSenderDenied(t *testing.T) {
	r := newResolver()
	d := r.Authorize(&platform.Participant{ID: "1", TagIDs: []string{"blacklist"}})
	if d.Allowed {
		t.Fatal("blacklisted sender should be denied")
	}
	if d.Reason != "sender_blacklisted" {
		t.Fatalf("unexpected reason: %s", d.Reason)
	}
}

func TestWhitelistDisabledAllowsEveryone(t *testing.T) {
	r := newResolver()
	d := r.Authorize(&platform.Participant{ID: "1"})
	if !d.Allowed {
		t.Fatalf("sender should be allowed with no whitelist, got: %s", d.Reason)
	}
}

func TestWhitelistEnabledRequiresTag(t *testing.T) {
	r := newResolver()
	r.WhitelistTagID = "whitelist"
	if d := r.Authorize(&platform.Participant{ID: "1"}); d.Allowed {
		t.Fatal("unwhitelisted sender should be denied")
	}
	d := r.Authorize(&platform.Participant{ID: "2", TagIDs: []string{"whitelist"}})
	if !d.Allowed {
		t.Fatalf("whitelisted sender should be allowed, got: %s", d.Reason)
	}
}

func TestOneSpaceLimitBlocksSecondCreate(t *testing.T) {
	r := newResolver()
	r.OneSpaceTagID = "one-space"
	d := r.AllowCreate(&platform.Participant{ID: "1", TagIDs: []string{"one-space"}})
	if d.Allowed {
		t.Fatal("limited sender should not create a second group")
	}
	if d.Reason != "one_space_limit_reached" {
		t.Fatalf("unexpected reason: %s", d.Reason)
	}
}

func TestOneSpaceLimitSkipsAdmins(t *testing.T) {
	r := newResolver()
	r.OneSpaceTagID = "one-space"
	d := r.AllowCreate(&platform.Participant{ID: "1", TagIDs: []string{"one-space", "admin"}})
	if !d.Allowed {
		t.Fatalf("admins bypass the one-space limit, got: %s", d.Reason)
	}
}

func TestOneSpaceLimitDisabledWhenUnconfigured(t *testing.T) {
	r := newResolver()
	d := r.AllowCreate(&platform.Participant{ID: "1", TagIDs: []string{"one-space"}})
	if !d.Allowed {
		t.Fatalf("limit should be off without a configured tag, got: %s", d.Reason)
	}
}
