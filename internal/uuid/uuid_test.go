package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNewIsVersion7(t *testing.T) {
	id := New()
	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("New returned invalid uuid %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
	if New() == id {
		t.Error("expected unique ids")
	}
}

func TestFromHeader(t *testing.T) {
	inbound := googleuuid.NewString()
	if got := FromHeader(inbound); got != inbound {
		t.Errorf("expected inbound id to be kept, got %s", got)
	}

	for _, bad := range []string{"", "not-a-uuid", "<script>"} {
		got := FromHeader(bad)
		if got == bad || !IsValid(got) {
			t.Errorf("FromHeader(%q) = %q, want a generated id", bad, got)
		}
	}
}
