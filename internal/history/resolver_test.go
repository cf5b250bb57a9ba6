package history

import (
	"strings"
	"testing"
	"time"
)

func setupResolver(t *testing.T) (*Store, *Resolver) {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, NewResolver(store)
}

func TestResolver_Empty(t *testing.T) {
	_, resolver := setupResolver(t)

	if _, err := resolver.Resolve(""); err == nil {
		t.Error("empty reference should fail")
	}
	if _, err := resolver.Resolve("@last"); err == nil {
		t.Error("resolving against an empty store should fail")
	}
}

func TestResolver_Last(t *testing.T) {
	store, resolver := setupResolver(t)

	store.CreateConversation("endpoint")
	time.Sleep(10 * time.Millisecond)
	latest, _ := store.CreateConversation("endpoint")

	id, err := resolver.Resolve("@last")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != latest.ID {
		t.Errorf("@last resolved to %s, want %s", id, latest.ID)
	}
}

func TestResolver_Index(t *testing.T) {
	store, resolver := setupResolver(t)

	older, _ := store.CreateConversation("endpoint")
	time.Sleep(10 * time.Millisecond)
	newer, _ := store.CreateConversation("endpoint")

	id, err := resolver.Resolve("1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != newer.ID {
		t.Errorf("index 1 resolved to %s, want most recent %s", id, newer.ID)
	}

	id, err = resolver.Resolve("2")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != older.ID {
		t.Errorf("index 2 resolved to %s, want %s", id, older.ID)
	}

	if _, err := resolver.Resolve("3"); err == nil {
		t.Error("out-of-range index should fail")
	}
}

func TestResolver_DirectID(t *testing.T) {
	store, resolver := setupResolver(t)
	conv, _ := store.CreateConversation("endpoint")

	id, err := resolver.Resolve(conv.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != conv.ID {
		t.Errorf("resolved to %s, want %s", id, conv.ID)
	}

	if _, err := resolver.Resolve("conv-0"); err == nil {
		t.Error("unknown ID should fail")
	}
}

func TestResolver_TitleSubstring(t *testing.T) {
	store, resolver := setupResolver(t)

	conv, _ := store.CreateConversation("endpoint")
	store.AddMessage(conv.ID, Message{Role: "user", Content: "weather forecast please"})

	other, _ := store.CreateConversation("endpoint")
	store.AddMessage(other.ID, Message{Role: "user", Content: "tell me a joke"})

	id, err := resolver.Resolve("weather")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id != conv.ID {
		t.Errorf("resolved to %s, want %s", id, conv.ID)
	}

	if _, err := resolver.Resolve("nothing-matches-this"); err == nil {
		t.Error("unmatched substring should fail")
	}
}

func TestResolver_AmbiguousSubstring(t *testing.T) {
	store, resolver := setupResolver(t)

	a, _ := store.CreateConversation("endpoint")
	store.AddMessage(a.ID, Message{Role: "user", Content: "weather today"})
	b, _ := store.CreateConversation("endpoint")
	store.AddMessage(b.ID, Message{Role: "user", Content: "weather tomorrow"})

	_, err := resolver.Resolve("weather")
	if err == nil {
		t.Fatal("ambiguous reference should fail")
	}
	if !strings.Contains(err.Error(), "multiple") {
		t.Errorf("error should mention multiple matches: %v", err)
	}
}

func TestResolver_ResolveWithInfo(t *testing.T) {
	store, resolver := setupResolver(t)
	conv, _ := store.CreateConversation("endpoint")

	info, err := resolver.ResolveWithInfo("@last")
	if err != nil {
		t.Fatalf("ResolveWithInfo failed: %v", err)
	}
	if info.ID != conv.ID {
		t.Errorf("resolved to %s, want %s", info.ID, conv.ID)
	}
}
