package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestStore(t *testing.T) *RedisStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStoreWithClient(client)
}

func TestGetAbsentKeyLeavesDefault(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()
	dest := map[string]string{"keep": "me"}

	found, err := store.Get(ctx, "missing", &dest)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected found=false for absent key")
	}
	if dest["keep"] != "me" {
		t.Error("absent key must leave dest untouched")
	}
}

func TestWriteAndGetRoundtrip(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()
	in := []string{"a", "b", "c"}

	if err := store.Write(ctx, Entry{Key: "list", Value: in}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var out []string
	found, err := store.Get(ctx, "list", &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("expected found=true after write")
	}
	if len(out) != 3 || out[0] != "a" || out[2] != "c" {
		t.Errorf("unexpected roundtrip value: %v", out)
	}
}

func TestWriteMultipleEntries(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()
	err := store.Write(ctx,
		Entry{Key: "one", Value: map[string]int{"n": 1}},
		Entry{Key: "two", Value: map[string]int{"n": 2}},
	)
	if err != nil {
		t.Fatalf("multi-entry Write failed: %v", err)
	}

	for key, want := range map[string]int{"one": 1, "two": 2} {
		var out map[string]int
		found, err := store.Get(ctx, key, &out)
		if err != nil || !found {
			t.Fatalf("Get %s: found=%v err=%v", key, found, err)
		}
		if out["n"] != want {
			t.Errorf("key %s: got %d want %d", key, out["n"], want)
		}
	}
}

func TestWriteOverwrites(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	ctx := context.Background()
	if err := store.Write(ctx, Entry{Key: "doc", Value: "v1"}); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	if err := store.Write(ctx, Entry{Key: "doc", Value: "v2"}); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	var out string
	if _, err := store.Get(ctx, "doc", &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out != "v2" {
		t.Errorf("expected v2, got %q", out)
	}
}

func TestPing(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
