package store

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type failingStore struct {
	MemoryStore
	err error
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, f.err
}

func TestLoadJSON_Missing(t *testing.T) {
	s := NewMemoryStore()
	got, err := LoadJSON(context.Background(), s, "absent", record{Name: "default"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "default" {
		t.Fatalf("expected default, got %+v", got)
	}
}

func TestLoadJSON_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := SaveJSON(ctx, s, "rec", record{Name: "a", Count: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := LoadJSON(ctx, s, "rec", record{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "a" || got.Count != 3 {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestLoadJSON_CorruptValueIsClearedAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	orig := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(orig)

	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "rec", []byte("{not json"))
	_ = s.Set(ctx, "other", []byte(`{"name":"intact"}`))

	got, err := LoadJSON(ctx, s, "rec", record{Name: "default"})
	if err != nil {
		t.Fatalf("corruption must not propagate, got %v", err)
	}
	if got.Name != "default" {
		t.Fatalf("expected default, got %+v", got)
	}
	if _, ok, _ := s.Get(ctx, "rec"); ok {
		t.Fatalf("expected corrupt key to be removed")
	}

	other, err := LoadJSON(ctx, s, "other", record{})
	if err != nil || other.Name != "intact" {
		t.Fatalf("expected other key to load, got %+v (%v)", other, err)
	}

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	if logs.All()[0].ContextMap()["key"] != "rec" {
		t.Fatalf("expected log to name the key")
	}
}

func TestLoadJSON_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("disk gone")
	s := &failingStore{err: boom}
	if _, err := LoadJSON(context.Background(), s, "rec", record{}); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestMemoryStore_Quota(t *testing.T) {
	s := NewMemoryStore()
	s.Quota = 8
	err := s.Set(context.Background(), "k", []byte("0123456789"))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected nothing stored")
	}
}

func TestLoadJSON_NullIsMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "rec", []byte(" null\n"))

	got, err := LoadJSON(ctx, s, "rec", record{Name: "default"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "default" {
		t.Fatalf("expected default for null value, got %+v", got)
	}
}
