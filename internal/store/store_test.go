package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/okoshkin/trivtui/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "trivtui.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return st
}

func TestListScoresEmpty(t *testing.T) {
	st := openTestStore(t)
	entries, err := st.ListScores(context.Background())
	if err != nil {
		t.Fatalf("failed to list scores: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty log, got %d entries", len(entries))
	}
}

func TestAppendThenListRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	appended := []model.ScoreEntry{
		{Username: "Ada", Score: 6, Total: 10},
		{Username: "Grace", Score: 9, Total: 10},
		{Username: "Ada", Score: 4, Total: 10},
	}
	for _, entry := range appended {
		if err := st.Append(ctx, entry); err != nil {
			t.Fatalf("failed to append: %v", err)
		}
	}

	entries, err := st.ListScores(ctx)
	if err != nil {
		t.Fatalf("failed to list scores: %v", err)
	}
	if len(entries) != len(appended) {
		t.Fatalf("expected %d entries, got %d", len(appended), len(entries))
	}
	for i, want := range appended {
		got := entries[i]
		if got.Username != want.Username || got.Score != want.Score || got.Total != want.Total {
			t.Fatalf("entry %d: got %+v, want %+v", i, got, want)
		}
		if got.CreatedAt.IsZero() {
			t.Fatalf("entry %d has no timestamp", i)
		}
	}
}

func TestAppendPreservesExplicitTimestamp(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	entry := model.ScoreEntry{Username: "Ada", Score: 6, Total: 10, CreatedAt: createdAt}
	if err := st.Append(ctx, entry); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
	entries, err := st.ListScores(ctx)
	if err != nil {
		t.Fatalf("failed to list scores: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if !entries[0].CreatedAt.Equal(createdAt) {
		t.Fatalf("expected timestamp %v, got %v", createdAt, entries[0].CreatedAt)
	}
}

func TestAppendNeverMutatesPriorEntries(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Append(ctx, model.ScoreEntry{Username: "Ada", Score: 6, Total: 10}); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
	before, err := st.ListScores(ctx)
	if err != nil {
		t.Fatalf("failed to list scores: %v", err)
	}
	if err := st.Append(ctx, model.ScoreEntry{Username: "Grace", Score: 2, Total: 10}); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
	after, err := st.ListScores(ctx)
	if err != nil {
		t.Fatalf("failed to list scores: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d entries, got %d", len(before)+1, len(after))
	}
	if after[0].Username != "Ada" || after[0].Score != 6 {
		t.Fatalf("prior entry changed: %+v", after[0])
	}
}
