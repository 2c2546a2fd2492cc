package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mptrim/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	first := history.Record{
		RunID:          "run-1",
		InputPath:      "/videos/a.mkv",
		OutputPath:     "/videos/a.trimmed.mkv",
		Mode:           "software",
		State:          "done",
		KeepCount:      3,
		DiscardCount:   2,
		InputBytes:     1000,
		OutputBytes:    640,
		RemovedSeconds: 12.5,
		StartedAt:      base,
		FinishedAt:     base.Add(time.Minute),
	}
	second := first
	second.RunID = "run-2"
	second.InputPath = "/videos/b.mkv"
	second.State = "skipped"
	second.FinishedAt = base.Add(2 * time.Minute)

	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("Append first: %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("Append second: %v", err)
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].RunID != "run-2" || records[1].RunID != "run-1" {
		t.Fatalf("expected newest first, got %s then %s", records[0].RunID, records[1].RunID)
	}
	got := records[1]
	if got.KeepCount != 3 || got.DiscardCount != 2 || got.RemovedSeconds != 12.5 {
		t.Fatalf("record fields lost: %+v", got)
	}
	if !got.FinishedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("finished time mismatch: %v", got.FinishedAt)
	}
}

func TestRecentLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		rec := history.Record{
			RunID:      "run",
			InputPath:  "/v/in.mkv",
			OutputPath: "/v/out.mkv",
			Mode:       "software",
			State:      "done",
			StartedAt:  now,
			FinishedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("limit ignored, got %d records", len(records))
	}
}

func TestRecentEmptyStore(t *testing.T) {
	store := openStore(t)
	records, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
