package history_test

import (
	"context"
	"testing"

	"animux/internal/config"
	"animux/internal/history"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.WorkDir = t.TempDir()
	return &cfg
}

func TestRecordAndRecent(t *testing.T) {
	store, err := history.Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	entries := []history.Entry{
		{RunID: "run-1", Episode: 1, Outcome: history.OutcomeMuxed, OutputPath: "/muxed/ep01.mkv"},
		{RunID: "run-1", Episode: 2, Outcome: history.OutcomeSkipped, Detail: "video file not found"},
		{RunID: "run-1", Episode: 3, Outcome: history.OutcomeFailed, Detail: "mkvmerge exit status 2"},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(recent))
	}
	// Newest first.
	if recent[0].Episode != 3 || recent[0].Outcome != history.OutcomeFailed {
		t.Fatalf("unexpected first entry: %+v", recent[0])
	}
	if recent[2].OutputPath != "/muxed/ep01.mkv" {
		t.Fatalf("unexpected output path: %+v", recent[2])
	}
	if recent[0].CreatedAt.IsZero() {
		t.Fatal("timestamp not recorded")
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store, err := history.Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for ep := 1; ep <= 5; ep++ {
		if err := store.Record(ctx, history.Entry{RunID: "run", Episode: ep, Outcome: history.OutcomeDryRun}); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}
	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("first Open returned error: %v", err)
	}
	store.Close()

	store, err = history.Open(cfg)
	if err != nil {
		t.Fatalf("second Open returned error: %v", err)
	}
	store.Close()
}
