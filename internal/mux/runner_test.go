package mux_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"animux/internal/config"
	"animux/internal/history"
	"animux/internal/logging"
	"animux/internal/mux"
	"animux/internal/services/mkvmerge"
)

const minimalASS = `[Script Info]
Title: Episode

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Gandhi Sans,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,1,2,60,60,40,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0,0,0,,Hello
Comment: 0,0:00:00.00,0:00:00.00,Default,Part A,0,0,0,chapter,
`

type fakeMuxer struct {
	jobs []mkvmerge.Job
	err  error
}

func (f *fakeMuxer) Mux(_ context.Context, job mkvmerge.Job) (string, error) {
	f.jobs = append(f.jobs, job)
	if f.err != nil {
		return "", f.err
	}
	if err := os.WriteFile(job.Output, []byte("mkv-payload"), 0o644); err != nil {
		return "", err
	}
	return job.Output, nil
}

type memoryRecorder struct {
	entries []history.Entry
}

func (m *memoryRecorder) Record(_ context.Context, entry history.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func testSetup(t *testing.T, episodes ...string) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Show.Name = "TestShow"
	cfg.Paths.PremuxDir = filepath.Join(root, "premux")
	cfg.Paths.AudioDir = filepath.Join(root, "audio")
	cfg.Paths.SubDir = filepath.Join(root, "subs")
	cfg.Paths.FontsDir = filepath.Join(root, "fonts")
	cfg.Paths.CommonDir = filepath.Join(root, "common")
	cfg.Paths.WorkDir = filepath.Join(root, "work")
	cfg.Paths.LogDir = filepath.Join(root, "logs")

	for _, dir := range []string{cfg.Paths.PremuxDir, cfg.Paths.AudioDir, cfg.Paths.SubDir, cfg.Paths.WorkDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	for _, code := range episodes {
		files := map[string]string{
			filepath.Join(cfg.Paths.PremuxDir, "[Premux] "+code+" (1080p).mkv"): "video",
			filepath.Join(cfg.Paths.AudioDir, code+".flac"):                     "audio",
			filepath.Join(cfg.Paths.SubDir, code+" - Dialogue.ass"):             minimalASS,
		}
		for path, content := range files {
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write %s: %v", path, err)
			}
		}
	}
	return &cfg
}

func options(t *testing.T, cfg *config.Config, mode mux.Mode) mux.Options {
	t.Helper()
	return mux.Options{
		OutDir:  filepath.Join(cfg.Paths.WorkDir, "muxed"),
		Version: 1,
		Flag:    "testing",
		Mode:    mode,
		RunID:   "test-run",
	}
}

func TestMuxEpisodeSuccess(t *testing.T) {
	cfg := testSetup(t, "02")
	muxer := &fakeMuxer{}
	runner := mux.NewRunner(cfg, logging.NewNop(), muxer, nil)
	opts := options(t, cfg, mux.ModeNormal)
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		t.Fatalf("mkdir outdir: %v", err)
	}

	outPath, err := runner.MuxEpisode(context.Background(), 2, opts)
	if err != nil {
		t.Fatalf("MuxEpisode returned error: %v", err)
	}

	base := filepath.Base(outPath)
	if !strings.HasPrefix(base, "[testing] TestShow - 02 ") {
		t.Fatalf("unexpected output name: %q", base)
	}
	if !strings.HasSuffix(base, ".mkv") || !strings.Contains(base, "[") {
		t.Fatalf("unexpected output name: %q", base)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("renamed output missing: %v", err)
	}

	if len(muxer.jobs) != 1 {
		t.Fatalf("expected one mux job, got %d", len(muxer.jobs))
	}
	job := muxer.jobs[0]
	if job.Title != "TestShow - 02" {
		t.Fatalf("unexpected title: %q", job.Title)
	}
	if len(job.Audio) != 1 || job.Audio[0].Language != "ja" {
		t.Fatalf("unexpected audio tracks: %+v", job.Audio)
	}
	if len(job.Subtitles) != 1 || job.Subtitles[0].Name != "testing" {
		t.Fatalf("unexpected subtitle tracks: %+v", job.Subtitles)
	}
	if job.ChaptersPath == "" {
		t.Fatal("expected chapters file from marker line")
	}
}

func TestMuxEpisodeWritesGlobalTags(t *testing.T) {
	cfg := testSetup(t, "02")
	cfg.Show.TMDBID = 12345
	cfg.Show.Season = 2
	muxer := &fakeMuxer{}
	runner := mux.NewRunner(cfg, logging.NewNop(), muxer, nil)
	opts := options(t, cfg, mux.ModeNormal)
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		t.Fatalf("mkdir outdir: %v", err)
	}

	if _, err := runner.MuxEpisode(context.Background(), 2, opts); err != nil {
		t.Fatalf("MuxEpisode returned error: %v", err)
	}
	if len(muxer.jobs) != 1 || muxer.jobs[0].GlobalTagsPath == "" {
		t.Fatalf("expected a global tags file on the job: %+v", muxer.jobs)
	}
	data, err := os.ReadFile(muxer.jobs[0].GlobalTagsPath)
	if err != nil {
		t.Fatalf("read tags: %v", err)
	}
	if !strings.Contains(string(data), "tv/12345") {
		t.Fatalf("tags file missing TMDB id:\n%s", data)
	}
}

func TestMuxEpisodeVersionSuffix(t *testing.T) {
	cfg := testSetup(t, "02")
	muxer := &fakeMuxer{}
	runner := mux.NewRunner(cfg, logging.NewNop(), muxer, nil)
	opts := options(t, cfg, mux.ModeNormal)
	opts.Version = 2
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		t.Fatalf("mkdir outdir: %v", err)
	}

	outPath, err := runner.MuxEpisode(context.Background(), 2, opts)
	if err != nil {
		t.Fatalf("MuxEpisode returned error: %v", err)
	}
	if !strings.Contains(filepath.Base(outPath), "02v2") {
		t.Fatalf("missing version suffix: %q", outPath)
	}
}

func TestMuxEpisodeSkipsOnMissingVideo(t *testing.T) {
	cfg := testSetup(t, "02")
	if err := os.RemoveAll(cfg.Paths.PremuxDir); err != nil {
		t.Fatalf("remove premux dir: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.PremuxDir, 0o755); err != nil {
		t.Fatalf("recreate premux dir: %v", err)
	}
	runner := mux.NewRunner(cfg, logging.NewNop(), &fakeMuxer{}, nil)

	_, err := runner.MuxEpisode(context.Background(), 2, options(t, cfg, mux.ModeNormal))
	if !errors.Is(err, mux.ErrAssetMissing) {
		t.Fatalf("expected ErrAssetMissing, got %v", err)
	}
}

func TestMuxEpisodeSkipsOnMissingSubtitles(t *testing.T) {
	cfg := testSetup(t, "02")
	runner := mux.NewRunner(cfg, logging.NewNop(), &fakeMuxer{}, nil)

	_, err := runner.MuxEpisode(context.Background(), 3, options(t, cfg, mux.ModeNormal))
	if !errors.Is(err, mux.ErrAssetMissing) {
		t.Fatalf("expected ErrAssetMissing, got %v", err)
	}
}

func TestDryRunChecksSubtitlesButNotVideo(t *testing.T) {
	cfg := testSetup(t, "02")
	if err := os.RemoveAll(cfg.Paths.PremuxDir); err != nil {
		t.Fatalf("remove premux dir: %v", err)
	}
	muxer := &fakeMuxer{}
	runner := mux.NewRunner(cfg, logging.NewNop(), muxer, nil)

	outPath, err := runner.MuxEpisode(context.Background(), 2, options(t, cfg, mux.ModeDryRun))
	if err != nil {
		t.Fatalf("dry run returned error: %v", err)
	}
	if outPath != "" {
		t.Fatalf("dry run produced output path: %q", outPath)
	}
	if len(muxer.jobs) != 0 {
		t.Fatal("dry run invoked the muxer")
	}

	// The merged subtitle is still written so the merge can be inspected.
	merged := filepath.Join(cfg.Paths.WorkDir, ".animux", "02", "02.ass")
	if _, err := os.Stat(merged); err != nil {
		t.Fatalf("merged subtitle missing after dry run: %v", err)
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	cfg := testSetup(t, "01", "03")
	recorder := &memoryRecorder{}
	runner := mux.NewRunner(cfg, logging.NewNop(), &fakeMuxer{}, recorder)

	// Episode 2 has no assets at all; 1 and 3 validate in dry-run mode.
	stats, err := runner.Run(context.Background(), []int{1, 2, 3}, options(t, cfg, mux.ModeDryRun))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stats.Total != 3 || stats.DryRun != 2 || stats.Skipped != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.Succeeded() {
		t.Fatal("expected batch success")
	}
	if len(recorder.entries) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(recorder.entries))
	}
	if recorder.entries[1].Outcome != history.OutcomeSkipped {
		t.Fatalf("unexpected outcome for episode 2: %+v", recorder.entries[1])
	}
}

func TestRunMarksMuxerFailures(t *testing.T) {
	cfg := testSetup(t, "01")
	muxer := &fakeMuxer{err: errors.New("exit status 2")}
	runner := mux.NewRunner(cfg, logging.NewNop(), muxer, nil)

	opts := options(t, cfg, mux.ModeNormal)
	outPath, err := runner.MuxEpisode(context.Background(), 1, opts)
	if err == nil || errors.Is(err, mux.ErrAssetMissing) {
		t.Fatalf("expected mux failure, got path=%q err=%v", outPath, err)
	}
}

func TestDryRunSucceedsWhenEverythingSkipped(t *testing.T) {
	cfg := testSetup(t)
	muxer := &fakeMuxer{}
	runner := mux.NewRunner(cfg, logging.NewNop(), muxer, nil)

	stats, err := runner.Run(context.Background(), []int{7}, options(t, cfg, mux.ModeDryRun))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stats.Skipped != 1 || stats.DryRun != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.Succeeded() {
		t.Fatal("a dry run counts skipped episodes as processed")
	}
	if len(muxer.jobs) != 0 {
		t.Fatal("dry run invoked the muxer")
	}
}

func TestStatsSucceeded(t *testing.T) {
	cases := []struct {
		name  string
		stats mux.Stats
		want  bool
	}{
		{"empty", mux.Stats{}, false},
		{"normal all skipped", mux.Stats{Mode: mux.ModeNormal, Total: 2, Skipped: 2}, false},
		{"normal one muxed", mux.Stats{Mode: mux.ModeNormal, Total: 2, Muxed: 1, Failed: 1}, true},
		{"dry run all skipped", mux.Stats{Mode: mux.ModeDryRun, Total: 1, Skipped: 1}, true},
		{"dry run validated", mux.Stats{Mode: mux.ModeDryRun, Total: 1, DryRun: 1}, true},
	}
	for _, tc := range cases {
		if got := tc.stats.Succeeded(); got != tc.want {
			t.Errorf("%s: Succeeded() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
