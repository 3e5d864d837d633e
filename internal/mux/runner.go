package mux

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"animux/internal/assets"
	"animux/internal/config"
	"animux/internal/history"
	"animux/internal/logging"
	"animux/internal/naming"
	"animux/internal/services/mkvmerge"
)

// ErrAssetMissing marks an episode that cannot be muxed because a required
// source file was not found. The batch skips it and continues.
var ErrAssetMissing = errors.New("required asset missing")

// Options carries the per-run parameters from the CLI.
type Options struct {
	OutDir  string
	Version int
	Flag    string
	Mode    Mode
	RunID   string
}

// Recorder is the slice of the history store the runner needs.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Runner muxes episodes one at a time.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	muxer  mkvmerge.Muxer
	store  Recorder
}

// NewRunner constructs a batch runner. The store may be nil; history is
// then not recorded.
func NewRunner(cfg *config.Config, logger *slog.Logger, muxer mkvmerge.Muxer, store Recorder) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "runner"),
		muxer:  muxer,
		store:  store,
	}
}

// Run processes the episode list sequentially and reports aggregate stats.
// Individual episode failures never abort the batch.
func (r *Runner) Run(ctx context.Context, episodes []int, opts Options) (Stats, error) {
	stats := Stats{Mode: opts.Mode, Total: len(episodes)}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output directory: %w", err)
	}

	release, err := acquireRunLock(r.cfg.Paths.WorkDir)
	if err != nil {
		return stats, err
	}
	defer release()

	if opts.Mode == ModeNormal {
		if err := Preflight(r.cfg, opts.OutDir, r.logger); err != nil {
			return stats, err
		}
	}

	for _, ep := range episodes {
		if ctx.Err() != nil {
			r.logger.Warn("batch interrupted", logging.Int("episode", ep))
			break
		}
		result := r.runOne(ctx, ep, opts)
		stats.add(result)
		r.record(ctx, result, opts)
	}

	r.logger.Info("muxing complete",
		logging.Int("processed", stats.Muxed+stats.DryRun),
		logging.Int("total", stats.Total),
		logging.Int("skipped", stats.Skipped),
		logging.Int("failed", stats.Failed),
	)
	return stats, nil
}

func (r *Runner) runOne(ctx context.Context, ep int, opts Options) Result {
	outPath, err := r.MuxEpisode(ctx, ep, opts)
	switch {
	case err == nil && opts.Mode == ModeDryRun:
		return Result{Episode: ep, Outcome: history.OutcomeDryRun}
	case err == nil:
		r.logger.Info("successfully muxed", logging.Int("episode", ep), logging.String("output", filepath.Base(outPath)))
		return Result{Episode: ep, Outcome: history.OutcomeMuxed, OutputPath: outPath}
	case errors.Is(err, ErrAssetMissing):
		r.logger.Warn("skipping episode", logging.Int("episode", ep), logging.Error(err))
		return Result{Episode: ep, Outcome: history.OutcomeSkipped, Detail: err.Error()}
	default:
		r.logger.Error("muxing failed", logging.Int("episode", ep), logging.Error(err))
		return Result{Episode: ep, Outcome: history.OutcomeFailed, Detail: err.Error()}
	}
}

func (r *Runner) record(ctx context.Context, result Result, opts Options) {
	if r.store == nil {
		return
	}
	entry := history.Entry{
		RunID:      opts.RunID,
		Episode:    result.Episode,
		Outcome:    result.Outcome,
		OutputPath: result.OutputPath,
		Detail:     result.Detail,
	}
	if err := r.store.Record(ctx, entry); err != nil {
		r.logger.Warn("history entry not recorded", logging.Int("episode", result.Episode), logging.Error(err))
	}
}

// MuxEpisode assembles and muxes a single episode. It returns the final
// output path, or an error wrapping ErrAssetMissing when a required source
// file is absent.
func (r *Runner) MuxEpisode(ctx context.Context, ep int, opts Options) (string, error) {
	cfg := r.cfg
	code := naming.EpisodeCode(ep)
	spec := naming.Spec{
		Show:    r.showTitle(),
		Episode: code,
		Version: opts.Version,
		Flag:    opts.Flag,
	}

	// Premux video. A dry run tolerates its absence: the merge logic can
	// still be validated without the heavy source files.
	var videoPath string
	if opts.Mode == ModeNormal {
		videos, err := assets.GlobSearch(cfg.Paths.PremuxDir, "*"+code+"*.mkv", false)
		if err != nil {
			return "", err
		}
		if len(videos) == 0 {
			return "", fmt.Errorf("%w: video file for episode %s", ErrAssetMissing, code)
		}
		videoPath = videos[0]
	}

	audioPaths, err := assets.GlobSearch(cfg.Paths.AudioDir, "*"+code+"*.flac", false)
	if err != nil {
		return "", err
	}
	if len(audioPaths) == 0 && opts.Mode == ModeNormal {
		return "", fmt.Errorf("%w: audio files for episode %s", ErrAssetMissing, code)
	}

	subPaths, err := assets.GlobSearch(cfg.Paths.SubDir, "*"+code+"*.ass", false)
	if err != nil {
		return "", err
	}
	if len(subPaths) == 0 {
		return "", fmt.Errorf("%w: subtitle files for episode %s", ErrAssetMissing, code)
	}

	sub, err := r.assembleSubtitles(code, subPaths)
	if err != nil {
		return "", err
	}

	// Chapters first: markers are usually Comment lines, which the
	// garbage pass removes.
	chapters := sub.Chapters()
	sub.CleanGarbage()

	fonts, err := assets.CollectFonts(cfg.Paths.FontsDir, filepath.Join(cfg.Paths.SubDir, code))
	if err != nil {
		return "", fmt.Errorf("collect fonts: %w", err)
	}

	workDir := filepath.Join(cfg.Paths.WorkDir, ".animux", code)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("create work directory: %w", err)
	}
	mergedSubPath := filepath.Join(workDir, code+".ass")
	if err := sub.WriteFile(mergedSubPath); err != nil {
		return "", fmt.Errorf("write merged subtitle: %w", err)
	}

	var chaptersPath string
	if len(chapters) > 0 {
		chaptersPath = filepath.Join(workDir, code+"-chapters.txt")
		if err := assets.WriteSimpleChapters(chapters, chaptersPath); err != nil {
			return "", fmt.Errorf("write chapters: %w", err)
		}
	}

	var tagsPath string
	if cfg.Show.TMDBID > 0 || cfg.Show.Season > 0 {
		tagsPath = filepath.Join(workDir, code+"-tags.xml")
		tags := mkvmerge.GlobalTags{
			Show:   spec.Show,
			TMDBID: cfg.Show.TMDBID,
			Season: cfg.Show.Season,
		}
		if err := mkvmerge.WriteGlobalTags(tagsPath, tags); err != nil {
			return "", fmt.Errorf("write global tags: %w", err)
		}
	}

	if opts.Mode == ModeDryRun {
		r.logger.Debug("dry run complete",
			logging.Int("episode", ep),
			logging.Int("subtitle_layers", len(subPaths)),
			logging.Int("chapters", len(chapters)),
			logging.Int("fonts", len(fonts)),
		)
		return "", nil
	}

	job := mkvmerge.Job{
		Output:    filepath.Join(opts.OutDir, fmt.Sprintf(".animux-%s.mkv", code)),
		Title:     naming.Render(cfg.Naming.MKVTitle, spec),
		VideoPath: videoPath,
		VideoArgs: cfg.Mux.PremuxArgs,
		Audio:     audioTracks(audioPaths, cfg),
		Subtitles: []mkvmerge.Track{{
			Path:     mergedSubPath,
			Language: cfg.Tracks.SubtitleLanguage,
			Name:     opts.Flag,
			Default:  true,
		}},
		Attachments:    fonts,
		ChaptersPath:   chaptersPath,
		GlobalTagsPath: tagsPath,
	}

	muxedPath, err := r.muxer.Mux(ctx, job)
	if err != nil {
		return "", err
	}

	return r.finalizeOutput(muxedPath, opts.OutDir, spec)
}

// assembleSubtitles merges all subtitle layers for an episode: the globbed
// dialogue files, the episode-local TS/OP/ED layers, and the common
// warning. The caller extracts chapters and then cleans editor leftovers.
func (r *Runner) assembleSubtitles(code string, subPaths []string) (*assets.Subtitle, error) {
	sub, err := assets.LoadSubtitle(subPaths[0])
	if err != nil {
		return nil, err
	}
	for _, path := range subPaths[1:] {
		layer, err := assets.LoadSubtitle(path)
		if err != nil {
			return nil, err
		}
		sub.Merge(layer)
	}

	episodeDir := filepath.Join(r.cfg.Paths.SubDir, code)
	if _, err := os.Stat(episodeDir); err == nil {
		if _, err := sub.MergeGlob(episodeDir, "*TS*.ass"); err != nil {
			return nil, fmt.Errorf("merge typesetting layer: %w", err)
		}
		if _, err := sub.MergeSynced(episodeDir, "*OP*.ass", "opsync", "sync"); err != nil {
			return nil, fmt.Errorf("merge opening layer: %w", err)
		}
		if _, err := sub.MergeSynced(episodeDir, "*ED*.ass", "edsync", "sync"); err != nil {
			return nil, fmt.Errorf("merge ending layer: %w", err)
		}
	}

	if dir := r.cfg.Paths.CommonDir; strings.TrimSpace(dir) != "" {
		if _, err := os.Stat(dir); err == nil {
			if _, err := sub.MergeGlob(dir, "warning.ass"); err != nil {
				return nil, fmt.Errorf("merge warning layer: %w", err)
			}
		}
	}

	return sub, nil
}

// finalizeOutput names the muxed file: compute its CRC32, render the
// release name, and rename atomically within the output directory.
func (r *Runner) finalizeOutput(muxedPath, outDir string, spec naming.Spec) (string, error) {
	crc, err := naming.FileCRC32(muxedPath)
	if err != nil {
		return "", err
	}
	spec.CRC32 = crc

	finalName := naming.SanitizeFileName(naming.Render(r.cfg.Naming.OutName, spec)) + ".mkv"
	finalPath := filepath.Join(outDir, finalName)
	if err := os.Rename(muxedPath, finalPath); err != nil {
		return "", fmt.Errorf("rename output: %w", err)
	}
	return finalPath, nil
}

func (r *Runner) showTitle() string {
	if r.cfg.Show.Name != "" {
		return r.cfg.Show.Name
	}
	return naming.DeriveShowTitle(r.cfg.Paths.SubDir)
}

func audioTracks(paths []string, cfg *config.Config) []mkvmerge.Track {
	tracks := make([]mkvmerge.Track, 0, len(paths))
	for i, path := range paths {
		tracks = append(tracks, mkvmerge.Track{
			Path:     path,
			Language: cfg.Tracks.AudioLanguage,
			Name:     cfg.Tracks.AudioName,
			Default:  i == 0,
		})
	}
	return tracks
}
