package main

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"animux/internal/config"
	"animux/internal/episode"
	"animux/internal/history"
	"animux/internal/logging"
	"animux/internal/mux"
	"animux/internal/services/mkvmerge"
)

func newMuxCommand(ctx *commandContext) *cobra.Command {
	var version int
	var groupFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "mux <episodes> [outdir]",
		Short: "Mux the selected episodes",
		Long: `Mux the selected episodes into release-named MKV files.

The selector accepts a single episode ("3"), a comma list ("1,4,7"), an
inclusive range ("2-5"), a mix of both ("1,3-5,9"), or "all" to process
every episode found in the subtitle directory.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			episodes, err := resolveEpisodes(cfg, args[0])
			if err != nil {
				return err
			}

			outDir := "muxed"
			if len(args) > 1 {
				outDir = args[1]
			}
			outDir, err = config.ExpandPath(outDir)
			if err != nil {
				return err
			}

			mode := mux.ModeNormal
			if dryRun {
				mode = mux.ModeDryRun
			}
			opts := mux.Options{
				OutDir:  outDir,
				Version: version,
				Flag:    groupFlag,
				Mode:    mode,
				RunID:   uuid.NewString(),
			}

			var recorder mux.Recorder
			store, err := history.Open(cfg)
			if err != nil {
				logger.Warn("history store unavailable", logging.Error(err))
			} else {
				defer store.Close()
				recorder = store
			}

			muxer, err := mkvmerge.New(cfg.MkvmergeBinary(), cfg.Mux.TimeoutSeconds)
			if err != nil {
				return err
			}

			runner := mux.NewRunner(cfg, logger, muxer, recorder)
			stats, err := runner.Run(cmd.Context(), episodes, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderRunSummary(stats))
			if !stats.Succeeded() {
				return fmt.Errorf("no episodes were muxed (%d skipped, %d failed)", stats.Skipped, stats.Failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&version, "version", "v", 1, "Release version; names gain a vN suffix when above 1")
	cmd.Flags().StringVarP(&groupFlag, "flag", "f", "testing", "Group tag used in output names and the subtitle track")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Resolve and merge without invoking mkvmerge")
	return cmd
}

// resolveEpisodes expands a selector expression, falling back to subtitle
// directory discovery for "all".
func resolveEpisodes(cfg *config.Config, expr string) ([]int, error) {
	episodes, err := episode.Parse(expr)
	if err != nil {
		return nil, err
	}
	if episodes == nil {
		return episode.Discover(cfg.Paths.SubDir)
	}
	return episodes, nil
}

func renderRunSummary(stats mux.Stats) string {
	rows := make([][]string, 0, len(stats.Results))
	for _, result := range stats.Results {
		detail := result.Detail
		if result.OutputPath != "" {
			detail = filepath.Base(result.OutputPath)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%02d", result.Episode),
			string(result.Outcome),
			detail,
		})
	}
	return renderTable(
		[]tableColumn{{Title: "Episode", Right: true}, {Title: "Outcome"}, {Title: "Output"}},
		rows,
	)
}
