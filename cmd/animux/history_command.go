package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"animux/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent mux results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No mux history recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				detail := entry.Detail
				if entry.OutputPath != "" {
					detail = filepath.Base(entry.OutputPath)
				}
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					fmt.Sprintf("%02d", entry.Episode),
					string(entry.Outcome),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]tableColumn{{Title: "When"}, {Title: "Episode", Right: true}, {Title: "Outcome"}, {Title: "Output"}},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")
	return cmd
}
