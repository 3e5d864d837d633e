package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes <selector>",
		Short: "Expand an episode selector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			episodes, err := resolveEpisodes(cfg, args[0])
			if err != nil {
				return err
			}
			codes := make([]string, 0, len(episodes))
			for _, ep := range episodes {
				codes = append(codes, fmt.Sprintf("%02d", ep))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d episode(s): %s\n", len(episodes), strings.Join(codes, ", "))
			return nil
		},
	}
}
