package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"animux/internal/episode"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		var parseErr *episode.ParseError
		if errors.As(err, &parseErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
