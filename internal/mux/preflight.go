package mux

import (
	"fmt"
	"log/slog"
	"os/exec"

	"golang.org/x/sys/unix"

	"animux/internal/config"
	"animux/internal/logging"
)

// lowSpaceBytes is the free-space level below which a warning is logged.
// Muxed episodes commonly run a few GiB each.
const lowSpaceBytes = 4 << 30

// Preflight verifies the batch can run: mkvmerge must be resolvable and the
// output filesystem should have room. Low disk space only warns; the mux
// itself will fail with a concrete error if space actually runs out.
func Preflight(cfg *config.Config, outDir string, logger *slog.Logger) error {
	binary := cfg.MkvmergeBinary()
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("mkvmerge not found (%q): %w", binary, err)
	}

	free, err := freeSpace(outDir)
	if err != nil {
		logger.Warn("free space check failed", logging.String("dir", outDir), logging.Error(err))
		return nil
	}
	if free < lowSpaceBytes {
		logger.Warn("output filesystem is low on space",
			logging.String("dir", outDir),
			logging.Int64("free_bytes", int64(free)),
		)
	}
	return nil
}

func freeSpace(dir string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
