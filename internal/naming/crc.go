package naming

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// FileCRC32 computes the IEEE CRC32 of a file, formatted as the uppercase
// eight-digit hex string release names embed.
func FileCRC32(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for checksum: %w", err)
	}
	defer file.Close()

	hasher := crc32.NewIEEE()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("checksum %q: %w", path, err)
	}
	return fmt.Sprintf("%08X", hasher.Sum32()), nil
}
