package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/memsim/sim/alloc"
)

// Config is an accepted configuration. TotalBlocks is
// floor(TotalBytes / BlockSize); remainder bytes are never allocated.
type Config struct {
	TotalBytes  int        `json:"total_bytes"`
	BlockSize   int        `json:"block_size"`
	TotalBlocks int        `json:"total_blocks"`
	Mode        alloc.Mode `json:"-"`
}

// NewConfig validates the inputs and derives the block count.
func NewConfig(totalBytes, blockSize int, mode alloc.Mode) (Config, error) {
	if totalBytes <= 0 {
		return Config{}, fmt.Errorf("%w: total size must be positive, got %d", ErrInvalidConfig, totalBytes)
	}
	if blockSize <= 0 {
		return Config{}, fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidConfig, blockSize)
	}
	if !mode.Valid() {
		return Config{}, fmt.Errorf("%w: unknown mode %s", ErrInvalidConfig, mode)
	}
	return Config{
		TotalBytes:  totalBytes,
		BlockSize:   blockSize,
		TotalBlocks: totalBytes / blockSize,
		Mode:        mode,
	}, nil
}

// ParseConfig validates string inputs as they arrive from a form or flags.
// Non-numeric sizes fail with ErrInvalidConfig.
func ParseConfig(totalBytes, blockSize, mode string) (Config, error) {
	total, err := strconv.Atoi(strings.TrimSpace(totalBytes))
	if err != nil {
		return Config{}, fmt.Errorf("%w: total size %q is not a number", ErrInvalidConfig, totalBytes)
	}
	block, err := strconv.Atoi(strings.TrimSpace(blockSize))
	if err != nil {
		return Config{}, fmt.Errorf("%w: block size %q is not a number", ErrInvalidConfig, blockSize)
	}
	m, err := alloc.ParseMode(mode)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return NewConfig(total, block, m)
}
