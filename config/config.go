// Package config loads preimage search jobs from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.gammaspectra.live/P2Pool/md5sum/types"
	"git.gammaspectra.live/P2Pool/md5sum/utils"
	"github.com/pelletier/go-toml/v2"
)

// DefaultBound candidate count tried when a job does not set one
const DefaultBound = 1000000000000

// Search describes one preimage search job.
//
//	targets = ["187ef4436122d1cc2f40dc2b92f0eba0"]
//	bound = 100000
//	workers = 4
//	timeout_seconds = 60
//	progress_seconds = 10
type Search struct {
	Targets         []string `toml:"targets" validate:"required,min=1,dive,md5hex"`
	Bound           uint64   `toml:"bound" validate:"gt=0"`
	Workers         int      `toml:"workers" validate:"gte=0"`
	TimeoutSeconds  int      `toml:"timeout_seconds" validate:"gte=0"`
	ProgressSeconds int      `toml:"progress_seconds" validate:"gte=0"`

	// set from command line durations, take precedence over the second counts
	timeout  time.Duration
	progress time.Duration
}

func Default() *Search {
	return &Search{
		Bound: DefaultBound,
	}
}

// Load reads and validates a job file. Unset fields keep their Default values.
func Load(path string) (*Search, error) {
	path = filepath.Clean(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err = toml.Unmarshal(content, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			utils.Errorf("Config", "%s", derr.String())
			return nil, fmt.Errorf("failed to parse config file %s at line %d, column %d: %w", path, row, col, err)
		}
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	utils.Debugf("Config", "loaded %s: %d targets, bound %d", path, len(cfg.Targets), cfg.Bound)

	return cfg, nil
}

// Digests returns the parsed targets, Validate must have succeeded
func (c *Search) Digests() ([]types.Digest, error) {
	out := make([]types.Digest, 0, len(c.Targets))
	for _, s := range c.Targets {
		d, err := types.DigestFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid target %q: %w", s, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// SetDurations overrides TimeoutSeconds and ProgressSeconds with exact durations.
// Zero or negative values disable the feature.
func (c *Search) SetDurations(timeout, progress time.Duration) {
	c.timeout = max(timeout, 0)
	c.progress = max(progress, 0)
	c.TimeoutSeconds = 0
	c.ProgressSeconds = 0
}

func (c *Search) Timeout() time.Duration {
	if c.timeout > 0 {
		return c.timeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Search) ProgressInterval() time.Duration {
	if c.progress > 0 {
		return c.progress
	}
	return time.Duration(c.ProgressSeconds) * time.Second
}
