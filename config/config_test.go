package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "search.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_NonExistentFile(t *testing.T) {
	_, err := Load("/non/existent/search.toml")
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "targets = [\"187ef4436122d1cc2f40dc2b92f0eba0\"\nbound = 5")

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line")
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `targets = ["187ef4436122d1cc2f40dc2b92f0eba0", "93b885adfe0da089cdf634904fd59f71"]
bound = 100000
workers = 4
timeout_seconds = 60
progress_seconds = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Targets, 2)
	require.Equal(t, uint64(100000), cfg.Bound)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, time.Minute, cfg.Timeout())
	require.Equal(t, 5*time.Second, cfg.ProgressInterval())

	digests, err := cfg.Digests()
	require.NoError(t, err)
	require.Len(t, digests, 2)
	require.Equal(t, "187ef4436122d1cc2f40dc2b92f0eba0", digests[0].String())
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `targets = ["187ef4436122d1cc2f40dc2b92f0eba0"]`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(DefaultBound), cfg.Bound)
	require.Zero(t, cfg.Workers)
	require.Zero(t, cfg.Timeout())
}

func TestLoad_HexPrefix(t *testing.T) {
	path := writeConfig(t, `targets = ["0x7ef4436122d1cc2f40dc2b92f0eba0"]`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be 32 lowercase hex characters")
}

func TestSearch_SetDurations(t *testing.T) {
	cfg := Default()
	cfg.TimeoutSeconds = 60
	cfg.ProgressSeconds = 5

	cfg.SetDurations(500*time.Millisecond, 1500*time.Millisecond)
	require.Equal(t, 500*time.Millisecond, cfg.Timeout())
	require.Equal(t, 1500*time.Millisecond, cfg.ProgressInterval())

	cfg.SetDurations(0, -time.Second)
	require.Zero(t, cfg.Timeout())
	require.Zero(t, cfg.ProgressInterval())
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		Name    string
		Config  Search
		Message string
	}{
		{"no targets", Search{Bound: 1}, "Targets: field is required"},
		{"short target", Search{Targets: []string{"187ef443"}, Bound: 1}, "Targets[0]: must be 32 lowercase hex characters"},
		{"not hex", Search{Targets: []string{"187ef4436122d1cc2f40dc2b92f0ebzz"}, Bound: 1}, "must be 32 lowercase hex characters"},
		{"uppercase", Search{Targets: []string{"187EF4436122D1CC2F40DC2B92F0EBA0"}, Bound: 1}, "must be 32 lowercase hex characters"},
		{"hex prefix", Search{Targets: []string{"0x7ef4436122d1cc2f40dc2b92f0eba0"}, Bound: 1}, "must be 32 lowercase hex characters"},
		{"second target", Search{Targets: []string{"187ef4436122d1cc2f40dc2b92f0eba0", "0X7ef4436122d1cc2f40dc2b92f0eba0"}, Bound: 1}, "Targets[1]: must be 32 lowercase hex characters"},
		{"zero bound", Search{Targets: []string{"187ef4436122d1cc2f40dc2b92f0eba0"}}, "Bound: must be > 0"},
		{"negative workers", Search{Targets: []string{"187ef4436122d1cc2f40dc2b92f0eba0"}, Bound: 1, Workers: -1}, "Workers: must be >= 0"},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			err := tc.Config.Validate()
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tc.Message), "%q does not contain %q", err.Error(), tc.Message)
		})
	}

	valid := Search{Targets: []string{"187ef4436122d1cc2f40dc2b92f0eba0"}, Bound: 1}
	require.NoError(t, valid.Validate())
	_, err := valid.Digests()
	require.NoError(t, err)
}
