package sim

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sitngo/internal/config"
)

func testConfig() Config {
	cfg := config.Default()
	cfg.Game.StartingChips = 300
	cfg.Game.MaxPlayers = 3

	return Config{
		Tournaments: 5,
		Seed:        1234,
		Tournament:  cfg,
		Logger:      log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	}
}

func TestRunAggregatesResults(t *testing.T) {
	t.Parallel()

	stats, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Tournaments)
	assert.Greater(t, stats.TotalHands, 0)

	wins := 0
	for _, n := range stats.Wins {
		wins += n
	}
	assert.Equal(t, 5, wins, "every tournament has exactly one winner")
}

// TestRunReproducibleAcrossParallelism: the same seed must produce the same
// aggregate outcome whether tournaments run serially or concurrently.
func TestRunReproducibleAcrossParallelism(t *testing.T) {
	t.Parallel()

	serial := testConfig()
	serial.Parallelism = 1
	parallel := testConfig()
	parallel.Parallelism = 4

	first, err := New(serial).Run(context.Background())
	require.NoError(t, err)
	second, err := New(parallel).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Wins, second.Wins)
	assert.Equal(t, first.TotalHands, second.TotalHands)
}

func TestRunRespectsCancellation(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Tournaments = 1000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg).Run(ctx)
	assert.Error(t, err)
}

func TestNewDefaultsPlayersFromTableSize(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Players = 0
	s := New(cfg)
	assert.Equal(t, 3, s.cfg.Players)
}
