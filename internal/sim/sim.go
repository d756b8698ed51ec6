// Package sim runs batches of sit-and-go tournaments for soak-testing the
// engine and gathering outcome statistics.
package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/sitngo/internal/config"
	"github.com/lox/sitngo/internal/engine"
	"github.com/lox/sitngo/internal/randutil"
	"github.com/lox/sitngo/internal/table"
)

// Config holds simulation parameters.
type Config struct {
	Tournaments int
	Players     int
	Seed        int64
	Parallelism int
	Tournament  *config.TournamentConfig
	Logger      *log.Logger
}

// Stats aggregates results across tournaments.
type Stats struct {
	Tournaments int
	TotalHands  int
	Wins        map[engine.PlayerID]int
}

// Simulator runs tournaments, optionally in parallel. The engine is pure,
// so concurrent tournaments never share state.
type Simulator struct {
	cfg Config
}

// New creates a simulator.
func New(cfg Config) *Simulator {
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	if cfg.Players < 2 {
		cfg.Players = cfg.Tournament.Game.MaxPlayers
	}
	return &Simulator{cfg: cfg}
}

// Run executes the configured number of tournaments and aggregates results.
// Each tournament derives its own seed from the base seed, so a run is
// reproducible regardless of parallelism.
func (s *Simulator) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{Wins: make(map[engine.PlayerID]int)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Parallelism)

	for i := 0; i < s.cfg.Tournaments; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := s.playTournament(s.cfg.Seed + int64(i))
			if err != nil {
				return fmt.Errorf("tournament %d: %w", i+1, err)
			}

			mu.Lock()
			stats.Tournaments++
			stats.TotalHands += result.HandsPlayed
			stats.Wins[result.Winner]++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Simulator) playTournament(seed int64) (*table.Result, error) {
	rng := randutil.New(seed)
	t := table.New(s.cfg.Tournament, s.cfg.Logger, quartz.NewReal(), rng)

	for p := 0; p < s.cfg.Players; p++ {
		id := engine.PlayerID(fmt.Sprintf("player-%d", p+1))
		// Alternate agent styles so hands see both passive and wild lines
		var agent table.Agent
		if p%2 == 0 {
			agent = table.CallingAgent{}
		} else {
			agent = table.RandomAgent{Rng: randutil.New(seed + int64(p)*7919)}
		}
		if err := t.AddPlayer(id, agent); err != nil {
			return nil, err
		}
	}

	return t.Run()
}
