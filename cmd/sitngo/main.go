package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/sitngo/internal/config"
	"github.com/lox/sitngo/internal/engine"
	"github.com/lox/sitngo/internal/sim"
)

type CLI struct {
	Tournaments int    `default:"100" help:"Number of tournaments to simulate"`
	Players     int    `default:"6" help:"Players per table (2-6)"`
	Seed        int64  `default:"0" help:"RNG seed (0 for time-based)"`
	Parallel    int    `default:"4" help:"Tournaments to run concurrently"`
	Config      string `help:"Path to HCL tournament config" type:"existingfile" optional:""`
	Verbose     bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	var logger *log.Logger
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	tournamentCfg := config.Default()
	if cli.Config != "" {
		var err error
		tournamentCfg, err = config.Load(cli.Config)
		if err != nil {
			logger.Fatal("failed to load config", "error", err)
		}
	}
	if cli.Players >= 2 && cli.Players <= tournamentCfg.Game.MaxPlayers {
		tournamentCfg.Game.MaxPlayers = cli.Players
	}

	fmt.Printf("Simulating %d sit-and-gos, %d players (seed: %d)\n",
		cli.Tournaments, tournamentCfg.Game.MaxPlayers, cli.Seed)

	simulator := sim.New(sim.Config{
		Tournaments: cli.Tournaments,
		Players:     tournamentCfg.Game.MaxPlayers,
		Seed:        cli.Seed,
		Parallelism: cli.Parallel,
		Tournament:  tournamentCfg,
		Logger:      logger,
	})

	start := time.Now()
	stats, err := simulator.Run(context.Background())
	if err != nil {
		logger.Fatal("simulation failed", "error", err)
	}

	printResults(stats, time.Since(start))
	ctx.Exit(0)
}

func printResults(stats *sim.Stats, duration time.Duration) {
	fmt.Printf("\nCompleted %d tournaments (%d hands) in %s\n",
		stats.Tournaments, stats.TotalHands, duration.Round(time.Millisecond))

	players := make([]string, 0, len(stats.Wins))
	for id := range stats.Wins {
		players = append(players, string(id))
	}
	sort.Strings(players)

	fmt.Println("\nWins:")
	for _, id := range players {
		wins := stats.Wins[engine.PlayerID(id)]
		pct := 100 * float64(wins) / float64(stats.Tournaments)
		fmt.Printf("  %-12s %4d (%.1f%%)\n", id, wins, pct)
	}
}
