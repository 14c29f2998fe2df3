package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/peterkuimelis/autobattler/internal/batch"
	"github.com/peterkuimelis/autobattler/internal/config"
	"github.com/peterkuimelis/autobattler/internal/game"
	"github.com/peterkuimelis/autobattler/internal/log"
	"github.com/peterkuimelis/autobattler/internal/view"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	cmd := os.Args[1]
	switch cmd {
	case "simulate":
		err = runSimulate(cfg, os.Args[2:])
	case "batch":
		err = runBatch(cfg, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  autobattle-cli simulate [--deck1 N] [--deck2 N] [--seed S] [--hp H] [--decks FILE] [--catalog FILE]")
	fmt.Println("  autobattle-cli batch [--deck1 N] [--deck2 N] [--games N] [--workers W] [--seed S] [--decks FILE] [--catalog FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  simulate  Run one match and print its event log")
	fmt.Println("  batch     Run many matches and print win rates")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// sharedFlags registers the flags common to both subcommands. They default
// to the environment config.
func sharedFlags(fs *flag.FlagSet, cfg *config.Config) (deck1, deck2 *int, seed *uint64) {
	deck1 = fs.Int("deck1", 1, "deck number for player 1 (from the decks file)")
	deck2 = fs.Int("deck2", 2, "deck number for player 2 (from the decks file)")
	seed = fs.Uint64("seed", 0, "RNG seed (0 for random)")
	fs.StringVar(&cfg.DecksFile, "decks", cfg.DecksFile, "path to decks file")
	fs.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "path to catalog file (empty for built-in cards)")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "turn cap per match")
	return deck1, deck2, seed
}

func loadContent(cfg config.Config) (*game.Catalog, []*game.Deck, error) {
	cat, err := cfg.LoadCatalog()
	if err != nil {
		return nil, nil, err
	}
	decks, err := cfg.LoadDecks(cat)
	if err != nil {
		return nil, nil, err
	}
	return cat, decks, nil
}

func runSimulate(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	deck1, deck2, seed := sharedFlags(fs, &cfg)
	hp := fs.Int("hp", 0, "override both heroes' starting HP")
	verbose := fs.Bool("v", false, "also forward events to the operational log")
	fs.Parse(args)

	cat, decks, err := loadContent(cfg)
	if err != nil {
		return err
	}
	req := view.SimulateRequest{Deck1: *deck1, Deck2: *deck2, Seed: *seed, StartingHP: *hp}
	mc, err := req.MatchConfig(decks, cat.Library)
	if err != nil {
		return err
	}
	mc.MaxTurns = cfg.MaxTurns

	if *verbose {
		logger, err := config.NewLogger(config.LoggingConfig{Level: "debug", Format: cfg.Logging.Format})
		if err != nil {
			return err
		}
		defer logger.Sync()
		mc.Logger = log.NewZapLogger(logger)
	} else {
		mc.Logger = log.NewTextLogger(os.Stdout)
	}

	m, err := game.Simulate(mc)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Match %s: %s\n", m.ID, m.Result)
	for _, p := range m.Players {
		if p != nil && p.Hero != nil {
			fmt.Printf("  %s %s\n", p.ID, p.Hero)
		}
	}
	return nil
}

func runBatch(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	deck1, deck2, seed := sharedFlags(fs, &cfg)
	games := fs.Int("games", 100, "number of matches")
	fs.IntVar(&cfg.BatchWorkers, "workers", cfg.BatchWorkers, "parallel workers")
	hp := fs.Int("hp", 0, "override both heroes' starting HP")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "operational log level")
	fs.Parse(args)

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, decks, err := loadContent(cfg)
	if err != nil {
		return err
	}
	d1, err := game.SelectDeck(decks, *deck1)
	if err != nil {
		return err
	}
	d2, err := game.SelectDeck(decks, *deck2)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, _, err := batch.Run(ctx, batch.Config{
		Deck1:      d1,
		Deck2:      d2,
		Library:    cat.Library,
		Games:      *games,
		Workers:    cfg.BatchWorkers,
		Seed:       *seed,
		StartingHP: *hp,
		MaxTurns:   cfg.MaxTurns,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("batch failed", zap.Error(err))
		return err
	}

	fmt.Printf("%s vs %s, %d games (run %s)\n", d1.Name, d2.Name, stats.TotalGames, stats.RunID)
	fmt.Printf("  P1 wins:     %4d (%.1f%%)\n", stats.Player1Wins, 100*stats.WinRate(game.Player1))
	fmt.Printf("  P2 wins:     %4d (%.1f%%)\n", stats.Player2Wins, 100*stats.WinRate(game.Player2))
	fmt.Printf("  Draws:       %4d (%.1f%%)\n", stats.Draws, 100*stats.WinRate(game.NoPlayer))
	fmt.Printf("  Turn limits: %4d\n", stats.TurnLimits)
	if stats.Errors > 0 {
		fmt.Printf("  Errors:      %4d\n", stats.Errors)
	}
	fmt.Printf("  Turns:       avg %.1f, median %d\n", stats.AvgTurns, stats.MedianTurns)
	return nil
}
