// Package batch runs many independent matches in parallel and aggregates
// their outcomes.
package batch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/autobattler/internal/game"
)

// Config describes a batch of matches between the same two decks.
type Config struct {
	Deck1      *game.Deck
	Deck2      *game.Deck
	Library    game.KeywordLibrary
	Games      int
	Workers    int
	Seed       uint64 // 0 for random
	StartingHP int
	MaxTurns   int
	Logger     *zap.Logger
}

// GameResult holds the outcome of a single match.
type GameResult struct {
	Index     int
	MatchID   string
	Seed      uint64
	Winner    game.PlayerID
	Turns     int
	TurnLimit bool
	Duration  time.Duration
	Error     string // setup error reported by the match
}

// Stats summarizes a batch.
type Stats struct {
	RunID       string
	TotalGames  int
	Player1Wins int
	Player2Wins int
	Draws       int
	TurnLimits  int
	Errors      int
	AvgTurns    float64
	MedianTurns int
	AvgDuration time.Duration
}

// WinRate returns the share of games won by id.
func (s Stats) WinRate(id game.PlayerID) float64 {
	if s.TotalGames == 0 {
		return 0
	}
	switch id {
	case game.Player1:
		return float64(s.Player1Wins) / float64(s.TotalGames)
	case game.Player2:
		return float64(s.Player2Wins) / float64(s.TotalGames)
	}
	return float64(s.Draws) / float64(s.TotalGames)
}

// Run simulates cfg.Games matches on at most cfg.Workers goroutines. Each match
// gets its own seed, derived in order from the batch seed, so a fixed batch
// seed reproduces every result regardless of scheduling.
func Run(ctx context.Context, cfg Config) (Stats, []GameResult, error) {
	if cfg.Deck1 == nil || cfg.Deck2 == nil {
		return Stats{}, nil, fmt.Errorf("batch needs two decks")
	}
	if cfg.Games < 1 {
		return Stats{}, nil, fmt.Errorf("batch needs at least one game, got %d", cfg.Games)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	seeds := make([]uint64, cfg.Games)
	for i := range seeds {
		for seeds[i] == 0 {
			seeds[i] = rng.Uint64()
		}
	}

	logger.Info("batch started",
		zap.Int("games", cfg.Games),
		zap.Int("workers", workers),
		zap.Uint64("seed", seed),
		zap.String("deck1", cfg.Deck1.Name),
		zap.String("deck2", cfg.Deck2.Name),
	)

	results := make([]GameResult, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runOne(cfg, i, seeds[i])
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = res
			logger.Debug("game finished",
				zap.Int("game", i),
				zap.String("match_id", res.MatchID),
				zap.Stringer("winner", res.Winner),
				zap.Int("turns", res.Turns),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, nil, err
	}

	stats := aggregate(results)
	stats.RunID = runID
	logger.Info("batch finished",
		zap.Int("p1_wins", stats.Player1Wins),
		zap.Int("p2_wins", stats.Player2Wins),
		zap.Int("draws", stats.Draws),
		zap.Float64("avg_turns", stats.AvgTurns),
	)
	return stats, results, nil
}

func runOne(cfg Config, index int, seed uint64) (GameResult, error) {
	start := time.Now()
	m, err := game.Simulate(game.MatchConfig{
		Deck1:      cfg.Deck1.Cards,
		Deck2:      cfg.Deck2.Cards,
		Hero1:      cfg.Deck1.Hero,
		Hero2:      cfg.Deck2.Hero,
		StartingHP: cfg.StartingHP,
		Library:    cfg.Library,
		Seed:       seed,
		MaxTurns:   cfg.MaxTurns,
	})
	if err != nil {
		return GameResult{}, err
	}
	res := GameResult{
		Index:     index,
		MatchID:   m.ID,
		Seed:      seed,
		Winner:    m.Winner,
		Turns:     m.Turn,
		TurnLimit: m.TurnLimitReached,
		Duration:  time.Since(start),
	}
	if m.Phase == game.PhaseSetupError {
		res.Error = m.Result
	}
	return res, nil
}

// aggregate computes summary statistics.
func aggregate(results []GameResult) Stats {
	stats := Stats{TotalGames: len(results)}
	if len(results) == 0 {
		return stats
	}

	turns := make([]int, 0, len(results))
	var totalTurns int
	var totalDuration time.Duration
	for _, r := range results {
		if r.Error != "" {
			stats.Errors++
			continue
		}
		switch r.Winner {
		case game.Player1:
			stats.Player1Wins++
		case game.Player2:
			stats.Player2Wins++
		default:
			stats.Draws++
		}
		if r.TurnLimit {
			stats.TurnLimits++
		}
		turns = append(turns, r.Turns)
		totalTurns += r.Turns
		totalDuration += r.Duration
	}

	if n := len(turns); n > 0 {
		slices.Sort(turns)
		stats.AvgTurns = float64(totalTurns) / float64(n)
		stats.MedianTurns = turns[n/2]
		stats.AvgDuration = totalDuration / time.Duration(n)
	}
	return stats
}
