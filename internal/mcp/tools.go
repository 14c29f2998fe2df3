// Package mcp exposes match simulation as MCP tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/autobattler/internal/batch"
	"github.com/peterkuimelis/autobattler/internal/game"
	"github.com/peterkuimelis/autobattler/internal/view"
)

// maxBatchGames is the most games one run_batch call may request.
const maxBatchGames = 10000

// Tools serves the simulation tools over one catalog and deck list.
type Tools struct {
	catalog  *game.Catalog
	decks    []*game.Deck
	maxTurns int
	workers  int
	logger   *zap.Logger
	session  Session
}

// NewTools creates the tool set.
func NewTools(cat *game.Catalog, decks []*game.Deck, maxTurns, workers int, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tools{
		catalog:  cat,
		decks:    decks,
		maxTurns: maxTurns,
		workers:  workers,
		logger:   logger,
	}
}

// Register adds all tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(simulateMatchTool(), t.handleSimulateMatch)
	s.AddTool(runBatchTool(), t.handleRunBatch)
	s.AddTool(listCardsTool(), t.handleListCards)
	s.AddTool(listDecksTool(), t.handleListDecks)
	s.AddTool(getLastMatchTool(), t.handleGetLastMatch)
}

// --- Tool definitions ---

func simulateMatchTool() mcp.Tool {
	return mcp.NewTool("simulate_match",
		mcp.WithDescription("Simulate one auto-battler match between two decks and return the final board and the full event log. "+
			"Use list_decks to see the deck numbers."),
		mcp.WithNumber("deck1", mcp.Required(), mcp.Description("Deck number for player 1 (1-indexed from decks.yaml)")),
		mcp.WithNumber("deck2", mcp.Required(), mcp.Description("Deck number for player 2 (1-indexed from decks.yaml)")),
		mcp.WithNumber("seed", mcp.Description("RNG seed; the same seed replays the same match. 0 or omitted for random")),
		mcp.WithNumber("starting_hp", mcp.Description("Override both heroes' starting HP")),
	)
}

func runBatchTool() mcp.Tool {
	return mcp.NewTool("run_batch",
		mcp.WithDescription("Simulate many matches between two decks and return win/draw counts and turn statistics."),
		mcp.WithNumber("deck1", mcp.Required(), mcp.Description("Deck number for player 1")),
		mcp.WithNumber("deck2", mcp.Required(), mcp.Description("Deck number for player 2")),
		mcp.WithNumber("games", mcp.Required(), mcp.Description("Number of matches to run")),
		mcp.WithNumber("seed", mcp.Description("Batch seed; 0 or omitted for random")),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List every card in the catalog with its stats and resolved keywords. Read-only."),
	)
}

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the numbered decks available to simulate_match. Read-only."),
	)
}

func getLastMatchTool() mcp.Tool {
	return mcp.NewTool("get_last_match",
		mcp.WithDescription("Return the result of the most recent simulate_match call without running a new match. Read-only."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleSimulateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, errResult := simulateRequest(request)
	if errResult != nil {
		return errResult, nil
	}
	cfg, err := req.MatchConfig(t.decks, t.catalog.Library)
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid decks: %v", err), nil
	}
	cfg.MaxTurns = t.maxTurns

	m, err := game.Simulate(cfg)
	if err != nil {
		if errors.Is(err, game.ErrDataIntegrity) {
			return mcp.NewToolResultErrorf("Card data is broken: %v", err), nil
		}
		return mcp.NewToolResultErrorf("Simulation failed: %v", err), nil
	}
	t.session.record(m)
	t.logger.Info("match simulated",
		zap.String("match_id", m.ID),
		zap.Stringer("winner", m.Winner),
		zap.Int("turns", m.Turn),
	)
	return mcp.NewToolResultText(respondJSON(view.BuildMatchView(m))), nil
}

func (t *Tools) handleRunBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, errResult := simulateRequest(request)
	if errResult != nil {
		return errResult, nil
	}
	games := request.GetInt("games", 0)
	if games < 1 || games > maxBatchGames {
		return mcp.NewToolResultErrorf("games must be between 1 and %d", maxBatchGames), nil
	}
	d1, err := game.SelectDeck(t.decks, req.Deck1)
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid decks: %v", err), nil
	}
	d2, err := game.SelectDeck(t.decks, req.Deck2)
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid decks: %v", err), nil
	}

	stats, _, err := batch.Run(ctx, batch.Config{
		Deck1:    d1,
		Deck2:    d2,
		Library:  t.catalog.Library,
		Games:    games,
		Workers:  t.workers,
		Seed:     req.Seed,
		MaxTurns: t.maxTurns,
		Logger:   t.logger,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Batch failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(stats)), nil
}

func (t *Tools) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cards, err := view.BuildCatalogInfo(t.catalog)
	if err != nil {
		return mcp.NewToolResultErrorf("Card data is broken: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(cards)), nil
}

func (t *Tools) handleListDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(view.BuildDeckInfo(t.decks))), nil
}

func (t *Tools) handleGetLastMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mv := t.session.Last()
	if mv == nil {
		return mcp.NewToolResultError("No match has been simulated yet. Use simulate_match first."), nil
	}
	return mcp.NewToolResultText(respondJSON(mv)), nil
}

// simulateRequest reads the deck, seed and HP arguments shared by the
// simulation tools.
func simulateRequest(request mcp.CallToolRequest) (view.SimulateRequest, *mcp.CallToolResult) {
	req := view.SimulateRequest{
		Deck1:      request.GetInt("deck1", 0),
		Deck2:      request.GetInt("deck2", 0),
		StartingHP: request.GetInt("starting_hp", 0),
	}
	if req.Deck1 < 1 || req.Deck2 < 1 {
		return req, mcp.NewToolResultError("deck1 and deck2 must be >= 1")
	}
	if req.StartingHP < 0 {
		return req, mcp.NewToolResultError("starting_hp must not be negative")
	}
	seed := request.GetInt("seed", 0)
	if seed < 0 {
		return req, mcp.NewToolResultError("seed must not be negative")
	}
	req.Seed = uint64(seed)
	return req, nil
}

func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
