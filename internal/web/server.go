// Package web serves the card catalog and match simulations over HTTP and
// WebSocket.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/peterkuimelis/autobattler/internal/game"
	"github.com/peterkuimelis/autobattler/internal/log"
	"github.com/peterkuimelis/autobattler/internal/view"
)

// Server is the autobattler HTTP server.
type Server struct {
	catalog  *game.Catalog
	decks    []*game.Deck
	maxTurns int
	logger   *zap.Logger
	mux      *http.ServeMux
}

// NewServer creates a server over a catalog and the decks built from it.
func NewServer(cat *game.Catalog, decks []*game.Deck, maxTurns int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		catalog:  cat,
		decks:    decks,
		maxTurns: maxTurns,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/keywords", s.handleKeywords)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("POST /api/simulate", s.handleSimulate)

	// Streams one match event by event
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards, err := view.BuildCatalogInfo(s.catalog)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.BuildKeywordInfo(s.catalog.Library))
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.BuildDeckInfo(s.decks))
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req view.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	m, _, err := s.simulate(req)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view.BuildMatchView(m))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	var req view.SimulateRequest
	if err := wsjson.Read(ctx, conn, &req); err != nil {
		conn.Close(websocket.StatusPolicyViolation, "expected simulate request")
		return
	}

	m, events, err := s.simulate(req)
	if err != nil {
		wsjson.Write(ctx, conn, view.Message{Type: "error", Error: err.Error()})
		conn.Close(websocket.StatusNormalClosure, "simulation failed")
		return
	}

	for _, e := range events {
		ev := view.BuildEventView(e)
		if err := wsjson.Write(ctx, conn, view.Message{Type: "event", Event: &ev}); err != nil {
			s.logger.Debug("websocket write", zap.Error(err))
			return
		}
	}
	if err := wsjson.Write(ctx, conn, view.Message{Type: "result", Match: view.BuildMatchView(m)}); err != nil {
		s.logger.Debug("websocket write", zap.Error(err))
		return
	}
	conn.Close(websocket.StatusNormalClosure, "match over")
}

// simulate runs one match and returns its final state and event log.
func (s *Server) simulate(req view.SimulateRequest) (*game.MatchState, []log.GameEvent, error) {
	cfg, err := req.MatchConfig(s.decks, s.catalog.Library)
	if err != nil {
		return nil, nil, err
	}
	events := log.NewMemoryLogger()
	cfg.Logger = events
	cfg.MaxTurns = s.maxTurns

	m, err := game.Simulate(cfg)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("match simulated",
		zap.String("match_id", m.ID),
		zap.Int("deck1", req.Deck1),
		zap.Int("deck2", req.Deck2),
		zap.Stringer("winner", m.Winner),
		zap.Int("turns", m.Turn),
	)
	return m, events.Events(), nil
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidDeck):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrDataIntegrity):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
