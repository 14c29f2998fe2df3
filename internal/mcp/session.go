package mcp

import (
	"sync"

	"github.com/peterkuimelis/autobattler/internal/game"
	"github.com/peterkuimelis/autobattler/internal/view"
)

// Session remembers the matches simulated by one stdio process so the last
// one can be fetched again without rerunning it.
type Session struct {
	mu      sync.Mutex
	last    *game.MatchState
	matches int
}

func (s *Session) record(m *game.MatchState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = m
	s.matches++
}

// Last returns a view of the most recent match, or nil if none ran yet.
func (s *Session) Last() *view.MatchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	return view.BuildMatchView(s.last)
}

// Matches returns how many matches this session has simulated.
func (s *Session) Matches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches
}
