package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/wfunc/triviaserver/logger"
)

// State is the session controller's lifecycle state. Complete and Aborted
// are terminal.
type State int

const (
	StateRunning State = iota
	StateComplete
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Session drives one complete game from quorum to a winner or full
// elimination. The player set is owned exclusively by the session for its
// whole lifetime; nothing else mutates it.
//
// Invariant: every contestant that enters a session has SignalComplete
// called on it exactly once, on every exit path. A contestant that is never
// signaled leaves its connection handler blocked forever.
type Session struct {
	ID      int64
	engine  *Engine
	players []Contestant
	round   int

	state      State
	stateMutex sync.RWMutex
}

func NewSession(id int64, players []Contestant, engine *Engine) *Session {
	return &Session{
		ID:      id,
		engine:  engine,
		players: players,
		state:   StateRunning,
	}
}

// Run executes rounds until the game produces a winner or nobody remains.
// On a round engine failure the session aborts: every remaining player is
// told about the outage and signaled complete, and the failure is returned
// to the caller so supervisory logging can observe it.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.round++
		logger.Log.Infof("Session %d executing round %d with %d player(s)", s.ID, s.round, len(s.players))

		result, err := s.engine.ExecuteRound(ctx, s.round, s.players)
		if err != nil {
			s.abort()
			return fmt.Errorf("game session %d failed in round %d: %w", s.ID, s.round, err)
		}

		for _, p := range result.Eliminated {
			p.SignalComplete()
		}
		s.players = result.Survivors

		switch len(s.players) {
		case 1:
			winner := s.players[0]
			winner.SendAnnouncement(MessageYouAreTheWinner)
			winner.SignalComplete()
			s.players = nil
			s.setState(StateComplete)
			logger.Log.Infof("Session %d complete after round %d with a winner", s.ID, s.round)
			return nil
		case 0:
			s.setState(StateComplete)
			logger.Log.Infof("Session %d complete after round %d with no survivors", s.ID, s.round)
			return nil
		}
	}
}

// abort tears the session down after a fatal round failure. Every player
// still in the game gets the network-error announcement and a completion
// signal.
func (s *Session) abort() {
	s.setState(StateAborted)
	for _, p := range s.players {
		p.SendAnnouncement(MessageNetworkErrorOccurred)
		p.SignalComplete()
	}
	s.players = nil
}

// Round returns the number of the most recently executed round.
func (s *Session) Round() int {
	return s.round
}

func (s *Session) State() State {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return s.state
}

func (s *Session) setState(state State) {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	s.state = state
}
