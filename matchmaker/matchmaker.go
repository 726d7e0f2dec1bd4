package matchmaker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/wfunc/triviaserver/game"
	"github.com/wfunc/triviaserver/logger"
	"github.com/wfunc/triviaserver/player"
)

// Monitor is the subset of monitoring the matchmaker drives. Implemented
// by monitor.Monitor; defined here so tests can observe metric updates.
type Monitor interface {
	SetWaitingPlayers(count int)
	SessionStarted()
	SessionEnded(aborted bool)
}

// Matchmaker buffers connected players until a quorum is reached, then
// drains exactly one quorum of them, oldest first, into a freshly numbered
// game session. The waiting queue and the session counter are the only
// state shared between connection handlers; both are guarded by one mutex
// so racing Offer calls cannot start a session twice for the same batch.
type Matchmaker struct {
	mu      sync.Mutex
	waiting []*player.Player
	nextID  int64

	quorum  int
	engine  *game.Engine
	monitor Monitor

	// wg tracks in-flight session run loops so shutdown, and tests, can
	// wait for them; the spawned goroutine logs each session's terminal
	// failure.
	wg              sync.WaitGroup
	sessionsStarted atomic.Int64
	sessionsAborted atomic.Int64
}

func New(quorum int, engine *game.Engine, mon Monitor) *Matchmaker {
	return &Matchmaker{
		quorum:  quorum,
		engine:  engine,
		monitor: mon,
	}
}

// Offer adds a player to the waiting queue. If that completes a quorum, the
// batch is drained and a new session is spawned; otherwise the player is
// told how many more are needed. Draining and the quorum check are a single
// step under the queue mutex.
func (m *Matchmaker) Offer(p *player.Player) {
	m.mu.Lock()
	m.waiting = append(m.waiting, p)

	if len(m.waiting) < m.quorum {
		remaining := m.quorum - len(m.waiting)
		// Gauge updates happen under the queue mutex so racing Offers
		// cannot publish them out of order.
		if m.monitor != nil {
			m.monitor.SetWaitingPlayers(len(m.waiting))
		}
		m.mu.Unlock()

		p.SendAnnouncement(game.WaitingMessage(remaining))
		return
	}

	batch := make([]game.Contestant, m.quorum)
	for i, waiting := range m.waiting[:m.quorum] {
		batch[i] = waiting
	}
	rest := make([]*player.Player, len(m.waiting)-m.quorum)
	copy(rest, m.waiting[m.quorum:])
	m.waiting = rest

	if m.monitor != nil {
		m.monitor.SetWaitingPlayers(len(rest))
	}
	m.nextID++
	id := m.nextID
	m.mu.Unlock()

	m.spawn(game.NewSession(id, batch, m.engine))
}

func (m *Matchmaker) spawn(sess *game.Session) {
	logger.Log.Infof("Starting game session %d", sess.ID)
	m.sessionsStarted.Add(1)
	if m.monitor != nil {
		m.monitor.SessionStarted()
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		err := sess.Run(context.Background())
		if err != nil {
			m.sessionsAborted.Add(1)
			logger.Log.Errorf("Error encountered in game session %d. Aborting game. (%v)", sess.ID, err)
		} else {
			logger.Log.Infof("Game session %d finished after %d round(s)", sess.ID, sess.Round())
		}
		if m.monitor != nil {
			m.monitor.SessionEnded(err != nil)
		}
	}()
}

// Wait blocks until every spawned session run loop has returned.
func (m *Matchmaker) Wait() {
	m.wg.Wait()
}

// Stats is a point-in-time snapshot of matchmaker activity.
type Stats struct {
	WaitingPlayers  int
	SessionsStarted int64
	SessionsAborted int64
}

func (m *Matchmaker) Stats() Stats {
	m.mu.Lock()
	waiting := len(m.waiting)
	m.mu.Unlock()

	return Stats{
		WaitingPlayers:  waiting,
		SessionsStarted: m.sessionsStarted.Load(),
		SessionsAborted: m.sessionsAborted.Load(),
	}
}
