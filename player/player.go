package player

import (
	"context"
	"errors"
	"sync"

	"github.com/wfunc/triviaserver/logger"
	"github.com/wfunc/triviaserver/network"
	"github.com/wfunc/triviaserver/question"
)

// Player is a handle to a single remote player. It wraps the connection so
// that game code can talk to players without worrying about the envelope
// format or low-level transport errors: send failures are logged and
// swallowed here, and a dead connection simply yields no more answers.
//
// The completion signal fires exactly once per handle, when the player's
// game has ended (elimination, win, or abort). The accept layer blocks on
// Done() and only then tears the connection down.
type Player struct {
	ID   string
	conn network.Connection

	answers  chan string
	done     chan struct{}
	complete sync.Once
}

func New(id string, conn network.Connection) *Player {
	p := &Player{
		ID:      id,
		conn:    conn,
		answers: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go p.readLoop()
	return p
}

// readLoop pumps client responses into the answers channel. It exits, and
// closes the channel, on the first transport error, or silently once the
// player's game is over and nothing will consume answers anymore.
// Malformed frames and client-reported errors are skipped rather than
// treated as fatal.
func (p *Player) readLoop() {
	for {
		resp, err := p.conn.ReadResponse()
		if err != nil {
			if errors.Is(err, network.ErrMalformedResponse) {
				logger.Log.Warnf("Player %s sent a malformed frame, ignoring", p.ID)
				continue
			}
			logger.Log.Warnf("Connection closed while waiting for recv() from player %s: %v", p.ID, err)
			close(p.answers)
			return
		}

		if resp.Error != nil {
			logger.Log.Warnf("Player %s replied with error %q, ignoring", p.ID, *resp.Error)
			continue
		}

		select {
		case p.answers <- resp.Result:
		case <-p.done:
			return
		}
	}
}

// SendQuestion transmits the question with the correct answer stripped out.
func (p *Player) SendQuestion(q *question.Question) {
	params := map[string]interface{}{
		"question": q.Prompt,
		"choices":  q.Choices,
	}
	p.send(network.MethodAskQuestion, params)
}

// SendResults transmits the full question, including the correct answer,
// along with the per-choice answer counts for the round.
func (p *Player) SendResults(q *question.Question, counts map[string]int) {
	params := map[string]interface{}{
		"question": q,
		"tally":    counts,
	}
	p.send(network.MethodAnswers, params)
}

func (p *Player) SendAnnouncement(text string) {
	p.send(network.MethodAnnouncement, map[string]string{"message": text})
}

func (p *Player) send(method string, params interface{}) {
	if err := p.conn.WriteRequest(method, params); err != nil {
		logger.Log.Warnf("Connection closed while trying to send() to player %s: %v", p.ID, err)
	}
}

// RecvAnswer blocks until the player submits an answer or ctx expires.
// Returns ok=false on timeout or transport closure; the wait is abandoned,
// the connection is not closed.
func (p *Player) RecvAnswer(ctx context.Context) (string, bool) {
	select {
	case answer, ok := <-p.answers:
		if !ok {
			return "", false
		}
		return answer, true
	case <-ctx.Done():
		return "", false
	}
}

// SignalComplete marks the player's game as over. Safe to call at most once
// per handle by contract; the sync.Once guard makes a stray second call a
// no-op instead of a panic.
func (p *Player) SignalComplete() {
	p.complete.Do(func() {
		close(p.done)
	})
}

// Done is closed once SignalComplete has been called.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

func (p *Player) Close() error {
	return p.conn.Close()
}
