package game

import (
	"context"

	"github.com/wfunc/triviaserver/question"
)

// Contestant is the minimal view of a connected player that the game logic
// needs. This is defined here so the game package can be tested without a
// real connection; player.Player implements it.
//
// Send methods never fail from the game's point of view: transport errors
// are absorbed by the implementation, and a player that cannot receive a
// question simply times out like everyone else.
type Contestant interface {
	SendQuestion(q *question.Question)
	SendResults(q *question.Question, counts map[string]int)
	SendAnnouncement(text string)
	RecvAnswer(ctx context.Context) (string, bool)
	SignalComplete()
}

// QuestionProvider supplies one question per round. Fetch failures are
// fatal to the calling session; retries, if any, live behind this interface.
type QuestionProvider interface {
	Fetch(ctx context.Context) (*question.Question, error)
}
