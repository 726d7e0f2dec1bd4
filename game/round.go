package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wfunc/triviaserver/question"
)

// Engine executes single game rounds. It never mutates session state and
// never calls completion signals; partitioning players is its whole job,
// which keeps it a pure function of the players' answers and the fetched
// question.
type Engine struct {
	provider      QuestionProvider
	roundDuration time.Duration
}

func NewEngine(provider QuestionProvider, roundDuration time.Duration) *Engine {
	return &Engine{
		provider:      provider,
		roundDuration: roundDuration,
	}
}

// RoundResult is the outcome of one executed round.
// len(Survivors) + len(Eliminated) always equals the number of players the
// round started with.
type RoundResult struct {
	Survivors  []Contestant
	Eliminated []Contestant
	Tally      Tally
	Question   *question.Question
}

// ExecuteRound runs one question-answer-eliminate cycle for the given
// players. Per player, it sends the round announcement and the question,
// then waits for an answer bounded by the round duration; each player's
// interaction is independent, so one dead or slow connection never delays
// the others. Tallying and the result broadcast happen strictly after
// every player's wait has resolved.
//
// A question fetch failure is returned to the caller; everything that can
// go wrong with an individual player is treated as a missing answer.
func (e *Engine) ExecuteRound(ctx context.Context, round int, players []Contestant) (*RoundResult, error) {
	if len(players) == 0 {
		return &RoundResult{Tally: Tally{}}, nil
	}

	q, err := e.provider.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch question for round %d: %w", round, err)
	}

	answers := make([]string, len(players))
	answered := make([]bool, len(players))

	var gather sync.WaitGroup
	for i, p := range players {
		gather.Add(1)
		go func(i int, c Contestant) {
			defer gather.Done()

			c.SendAnnouncement(RoundStartingMessage(round))
			c.SendQuestion(q)

			waitCtx, cancel := context.WithTimeout(ctx, e.roundDuration)
			defer cancel()
			answers[i], answered[i] = c.RecvAnswer(waitCtx)
		}(i, p)
	}
	gather.Wait()

	tally := NewTally(q)
	survived := make([]bool, len(players))

	result := &RoundResult{
		Tally:    tally,
		Question: q,
	}
	for i, p := range players {
		tally.record(q.Choices, answers[i], answered[i])
		if answered[i] && answers[i] == q.Answer {
			survived[i] = true
			result.Survivors = append(result.Survivors, p)
		} else {
			result.Eliminated = append(result.Eliminated, p)
		}
	}

	// All original players, eliminated included, get the tally and the full
	// question so they can learn the correct answer; then each gets their
	// own verdict.
	var broadcast sync.WaitGroup
	for i, p := range players {
		broadcast.Add(1)
		go func(c Contestant, survived bool) {
			defer broadcast.Done()

			c.SendResults(q, tally)
			if survived {
				c.SendAnnouncement(MessageCorrectMovingToNextRound)
			} else {
				c.SendAnnouncement(MessageYouAreEliminated)
			}
		}(p, survived[i])
	}
	broadcast.Wait()

	return result, nil
}
