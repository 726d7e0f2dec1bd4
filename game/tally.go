package game

import (
	"slices"

	"github.com/wfunc/triviaserver/question"
)

// NoAnswerKey is the tally bucket for players whose answer was missing,
// timed out, or did not match any valid choice.
const NoAnswerKey = "no_answer"

// Tally counts, per choice, how many players submitted that exact string.
// Every player contributes exactly one entry, so the total always equals
// the number of players at the start of the round.
type Tally map[string]int

func NewTally(q *question.Question) Tally {
	t := make(Tally, len(q.Choices)+1)
	for _, choice := range q.Choices {
		t[choice] = 0
	}
	t[NoAnswerKey] = 0
	return t
}

// record files one player's answer. Only exact matches against the valid
// choices count toward a choice bucket; everything else is a no-answer.
func (t Tally) record(choices []string, answer string, answered bool) {
	if answered && slices.Contains(choices, answer) {
		t[answer]++
		return
	}
	t[NoAnswerKey]++
}

// Total returns the number of answers recorded across all buckets.
func (t Tally) Total() int {
	total := 0
	for _, count := range t {
		total += count
	}
	return total
}
