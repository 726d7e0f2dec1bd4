package game

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/wfunc/triviaserver/question"
)

const testRoundDuration = 50 * time.Millisecond

func TestExecuteRound_PartitionsSurvivorsAndEliminated(t *testing.T) {
	provider := &stubProvider{questions: []*question.Question{testQuestion()}}
	engine := NewEngine(provider, testRoundDuration)

	right := newFakeContestant("right", "C")
	wrong := newFakeContestant("wrong", "D")

	result, err := engine.ExecuteRound(context.Background(), 1, []Contestant{right, wrong})
	if err != nil {
		t.Fatalf("ExecuteRound returned error: %v", err)
	}

	if len(result.Survivors) != 1 || result.Survivors[0] != Contestant(right) {
		t.Errorf("Expected exactly the correct answerer to survive, got %d survivor(s)", len(result.Survivors))
	}
	if len(result.Eliminated) != 1 || result.Eliminated[0] != Contestant(wrong) {
		t.Errorf("Expected exactly the wrong answerer to be eliminated, got %d eliminated", len(result.Eliminated))
	}
	if len(result.Survivors)+len(result.Eliminated) != 2 {
		t.Errorf("Survivors + eliminated must equal player count, got %d", len(result.Survivors)+len(result.Eliminated))
	}

	expected := Tally{"A": 0, "B": 0, "C": 1, "D": 1, NoAnswerKey: 0}
	if !reflect.DeepEqual(result.Tally, expected) {
		t.Errorf("Expected tally %v, got %v", expected, result.Tally)
	}
	if result.Tally.Total() != 2 {
		t.Errorf("Tally total must equal player count, got %d", result.Tally.Total())
	}

	// The round engine never signals completion.
	if right.completed() != 0 || wrong.completed() != 0 {
		t.Error("ExecuteRound must not call SignalComplete")
	}
}

func TestExecuteRound_QuestionSentToAllPlayersWithoutAnswer(t *testing.T) {
	q := testQuestion()
	provider := &stubProvider{questions: []*question.Question{q}}
	engine := NewEngine(provider, testRoundDuration)

	players := []Contestant{
		newFakeContestant("p1", "C"),
		newFakeContestant("p2", "A"),
	}

	if _, err := engine.ExecuteRound(context.Background(), 1, players); err != nil {
		t.Fatalf("ExecuteRound returned error: %v", err)
	}

	for _, p := range players {
		f := p.(*fakeContestant)
		if len(f.questions) != 1 || f.questions[0] != q {
			t.Errorf("Player %s did not receive the question exactly once", f.id)
		}
		// Results go to all original players, eliminated included.
		if len(f.results) != 1 {
			t.Errorf("Player %s did not receive the round results", f.id)
		}
	}
}

func TestExecuteRound_TimeoutTreatedAsWrongAnswer(t *testing.T) {
	provider := &stubProvider{questions: []*question.Question{testQuestion()}}
	engine := NewEngine(provider, testRoundDuration)

	answering := newFakeContestant("answering", "C")
	silent := newFakeContestant("silent") // no scripted answers, blocks until deadline

	start := time.Now()
	result, err := engine.ExecuteRound(context.Background(), 1, []Contestant{answering, silent})
	if err != nil {
		t.Fatalf("ExecuteRound returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 10*testRoundDuration {
		t.Errorf("Round took %v, deadline did not bound the silent player's wait", elapsed)
	}

	if len(result.Eliminated) != 1 || result.Eliminated[0] != Contestant(silent) {
		t.Error("Timed-out player must be eliminated like a wrong answerer")
	}
	if result.Tally[NoAnswerKey] != 1 {
		t.Errorf("Expected 1 entry in the no-answer bucket, got %d", result.Tally[NoAnswerKey])
	}
	if result.Tally.Total() != 2 {
		t.Errorf("Tally total must include the absent answer, got %d", result.Tally.Total())
	}
	if silent.lastAnnouncement() != MessageYouAreEliminated {
		t.Errorf("Silent player's last announcement was %q", silent.lastAnnouncement())
	}
}

func TestExecuteRound_InvalidAnswerCountsAsNoAnswer(t *testing.T) {
	provider := &stubProvider{questions: []*question.Question{testQuestion()}}
	engine := NewEngine(provider, testRoundDuration)

	invalid := newFakeContestant("invalid", "not a choice")

	result, err := engine.ExecuteRound(context.Background(), 1, []Contestant{invalid})
	if err != nil {
		t.Fatalf("ExecuteRound returned error: %v", err)
	}

	if result.Tally[NoAnswerKey] != 1 {
		t.Errorf("Non-choice answer must land in the no-answer bucket, tally: %v", result.Tally)
	}
	if len(result.Eliminated) != 1 {
		t.Error("Non-choice answer must eliminate the player")
	}
}

func TestExecuteRound_ZeroPlayers(t *testing.T) {
	provider := &stubProvider{}
	engine := NewEngine(provider, testRoundDuration)

	result, err := engine.ExecuteRound(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("ExecuteRound with zero players returned error: %v", err)
	}
	if len(result.Survivors) != 0 || len(result.Eliminated) != 0 {
		t.Error("Zero players must yield empty partitions")
	}
	if provider.fetchCount() != 0 {
		t.Error("Zero players must not contact the question provider")
	}
}

func TestExecuteRound_SinglePlayerStillExecutes(t *testing.T) {
	provider := &stubProvider{questions: []*question.Question{testQuestion()}}
	engine := NewEngine(provider, testRoundDuration)

	only := newFakeContestant("only", "C")

	result, err := engine.ExecuteRound(context.Background(), 1, []Contestant{only})
	if err != nil {
		t.Fatalf("ExecuteRound returned error: %v", err)
	}
	if provider.fetchCount() != 1 {
		t.Error("Single-player round must still fetch a question")
	}
	if len(result.Survivors) != 1 {
		t.Error("Single correct player must survive; termination is the session's call")
	}
}

func TestExecuteRound_ProviderFailurePropagates(t *testing.T) {
	provider := &stubProvider{} // fails on first fetch
	engine := NewEngine(provider, testRoundDuration)

	p := newFakeContestant("p", "C")

	_, err := engine.ExecuteRound(context.Background(), 1, []Contestant{p})
	if err == nil {
		t.Fatal("Provider failure must propagate to the caller")
	}
	if !errors.Is(err, errProviderDown) {
		t.Errorf("Expected wrapped provider error, got %v", err)
	}
	if p.completed() != 0 {
		t.Error("ExecuteRound must not signal completion on failure")
	}
}

func TestExecuteRound_Deterministic(t *testing.T) {
	run := func() (*RoundResult, error) {
		provider := &stubProvider{questions: []*question.Question{testQuestion()}}
		engine := NewEngine(provider, testRoundDuration)
		players := []Contestant{
			newFakeContestant("p1", "C"),
			newFakeContestant("p2", "A"),
			newFakeContestant("p3", "C"),
		}
		return engine.ExecuteRound(context.Background(), 1, players)
	}

	first, err := run()
	if err != nil {
		t.Fatalf("First run returned error: %v", err)
	}
	second, err := run()
	if err != nil {
		t.Fatalf("Second run returned error: %v", err)
	}

	if !reflect.DeepEqual(first.Tally, second.Tally) {
		t.Errorf("Same answers and question must produce the same tally: %v vs %v", first.Tally, second.Tally)
	}
	if len(first.Survivors) != len(second.Survivors) || len(first.Eliminated) != len(second.Eliminated) {
		t.Error("Same answers and question must produce the same partition sizes")
	}
}
