package game

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/wfunc/triviaserver/logger"
	"github.com/wfunc/triviaserver/question"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	os.Exit(m.Run())
}

// fakeContestant is a test double for the Contestant interface. Each call
// to RecvAnswer pops the next scripted answer; once the script is
// exhausted the contestant blocks until the deadline, like a player who
// never responds.
type fakeContestant struct {
	id      string
	answers []string

	mu            sync.Mutex
	next          int
	announcements []string
	questions     []*question.Question
	results       []map[string]int
	completions   int
}

func newFakeContestant(id string, answers ...string) *fakeContestant {
	return &fakeContestant{id: id, answers: answers}
}

func (f *fakeContestant) SendQuestion(q *question.Question) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions = append(f.questions, q)
}

func (f *fakeContestant) SendResults(q *question.Question, counts map[string]int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, counts)
}

func (f *fakeContestant) SendAnnouncement(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.announcements = append(f.announcements, text)
}

func (f *fakeContestant) RecvAnswer(ctx context.Context) (string, bool) {
	f.mu.Lock()
	if f.next < len(f.answers) {
		answer := f.answers[f.next]
		f.next++
		f.mu.Unlock()
		return answer, true
	}
	f.mu.Unlock()

	<-ctx.Done()
	return "", false
}

func (f *fakeContestant) SignalComplete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completions++
}

func (f *fakeContestant) completed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completions
}

func (f *fakeContestant) lastAnnouncement() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.announcements) == 0 {
		return ""
	}
	return f.announcements[len(f.announcements)-1]
}

// stubProvider returns scripted questions, one per Fetch call. A nil entry
// makes that call fail.
type stubProvider struct {
	mu        sync.Mutex
	questions []*question.Question
	calls     int
}

var errProviderDown = errors.New("question API unreachable")

func (p *stubProvider) Fetch(ctx context.Context) (*question.Question, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.calls >= len(p.questions) || p.questions[p.calls] == nil {
		p.calls++
		return nil, errProviderDown
	}
	q := p.questions[p.calls]
	p.calls++
	return q, nil
}

func (p *stubProvider) fetchCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func testQuestion() *question.Question {
	return &question.Question{
		Prompt:  "Question 1",
		Choices: []string{"A", "B", "C", "D"},
		Answer:  "C",
	}
}
