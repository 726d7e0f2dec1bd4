package monitor

import (
	"context"
	"time"

	"github.com/wfunc/triviaserver/game"
	"github.com/wfunc/triviaserver/question"
)

// InstrumentedProvider wraps a question provider with fetch latency and
// error metrics. The game engine stays unaware of instrumentation.
type InstrumentedProvider struct {
	next    game.QuestionProvider
	monitor *Monitor
}

func NewInstrumentedProvider(next game.QuestionProvider, monitor *Monitor) *InstrumentedProvider {
	return &InstrumentedProvider{next: next, monitor: monitor}
}

func (p *InstrumentedProvider) Fetch(ctx context.Context) (*question.Question, error) {
	start := time.Now()
	q, err := p.next.Fetch(ctx)
	p.monitor.ObserveQuestionFetch(time.Since(start), err)
	return q, err
}
