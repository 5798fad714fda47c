package ingest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

type recordingRunner struct {
	mu   sync.Mutex
	runs []string
	done chan struct{}
}

func (r *recordingRunner) Run(_ context.Context, src Source) Report {
	r.mu.Lock()
	r.runs = append(r.runs, src.Name)
	r.mu.Unlock()
	if r.done != nil {
		r.done <- struct{}{}
	}
	return Report{Source: src.Name, Status: "success"}
}

func (r *recordingRunner) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.runs...)
}

func TestScheduler_RunAllInOrder(t *testing.T) {
	runner := &recordingRunner{}
	s := NewScheduler(Config{Sources: []Source{{Name: "a"}, {Name: "b"}}}, runner, nil, nil)

	reports := s.RunAll(context.Background())

	require.Len(t, reports, 2)
	assert.Equal(t, []string{"a", "b"}, runner.names())
}

func TestScheduler_Enabled(t *testing.T) {
	assert.False(t, NewScheduler(Config{OnStartup: true}, nil, nil, nil).Enabled())
	assert.False(t, NewScheduler(Config{Sources: []Source{{Name: "a"}}}, nil, nil, nil).Enabled())
	assert.True(t, NewScheduler(Config{Sources: []Source{{Name: "a"}}, Interval: time.Hour}, nil, nil, nil).Enabled())
}

func TestScheduler_RunsOnStartupAndOnInterval(t *testing.T) {
	runner := &recordingRunner{done: make(chan struct{}, 8)}
	s := NewScheduler(Config{
		Sources:   []Source{{Name: "acme"}},
		OnStartup: true,
		Interval:  10 * time.Millisecond,
	}, runner, nil, nil)

	s.Start(context.Background())
	for i := 0; i < 2; i++ {
		select {
		case <-runner.done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not run")
		}
	}
	s.Stop()

	assert.GreaterOrEqual(t, len(runner.names()), 2)
}

func TestRegisterSchedulerLifecycle_DisabledWithoutSources(t *testing.T) {
	runner := &recordingRunner{}
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return Config{OnStartup: true} },
			func() Runner { return runner },
			func() logger.Logger { return logger.NewNop() },
			NewSchedulerWithDI,
		),
		fx.Invoke(RegisterSchedulerLifecycle),
	)
	app.RequireStart()
	app.RequireStop()

	assert.Empty(t, runner.names())
}
