package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atinyakov/shortlink-registry/internal/storage"
	"github.com/atinyakov/shortlink-registry/internal/worker"
)

type MockRepo struct {
	mu     sync.Mutex
	Calls  [][]storage.ClickEvent
	FailOn int
	Known  map[string]bool
}

func (m *MockRepo) AppendClicks(_ context.Context, events []storage.ClickEvent) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]storage.ClickEvent, len(events))
	copy(cp, events)
	m.Calls = append(m.Calls, cp)

	if len(m.Calls) == m.FailOn {
		return 0, errors.New("forced failure")
	}

	stored := 0
	for _, e := range events {
		if m.Known == nil || m.Known[e.LinkID] {
			stored++
		}
	}
	return stored, nil
}

func (m *MockRepo) calls() [][]storage.ClickEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

func (m *MockRepo) total() int {
	n := 0
	for _, c := range m.calls() {
		n += len(c)
	}
	return n
}

func click(i int) storage.ClickEvent {
	return storage.ClickEvent{ID: fmt.Sprintf("c%d", i), LinkID: "l1"}
}

func TestClickWorker_BatchTrigger(t *testing.T) {
	repo := &MockRepo{}
	w := worker.NewClickWorker(zap.NewNop(), repo, worker.ClickConfig{BatchSize: 5, FlushInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 5; i++ {
		w.Dispatch(click(i))
	}

	require.Eventually(t, func() bool { return len(repo.calls()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Len(t, repo.calls()[0], 5)
}

func TestClickWorker_TimerTrigger(t *testing.T) {
	repo := &MockRepo{}
	w := worker.NewClickWorker(zap.NewNop(), repo, worker.ClickConfig{BatchSize: 100, FlushInterval: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Dispatch(click(1))
	w.Dispatch(click(2))

	require.Eventually(t, func() bool { return repo.total() == 2 }, time.Second, 10*time.Millisecond)
}

func TestClickWorker_DrainsOnStop(t *testing.T) {
	repo := &MockRepo{}
	w := worker.NewClickWorker(zap.NewNop(), repo, worker.ClickConfig{BatchSize: 100, FlushInterval: time.Hour})

	for i := 0; i < 10; i++ {
		w.Dispatch(click(i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	assert.Equal(t, 10, repo.total())

	// nothing is accepted once stopped
	w.Dispatch(click(11))
	assert.Equal(t, 10, repo.total())
}

func TestClickWorker_FullQueueDropsAfterTimeout(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &MockRepo{}
	w := worker.NewClickWorker(zap.New(core), repo, worker.ClickConfig{Buffer: 1, EnqueueTimeout: 20 * time.Millisecond})

	// no Run: the single slot fills and the next event times out
	start := time.Now()
	w.Dispatch(click(1))
	w.Dispatch(click(2))
	assert.Less(t, time.Since(start), 20*time.Millisecond, "dispatch must not block")

	require.Eventually(t, func() bool {
		return logs.FilterMessage("click dropped, queue full").Len() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestClickWorker_VanishedLinksAndErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &MockRepo{FailOn: 1, Known: map[string]bool{"l1": true}}
	w := worker.NewClickWorker(zap.New(core), repo, worker.ClickConfig{BatchSize: 2, FlushInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// first batch fails and is discarded
	w.Dispatch(click(1))
	w.Dispatch(click(2))
	require.Eventually(t, func() bool { return len(repo.calls()) == 1 }, time.Second, 5*time.Millisecond)

	w.Dispatch(storage.ClickEvent{ID: "c3", LinkID: "l1"})
	w.Dispatch(storage.ClickEvent{ID: "c4", LinkID: "gone"})
	require.Eventually(t, func() bool {
		return logs.FilterMessage("clicks for vanished links dropped").Len() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, logs.FilterMessage("cannot store clicks").Len())
}

type expiryRepo struct {
	mu    sync.Mutex
	times []time.Time
	n     int
	err   error
}

func (r *expiryRepo) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.times = append(r.times, now)
	return r.n, r.err
}

func (r *expiryRepo) runs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.times)
}

func TestReaper(t *testing.T) {
	repo := &expiryRepo{n: 3}
	r := worker.NewReaper(zap.NewNop(), repo, 10*time.Millisecond)

	n, err := r.ReapOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)
	require.Eventually(t, func() bool { return repo.runs() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	repo.mu.Lock()
	repo.err = errors.New("db down")
	repo.mu.Unlock()
	_, err = r.ReapOnce(context.Background())
	assert.Error(t, err)
}

func TestReaper_Disabled(t *testing.T) {
	repo := &expiryRepo{}
	r := worker.NewReaper(zap.NewNop(), repo, 0)

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled reaper should return at once")
	}
	assert.Equal(t, 0, repo.runs())
}
