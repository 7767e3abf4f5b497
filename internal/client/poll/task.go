package poll

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task runs fn every interval in its own goroutine, from Start until Stop.
// It is meant to live as long as the view that shows the polled data.
type Task struct {
	interval time.Duration
	fn       func(ctx context.Context) error
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// DefaultInterval replaces a non-positive interval passed to NewTask.
const DefaultInterval = 30 * time.Second

func NewTask(interval time.Duration, fn func(ctx context.Context) error, logger *zap.Logger) *Task {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		logger.Warn("poll interval must be positive, using default",
			zap.Duration("interval", interval), zap.Duration("default", DefaultInterval))
		interval = DefaultInterval
	}
	return &Task{interval: interval, fn: fn, logger: logger}
}

// Start runs fn once immediately and then on every tick. Calling Start on a
// running task does nothing.
func (t *Task) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.running = true
	go t.loop(ctx, t.done)
}

func (t *Task) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.run(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.run(ctx)
		}
	}
}

func (t *Task) run(ctx context.Context) {
	if err := t.fn(ctx); err != nil && ctx.Err() == nil {
		t.logger.Warn("poll failed", zap.Error(err))
	}
}

// Stop cancels the task and waits for the in-flight run to return.
func (t *Task) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	cancel, done := t.cancel, t.done
	t.running = false
	t.mu.Unlock()

	cancel()
	<-done
}

func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
