package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_StartStop(t *testing.T) {
	var runs atomic.Int64
	task := NewTask(10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return errors.New("logged only")
	}, nil)

	assert.False(t, task.Running())
	task.Start(context.Background())
	task.Start(context.Background())
	assert.True(t, task.Running())

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	task.Stop()
	assert.False(t, task.Running())
	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load(), "no run after Stop")

	task.Stop()
}

func TestTask_RunsImmediately(t *testing.T) {
	ran := make(chan struct{}, 1)
	task := NewTask(time.Hour, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}, nil)
	task.Start(context.Background())
	defer task.Stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("first run did not happen on Start")
	}
}

func TestTask_StopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int64
	task := NewTask(5*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	}, nil)
	task.Start(ctx)
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, time.Second, time.Millisecond)
	cancel()
	task.Stop()
	assert.False(t, task.Running())
}

func TestNewTask_NonPositiveInterval(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		task := NewTask(d, func(context.Context) error { return nil }, nil)
		assert.Equal(t, DefaultInterval, task.interval)

		assert.NotPanics(t, func() {
			task.Start(context.Background())
			task.Stop()
		})
	}
}
