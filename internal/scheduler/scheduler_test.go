package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEmitsMetaFirst(t *testing.T) {
	ctx := context.Background()
	tasks := []Task[string]{
		{Label: "a", Run: func(ctx context.Context) (string, error) { return "A", nil }},
		{Label: "b", Run: func(ctx context.Context) (string, error) { return "B", nil }},
	}

	events := Run(ctx, tasks)
	first := <-events
	require.NotNil(t, first.Meta, "expected first event to carry Meta")
	assert.Equal(t, 2, first.Meta.Total)
}

func TestRunIsolatesPerTaskErrors(t *testing.T) {
	ctx := context.Background()
	tasks := []Task[string]{
		{Label: "ok", Run: func(ctx context.Context) (string, error) { return "fine", nil }},
		{Label: "bad", Run: func(ctx context.Context) (string, error) { return "", errors.New("boom") }},
	}

	_, results := Collect(Run(ctx, tasks))
	require.Len(t, results, 2, "expected 2 results despite one failing task")

	var sawOK, sawErr bool
	for _, r := range results {
		if r.Label == "ok" && r.Err == nil {
			sawOK = true
		}
		if r.Label == "bad" && r.Err != nil {
			sawErr = true
		}
	}
	assert.True(t, sawOK, "expected the ok task's result to be isolated from the bad task's failure")
	assert.True(t, sawErr, "expected the bad task's error to be isolated from the ok task's success")
}

func TestRunRecoversPanickingTask(t *testing.T) {
	ctx := context.Background()
	tasks := []Task[string]{
		{Label: "panics", Run: func(ctx context.Context) (string, error) { panic("unexpected") }},
	}

	_, results := Collect(Run(ctx, tasks))
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err, "expected panicking task to surface as an error result")
}

func TestRunStopsEmittingAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	slow := make(chan struct{})
	tasks := []Task[string]{
		{Label: "slow", Run: func(ctx context.Context) (string, error) {
			<-slow
			return "late", nil
		}},
	}

	events := Run(ctx, tasks)
	<-events // meta
	cancel()

	select {
	case ev, ok := <-events:
		assert.False(t, ok, "expected no further events after cancellation, got %+v", ev)
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close promptly after cancellation")
	}
	close(slow)
}

func TestCollectOrdersResultsByOriginalLabelOrder(t *testing.T) {
	ctx := context.Background()
	fast := make(chan struct{})
	tasks := []Task[string]{
		{Label: "first", Run: func(ctx context.Context) (string, error) {
			<-fast
			return "first-value", nil
		}},
		{Label: "second", Run: func(ctx context.Context) (string, error) { return "second-value", nil }},
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		close(fast)
	}()

	_, results := Collect(Run(ctx, tasks))
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Label)
	assert.Equal(t, "second", results[1].Label)
}
