package app

import (
	"context"
	"image"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"allow-clicker/internal/domain/entity"
)

// slowRecognizer держит распознавание до release или отмены ctx
type slowRecognizer struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newSlowRecognizer() *slowRecognizer {
	return &slowRecognizer{started: make(chan struct{}), release: make(chan struct{})}
}

func (r *slowRecognizer) Recognize(ctx context.Context, img image.Image) (entity.Recognition, error) {
	r.once.Do(func() { close(r.started) })
	select {
	case <-ctx.Done():
		return entity.Recognition{}, ctx.Err()
	case <-r.release:
		return entity.Recognition{Text: "Allow", Confidence: 0.9, Scored: true}, nil
	}
}

func (r *slowRecognizer) Name() string { return "slow" }

func TestStopOnSignal_FinishesCycleInFlight(t *testing.T) {
	rec := newSlowRecognizer()
	f := newMonitorFixture(t, rec, fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 2)
	go f.monitor.StopOnSignal(ctx, signals, cancel)

	done := make(chan error, 1)
	go func() { done <- f.monitor.Run(ctx) }()

	<-rec.started
	signals <- os.Interrupt
	require.Eventually(t, f.monitor.stopping.Load, time.Second, time.Millisecond)
	close(rec.release)

	require.NoError(t, <-done)
	require.NoError(t, ctx.Err())
	require.Equal(t, 1, f.capturer.Calls())
	require.Equal(t, []image.Point{image.Pt(125, 212)}, f.clicker.Points())
	require.Equal(t, entity.StateStopped, f.monitor.State())
}

func TestStopOnSignal_SecondSignalAborts(t *testing.T) {
	rec := newSlowRecognizer()
	f := newMonitorFixture(t, rec, fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 2)
	go f.monitor.StopOnSignal(ctx, signals, cancel)

	done := make(chan error, 1)
	go func() { done <- f.monitor.Run(ctx) }()

	<-rec.started
	signals <- os.Interrupt
	signals <- syscall.SIGTERM

	require.NoError(t, <-done)
	require.ErrorIs(t, ctx.Err(), context.Canceled)
	require.Empty(t, f.clicker.Points())
	require.Equal(t, 1, f.capturer.Calls())
}

func TestStopOnSignal_ReturnsOnContextDone(t *testing.T) {
	f := newMonitorFixture(t, allowRecognizer(), fastConfig())
	ctx, cancel := context.WithCancel(context.Background())

	returned := make(chan struct{})
	go func() {
		f.monitor.StopOnSignal(ctx, make(chan os.Signal), func() {})
		close(returned)
	}()

	cancel()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("StopOnSignal did not return after cancel")
	}
	require.False(t, f.monitor.stopping.Load())
}
