package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

var (
	// ErrCycleTimeout: проход цикла не уложился в отведённое время
	ErrCycleTimeout = errors.New("detection cycle timed out")
	// ErrTooManyCaptureFailures: снимок экрана не удаётся сделать несколько раз подряд
	ErrTooManyCaptureFailures = errors.New("too many consecutive capture failures")
	// ErrAlreadyStarted: монитор уже запускался; перезапуск невозможен
	ErrAlreadyStarted = errors.New("monitor already started")
)

// MonitorConfig параметры цикла
type MonitorConfig struct {
	PollInterval       time.Duration
	CycleTimeout       time.Duration
	MaxCaptureFailures int
	DryRun             bool // клики подавляются, события помечаются как dry_run
}

// Monitor гоняет цикл снимок -> поиск -> решение -> клик до остановки.
type Monitor struct {
	capturer port.ScreenCapturer
	pipeline *Pipeline
	gate     *Gate
	clicker  port.Clicker
	events   port.EventLog
	notifier port.ClickNotifier
	cfg      MonitorConfig
	logger   *slog.Logger
	runID    string
	now      func() time.Time

	mu    sync.Mutex
	state entity.RunState

	stopping atomic.Bool
	wake     chan struct{}
	stopOnce sync.Once

	seq             uint64
	captureFailures int
}

// MonitorDeps зависимости монитора; events и notifier необязательны
type MonitorDeps struct {
	Capturer port.ScreenCapturer
	Pipeline *Pipeline
	Gate     *Gate
	Clicker  port.Clicker
	Events   port.EventLog
	Notifier port.ClickNotifier
}

func NewMonitor(deps MonitorDeps, cfg MonitorConfig, runID string, logger *slog.Logger) *Monitor {
	return &Monitor{
		capturer: deps.Capturer,
		pipeline: deps.Pipeline,
		gate:     deps.Gate,
		clicker:  deps.Clicker,
		events:   deps.Events,
		notifier: deps.Notifier,
		cfg:      cfg,
		logger:   logger.With("run_id", runID),
		runID:    runID,
		now:      time.Now,
		state:    entity.StateIdle,
		wake:     make(chan struct{}),
	}
}

// State возвращает текущее состояние цикла
func (m *Monitor) State() entity.RunState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Stop просит цикл остановиться. Текущий проход доводится до конца, новый не начинается.
// Безопасно вызывать из любой горутины и несколько раз.
func (m *Monitor) Stop() {
	m.stopping.Store(true)
	m.stopOnce.Do(func() { close(m.wake) })
}

// Run крутит цикл до Stop, отмены ctx или фатальной ошибки.
// Остановка пользователем возвращает nil.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.transition(entity.StateMonitoring); err != nil {
		return err
	}
	defer m.transition(entity.StateStopped)

	m.logger.Info("monitoring started",
		"poll_interval", m.cfg.PollInterval,
		"cooldown", m.gate.Cooldown(),
		"dry_run", m.cfg.DryRun,
	)

	for {
		if m.stopRequested(ctx) {
			m.logger.Info("monitoring stopped")
			return nil
		}

		if _, err := m.cycle(ctx); err != nil {
			if ctx.Err() != nil {
				m.logger.Info("monitoring stopped")
				return nil
			}
			m.logger.Error("monitoring aborted", "error", err)
			return err
		}

		if !m.sleep(ctx) {
			m.logger.Info("monitoring stopped")
			return nil
		}
	}
}

// RunOnce выполняет ровно один проход и переводит монитор в Stopped.
func (m *Monitor) RunOnce(ctx context.Context) (entity.CycleEvent, error) {
	if err := m.transition(entity.StateMonitoring); err != nil {
		return entity.CycleEvent{}, err
	}
	defer m.transition(entity.StateStopped)

	return m.cycle(ctx)
}

func (m *Monitor) transition(next entity.RunState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == next {
		return nil
	}
	if !m.state.CanTransition(next) {
		if next == entity.StateMonitoring {
			return ErrAlreadyStarted
		}
		return fmt.Errorf("invalid state transition %s -> %s", m.state, next)
	}
	m.state = next
	return nil
}

func (m *Monitor) stopRequested(ctx context.Context) bool {
	return m.stopping.Load() || ctx.Err() != nil
}

func (m *Monitor) sleep(ctx context.Context) bool {
	t := time.NewTimer(m.cfg.PollInterval)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-m.wake:
		return false
	case <-t.C:
		return true
	}
}

type cycleResult struct {
	event entity.CycleEvent
	err   error
}

// cycle выполняет один проход с ограничением по времени. Превышение считается фатальным.
func (m *Monitor) cycle(ctx context.Context) (entity.CycleEvent, error) {
	timeout := m.cfg.CycleTimeout
	if timeout <= 0 {
		return m.runCycle(ctx)
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan cycleResult, 1)
	go func() {
		event, err := m.runCycle(cctx)
		done <- cycleResult{event: event, err: err}
	}()

	select {
	case r := <-done:
		if r.err == nil && r.event.Outcome == entity.OutcomeFailed && timedOut(ctx, cctx) {
			r.err = fmt.Errorf("%w after %s", ErrCycleTimeout, timeout)
		}
		return r.event, r.err
	case <-cctx.Done():
		if ctx.Err() != nil {
			return entity.CycleEvent{}, ctx.Err()
		}
		return entity.CycleEvent{}, fmt.Errorf("%w after %s", ErrCycleTimeout, timeout)
	}
}

// timedOut сообщает, что истёк лимит прохода, а не отменён родительский контекст.
func timedOut(parent, cycle context.Context) bool {
	return parent.Err() == nil && errors.Is(cycle.Err(), context.DeadlineExceeded)
}

// runCycle возвращает ошибку только если цикл нужно остановить.
// Временные сбои записываются в событие с исходом failed.
func (m *Monitor) runCycle(ctx context.Context) (entity.CycleEvent, error) {
	start := m.now()
	m.seq++
	event := entity.CycleEvent{RunID: m.runID, Sequence: m.seq, At: start}

	finish := func(outcome entity.CycleOutcome, err error) entity.CycleEvent {
		event.Outcome = outcome
		event.Duration = m.now().Sub(start)
		if err != nil {
			event.Err = err.Error()
		}
		m.record(ctx, event)
		return event
	}

	frame, err := m.capturer.Capture(ctx)
	if err != nil {
		fatal := m.captureFailed(err)
		finish(entity.OutcomeFailed, err)
		return event, fatal
	}
	m.captureFailures = 0

	det, err := m.pipeline.Process(ctx, frame)
	event.Regions = len(det.Regions)
	if err != nil {
		m.logger.Warn("detection failed", "seq", event.Sequence, "error", err)
		return finish(entity.OutcomeFailed, err), nil
	}

	if det.Candidate == nil {
		event.Decision = entity.Skip(entity.SkipNoCandidate, m.now())
		m.logger.Debug("no candidate", "seq", event.Sequence, "regions", event.Regions)
		return finish(entity.OutcomeNothing, nil), nil
	}

	event.Candidate = det.Candidate
	event.Decision = m.gate.Evaluate(det.Candidate, m.now())
	if !event.Decision.Click {
		m.logger.Debug("click skipped", "seq", event.Sequence, "reason", string(event.Decision.Reason))
		return finish(entity.OutcomeSkipped, nil), nil
	}

	if err := ctx.Err(); err != nil {
		return finish(entity.OutcomeFailed, err), err
	}

	frameSize := image.Pt(frame.Width(), frame.Height())
	if err := m.clicker.Click(ctx, event.Decision.Point, frameSize); err != nil {
		if errors.Is(err, port.ErrInputInjectionDenied) {
			finish(entity.OutcomeFailed, err)
			return event, fmt.Errorf("click at %v: %w", event.Decision.Point, err)
		}
		m.logger.Warn("click failed", "seq", event.Sequence, "error", err)
		return finish(entity.OutcomeFailed, err), nil
	}

	outcome := entity.OutcomeClicked
	if m.cfg.DryRun {
		outcome = entity.OutcomeDryRun
	}
	m.logger.Info("allow button clicked",
		"seq", event.Sequence,
		"x", event.Decision.Point.X,
		"y", event.Decision.Point.Y,
		"matched", det.Candidate.Matched,
		"score", det.Candidate.Score,
		"dry_run", m.cfg.DryRun,
	)

	event = finish(outcome, nil)
	if outcome == entity.OutcomeClicked && m.notifier != nil {
		if err := m.notifier.Notify(ctx, event); err != nil {
			m.logger.Warn("notify failed", "error", err)
		}
	}
	return event, nil
}

// captureFailed классифицирует ошибку снимка: отсутствие доступа фатально сразу,
// остальные сбои становятся фатальными после MaxCaptureFailures подряд.
func (m *Monitor) captureFailed(err error) error {
	if errors.Is(err, port.ErrCaptureUnavailable) {
		return fmt.Errorf("capture screen: %w", err)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}

	m.captureFailures++
	m.logger.Warn("capture failed", "attempt", m.captureFailures, "error", err)
	if m.cfg.MaxCaptureFailures > 0 && m.captureFailures >= m.cfg.MaxCaptureFailures {
		return fmt.Errorf("%w (%d): %v", ErrTooManyCaptureFailures, m.captureFailures, err)
	}
	return nil
}

func (m *Monitor) record(ctx context.Context, event entity.CycleEvent) {
	if m.events == nil {
		return
	}
	if err := m.events.Record(context.WithoutCancel(ctx), event); err != nil {
		m.logger.Warn("record event failed", "error", err)
	}
}
