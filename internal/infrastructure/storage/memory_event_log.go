package storage

import (
	"context"
	"sync"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// DefaultEventCapacity сколько последних событий хранится в памяти
const DefaultEventCapacity = 256

// MemoryEventLog in-memory журнал проходов цикла с кольцевым буфером
type MemoryEventLog struct {
	mu     sync.RWMutex
	events []entity.CycleEvent
	next   int
	full   bool
	stats  entity.RunStats
}

// NewMemoryEventLog создаёт журнал на capacity событий
func NewMemoryEventLog(capacity int) *MemoryEventLog {
	if capacity <= 0 {
		capacity = DefaultEventCapacity
	}
	return &MemoryEventLog{
		events: make([]entity.CycleEvent, capacity),
	}
}

// Record сохраняет событие и обновляет статистику
func (l *MemoryEventLog) Record(ctx context.Context, event entity.CycleEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events[l.next] = event
	l.next = (l.next + 1) % len(l.events)
	if l.next == 0 {
		l.full = true
	}

	l.stats.Cycles++
	switch event.Outcome {
	case entity.OutcomeClicked:
		l.stats.Clicks++
	case entity.OutcomeDryRun:
		l.stats.DryRuns++
	case entity.OutcomeSkipped:
		l.stats.Skips++
	case entity.OutcomeNothing:
		l.stats.Empty++
	case entity.OutcomeFailed:
		l.stats.Errors++
	}
	last := event
	l.stats.Last = &last

	return nil
}

// Recent возвращает до limit последних событий в хронологическом порядке
func (l *MemoryEventLog) Recent(ctx context.Context, limit int) ([]entity.CycleEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	size := l.next
	if l.full {
		size = len(l.events)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]entity.CycleEvent, 0, limit)
	start := l.next - limit
	for i := 0; i < limit; i++ {
		idx := (start + i + len(l.events)) % len(l.events)
		out = append(out, l.events[idx])
	}
	return out, nil
}

// Stats возвращает копию статистики
func (l *MemoryEventLog) Stats(ctx context.Context) (entity.RunStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := l.stats
	if stats.Last != nil {
		last := *stats.Last
		stats.Last = &last
	}
	return stats, nil
}

// Проверка реализации интерфейса
var _ port.EventLog = (*MemoryEventLog)(nil)
