package entity

import "time"

// RunState состояние цикла мониторинга
type RunState string

const (
	StateIdle       RunState = "idle"       // ещё не запущен
	StateMonitoring RunState = "monitoring" // цикл работает
	StateStopped    RunState = "stopped"    // остановлен, перезапуск невозможен
)

// CanTransition проверяет допустимость перехода между состояниями
func (s RunState) CanTransition(next RunState) bool {
	switch s {
	case StateIdle:
		return next == StateMonitoring || next == StateStopped
	case StateMonitoring:
		return next == StateStopped
	default:
		return false
	}
}

// CycleOutcome итог одного прохода цикла
type CycleOutcome string

const (
	OutcomeClicked CycleOutcome = "clicked" // клик выполнен
	OutcomeDryRun  CycleOutcome = "dry_run" // клик разрешён, но подавлен тестовым режимом
	OutcomeSkipped CycleOutcome = "skipped" // шлюз отказал
	OutcomeNothing CycleOutcome = "nothing" // кандидатов нет
	OutcomeFailed  CycleOutcome = "failed"  // цикл прерван ошибкой
)

// CycleEvent запись о проходе цикла
type CycleEvent struct {
	RunID     string
	Sequence  uint64
	At        time.Time
	Duration  time.Duration
	Regions   int
	Candidate *Candidate
	Decision  Decision
	Outcome   CycleOutcome
	Err       string
}

// RunStats агрегированная статистика запуска
type RunStats struct {
	Cycles  int
	Clicks  int
	DryRuns int
	Skips   int
	Empty   int
	Errors  int
	Last    *CycleEvent
}
