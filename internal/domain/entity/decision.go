package entity

import (
	"image"
	"time"
)

// SkipReason объясняет, почему клик не выполнен
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipNoCandidate    SkipReason = "no_candidate"    // кандидатов нет
	SkipCooldownActive SkipReason = "cooldown_active" // не истёк интервал между кликами
)

// Decision: решение шлюза: кликнуть в точку или пропустить
type Decision struct {
	Click  bool
	Point  image.Point
	Reason SkipReason
	At     time.Time
}

// ClickAt создаёт решение о клике
func ClickAt(p image.Point, at time.Time) Decision {
	return Decision{Click: true, Point: p, At: at}
}

// Skip создаёт решение о пропуске
func Skip(reason SkipReason, at time.Time) Decision {
	return Decision{Reason: reason, At: at}
}

func (d Decision) String() string {
	if d.Click {
		return "click"
	}
	return "skip(" + string(d.Reason) + ")"
}
