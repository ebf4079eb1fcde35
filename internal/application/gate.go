package app

import (
	"sync"
	"time"

	"allow-clicker/internal/domain/entity"
)

// Gate ограничивает частоту кликов. Состояние паузы принадлежит только ему.
type Gate struct {
	mu        sync.Mutex
	cooldown  time.Duration
	lastClick time.Time
	clicked   bool
}

func NewGate(cooldown time.Duration) *Gate {
	return &Gate{cooldown: cooldown}
}

// Evaluate решает, кликать ли по кандидату в момент now.
// Решение о клике и запись времени клика выполняются под одной блокировкой.
func (g *Gate) Evaluate(candidate *entity.Candidate, now time.Time) entity.Decision {
	if candidate == nil {
		return entity.Skip(entity.SkipNoCandidate, now)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.clicked && now.Sub(g.lastClick) < g.cooldown {
		return entity.Skip(entity.SkipCooldownActive, now)
	}

	g.lastClick = now
	g.clicked = true
	return entity.ClickAt(candidate.ClickPoint, now)
}

// LastClick возвращает время последнего разрешённого клика.
func (g *Gate) LastClick() (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastClick, g.clicked
}

// Cooldown возвращает минимальный интервал между кликами
func (g *Gate) Cooldown() time.Duration {
	return g.cooldown
}
