package app

import (
	"context"
	"log/slog"
	"slices"

	"allow-clicker/internal/domain/entity"
)

// RankerConfig параметры отбора кандидатов
type RankerConfig struct {
	RequireTextMatch bool    // отбрасывать области без подтверждённого текста
	OverlapThreshold float64 // доля перекрытия, выше которой области считаются дублями
	ColorOnlyMinY    int     // кандидаты только по цвету с верхним краем не ниже этой линии игнорируются
}

// Ranker объединяет цветовые области и результаты OCR в упорядоченный список кандидатов.
type Ranker struct {
	confirmer *TextConfirmer
	cfg       RankerConfig
	logger    *slog.Logger
}

func NewRanker(confirmer *TextConfirmer, cfg RankerConfig, logger *slog.Logger) *Ranker {
	return &Ranker{confirmer: confirmer, cfg: cfg, logger: logger}
}

// Rank возвращает лучшего кандидата или nil, если подходящих нет.
func (r *Ranker) Rank(ctx context.Context, frame entity.Frame, regions []entity.Region, keyword string) (*entity.Candidate, error) {
	candidates, err := r.Candidates(ctx, frame, regions, keyword)
	if err != nil || len(candidates) == 0 {
		return nil, err
	}
	best := candidates[0]
	return &best, nil
}

// Candidates оценивает каждую область, убирает дубли и сортирует от лучшего к худшему.
func (r *Ranker) Candidates(ctx context.Context, frame entity.Frame, regions []entity.Region, keyword string) ([]entity.Candidate, error) {
	scored := make([]entity.Candidate, 0, len(regions))
	for i, region := range regions {
		conf, err := r.confirmer.Confirm(ctx, frame, region, keyword)
		if err != nil {
			return nil, err
		}

		c := entity.NewCandidate(region, conf, i)
		if !frame.Contains(c.ClickPoint) {
			continue
		}

		switch {
		case conf.Matched:
			c.Score = 1 + conf.Confidence
		case r.cfg.RequireTextMatch:
			continue
		default:
			s, ok := r.colorOnlyScore(region, frame)
			if !ok {
				continue
			}
			c.Score = s
		}

		r.logger.Debug("candidate scored",
			"rect", region.Rect().String(),
			"matched", c.Matched,
			"ocr_available", conf.Available,
			"text", conf.Text,
			"score", c.Score,
		)
		scored = append(scored, c)
	}

	slices.SortStableFunc(scored, func(a, b entity.Candidate) int {
		switch {
		case a.Better(b):
			return -1
		case b.Better(a):
			return 1
		default:
			return 0
		}
	})

	return r.dedup(scored), nil
}

// dedup оставляет из перекрывающихся кандидатов первого; вход уже отсортирован.
func (r *Ranker) dedup(sorted []entity.Candidate) []entity.Candidate {
	kept := sorted[:0:0]
	for _, c := range sorted {
		duplicate := false
		for _, k := range kept {
			if c.Region.OverlapFraction(k.Region) > r.cfg.OverlapThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, c)
		}
	}
	return kept
}

// Размеры кнопки для кандидатов без текста: не иконка и не баннер
const (
	colorOnlyMinWidth  = 30
	colorOnlyMaxWidth  = 150
	colorOnlyMinHeight = 15
	colorOnlyMaxHeight = 50
)

// colorOnlyScore оценивает область без подтверждённого текста. Результат всегда меньше 1,
// поэтому любой кандидат с текстом важнее.
func (r *Ranker) colorOnlyScore(region entity.Region, frame entity.Frame) (float64, bool) {
	if region.Y <= r.cfg.ColorOnlyMinY {
		return 0, false
	}
	if region.Width < colorOnlyMinWidth || region.Width > colorOnlyMaxWidth ||
		region.Height < colorOnlyMinHeight || region.Height > colorOnlyMaxHeight {
		return 0, false
	}

	aspect := region.Aspect()
	buttonShaped := aspect >= 1.5 && aspect <= 5
	// диалоги разрешений обычно появляются в правом нижнем углу
	bottomRight := float64(region.X) > 0.6*float64(frame.Width()) &&
		float64(region.Y) > 0.6*float64(frame.Height())
	if !buttonShaped && !bottomRight {
		return 0, false
	}

	score := 0.5
	if buttonShaped {
		score += 0.25
	}
	if bottomRight {
		score += 0.2
	}
	return score, true
}
