package entity

import "image"

// Recognition: результат распознавания текста на фрагменте
type Recognition struct {
	Text       string
	Confidence float64 // уверенность движка в [0,1]
	Scored     bool    // движок сообщил уверенность
}

// Confirmation: итог проверки области на ключевое слово
type Confirmation struct {
	Matched    bool
	Confidence float64
	Available  bool // false, если движок OCR не установлен
	Text       string
}

// Candidate: область с результатом проверки и точкой клика
type Candidate struct {
	Region     Region
	Matched    bool
	Confidence float64
	Score      float64
	ClickPoint image.Point
	order      int
}

// NewCandidate строит кандидата; точка клика: центр области.
func NewCandidate(region Region, c Confirmation, order int) Candidate {
	x, y := region.Center()
	return Candidate{
		Region:     region,
		Matched:    c.Matched,
		Confidence: c.Confidence,
		ClickPoint: image.Pt(x, y),
		order:      order,
	}
}

// Better сообщает, что кандидат предпочтительнее другого.
// При равном счёте побеждает большая площадь, затем более раннее обнаружение.
func (c Candidate) Better(o Candidate) bool {
	if c.Score != o.Score {
		return c.Score > o.Score
	}
	if c.Region.Area() != o.Region.Area() {
		return c.Region.Area() > o.Region.Area()
	}
	return c.order < o.order
}
