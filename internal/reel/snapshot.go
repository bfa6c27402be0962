package reel

import (
	"math"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// Snapshot is what a spectator needs to draw a lane at one instant
type Snapshot struct {
	Lane      int                 `json:"lane"`
	State     State               `json:"state"`
	Position  float64             `json:"position"`
	Speed     float64             `json:"speed"`
	Target    float64             `json:"target,omitempty"`
	ItemSize  float64             `json:"item_size"`
	Teased    bool                `json:"teased"`
	Teasing   bool                `json:"teasing"`
	Centered  *domain.StripItem   `json:"centered,omitempty"`
	Visible   []domain.StripItem  `json:"visible"`
	FirstCell int                 `json:"first_cell"`
	Outcome   *domain.SpinOutcome `json:"outcome,omitempty"`
}

// Lane returns the lane index of the engine
func (e *Engine) Lane() int { return e.lane }

// State returns the current phase
func (e *Engine) State() State { return e.state }

// Position returns the scroll offset in pixels
func (e *Engine) Position() float64 { return e.position }

// Teased reports whether the current outcome has already been teased
func (e *Engine) Teased() bool { return e.teased }

// Strip returns a copy of the whole strip
func (e *Engine) Strip() []domain.StripItem {
	out := make([]domain.StripItem, len(e.items))
	copy(out, e.items)
	return out
}

// Centered returns the cell under the pointer, if any.
func (e *Engine) Centered() (domain.StripItem, bool) {
	idx := int(math.Floor((e.position + e.cfg.Viewport.Size()/2) / e.cfg.ItemSize))
	if idx < 0 || idx >= len(e.items) {
		return domain.StripItem{}, false
	}
	return e.items[idx], true
}

// Snapshot captures the lane with the cells intersecting the viewport.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Lane:     e.lane,
		State:    e.state,
		Position: e.position,
		Speed:    e.speed,
		ItemSize: e.cfg.ItemSize,
		Teased:   e.teased,
		Teasing:  e.teasing,
	}
	if e.state == StateStopping || e.state == StateDone {
		s.Target = e.target
	}
	if c, ok := e.Centered(); ok {
		s.Centered = &c
	}
	if e.outcome != nil && e.state == StateDone && !e.teasing {
		o := *e.outcome
		s.Outcome = &o
	}

	first := int(math.Floor(e.position / e.cfg.ItemSize))
	if first < 0 {
		first = 0
	}
	last := int(math.Ceil((e.position + e.cfg.Viewport.Size()) / e.cfg.ItemSize))
	if last > len(e.items) {
		last = len(e.items)
	}
	s.FirstCell = first
	if first < last {
		s.Visible = make([]domain.StripItem, last-first)
		copy(s.Visible, e.items[first:last])
	}
	return s
}
