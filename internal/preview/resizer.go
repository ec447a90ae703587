package preview

import (
	"fmt"
	"math"
	"sync"
)

// Pointer is a pointer position along with the container it is measured against.
type Pointer struct {
	X              float64
	ContainerLeft  float64
	ContainerWidth float64
}

// PaneSetter receives live widths while a drag is in progress.
type PaneSetter interface {
	SetPaneWidth(percent float64)
}

// Resizer tracks a divider drag. Pointer moves only record the latest
// position; Frame applies it, so the pane is touched at most once per frame.
// The width reaches the session only on EndDrag.
type Resizer struct {
	min, max float64
	setter   PaneSetter
	commit   func(percent float64)

	mu       sync.Mutex
	dragging bool
	pending  *Pointer
	width    float64
}

// NewResizer bounds widths to [min, max] percent. setter may be nil.
func NewResizer(min, max float64, setter PaneSetter, commit func(float64)) (*Resizer, error) {
	if !(min > 0 && min < max && max < 100) {
		return nil, fmt.Errorf("invalid pane bounds min=%v max=%v", min, max)
	}
	return &Resizer{min: min, max: max, setter: setter, commit: commit}, nil
}

// BeginDrag starts a drag from the current committed width.
func (r *Resizer) BeginDrag(current float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dragging = true
	r.pending = nil
	r.width = r.clamp(current)
}

// Move records a pointer position. Ignored outside a drag.
func (r *Resizer) Move(p Pointer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.dragging {
		return
	}
	r.pending = &p
}

// Frame applies the latest recorded position, if any, and reports whether
// the width was updated.
func (r *Resizer) Frame() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applyPending()
}

// EndDrag flushes any pending position, commits the width and returns it.
// ok is false when no drag was in progress.
func (r *Resizer) EndDrag() (width float64, ok bool) {
	r.mu.Lock()
	if !r.dragging {
		r.mu.Unlock()
		return 0, false
	}
	r.applyPending()
	r.dragging = false
	width = r.width
	r.mu.Unlock()

	if r.commit != nil {
		r.commit(width)
	}
	return width, true
}

func (r *Resizer) applyPending() bool {
	if !r.dragging || r.pending == nil {
		return false
	}
	r.width = ClampWidth(*r.pending, r.min, r.max, r.width)
	r.pending = nil
	if r.setter != nil {
		r.setter.SetPaneWidth(r.width)
	}
	return true
}

func (r *Resizer) clamp(percent float64) float64 {
	return clampRange(percent, r.min, r.max, r.min)
}

// ClampWidth converts p into a pane width percentage within [min, max].
// A container with no usable width yields fallback, clamped.
func ClampWidth(p Pointer, min, max, fallback float64) float64 {
	if p.ContainerWidth <= 0 || math.IsNaN(p.ContainerWidth) || math.IsInf(p.ContainerWidth, 0) {
		return clampRange(fallback, min, max, min)
	}
	percent := (p.X - p.ContainerLeft) / p.ContainerWidth * 100
	return clampRange(percent, min, max, clampRange(fallback, min, max, min))
}

func clampRange(v, min, max, ifNaN float64) float64 {
	switch {
	case math.IsNaN(v):
		return ifNaN
	case v < min:
		return min
	case v > max:
		return max
	}
	return v
}
