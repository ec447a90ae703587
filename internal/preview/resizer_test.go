package preview

import (
	"math"
	"testing"
)

type recordingSetter struct{ widths []float64 }

func (r *recordingSetter) SetPaneWidth(percent float64) { r.widths = append(r.widths, percent) }

func TestNewResizer_RejectsBadBounds(t *testing.T) {
	for _, b := range [][2]float64{{0, 80}, {80, 20}, {20, 100}, {50, 50}} {
		if _, err := NewResizer(b[0], b[1], nil, nil); err == nil {
			t.Errorf("bounds %v should be rejected", b)
		}
	}
}

func TestClampWidth_StaysInBounds(t *testing.T) {
	xs := []float64{-1e9, -500, -1, 0, 99, 100, 150, 199.9, 200, 350, 500, 1e9, math.Inf(1), math.Inf(-1), math.NaN()}
	containers := []Pointer{
		{ContainerLeft: 100, ContainerWidth: 400},
		{ContainerLeft: 0, ContainerWidth: 1},
		{ContainerLeft: 0, ContainerWidth: 0},
		{ContainerLeft: 0, ContainerWidth: -10},
		{ContainerLeft: 0, ContainerWidth: math.NaN()},
	}
	for _, c := range containers {
		for _, x := range xs {
			p := c
			p.X = x
			got := ClampWidth(p, 20, 80, 50)
			if math.IsNaN(got) || got < 20 || got > 80 {
				t.Errorf("ClampWidth(%+v) = %v, outside [20, 80]", p, got)
			}
		}
	}
}

func TestClampWidth_Values(t *testing.T) {
	c := Pointer{ContainerLeft: 100, ContainerWidth: 400}
	tests := []struct {
		x    float64
		want float64
	}{
		{300, 50},
		{200, 25},
		{110, 20},
		{480, 80},
		{0, 20},
		{1000, 80},
	}
	for _, tt := range tests {
		p := c
		p.X = tt.x
		if got := ClampWidth(p, 20, 80, 50); got != tt.want {
			t.Errorf("ClampWidth(x=%v) = %v, want %v", tt.x, got, tt.want)
		}
	}

	if got := ClampWidth(Pointer{X: 10}, 20, 80, 65); got != 65 {
		t.Errorf("zero-width container should keep fallback, got %v", got)
	}
}

func TestResizer_CoalescesMovesPerFrame(t *testing.T) {
	setter := &recordingSetter{}
	var committed []float64
	r, err := NewResizer(20, 80, setter, func(w float64) { committed = append(committed, w) })
	if err != nil {
		t.Fatal(err)
	}

	r.BeginDrag(50)
	for _, x := range []float64{10, 30, 60, 70} {
		r.Move(Pointer{X: x, ContainerWidth: 100})
	}
	if !r.Frame() {
		t.Fatal("frame should apply the pending move")
	}
	if r.Frame() {
		t.Error("a second frame with no new move should do nothing")
	}
	if len(setter.widths) != 1 || setter.widths[0] != 70 {
		t.Errorf("live widths = %v, want [70]", setter.widths)
	}
	if len(committed) != 0 {
		t.Error("nothing should be committed before release")
	}

	r.Move(Pointer{X: 95, ContainerWidth: 100})
	width, ok := r.EndDrag()
	if !ok || width != 80 {
		t.Errorf("EndDrag() = %v, %v, want 80 true", width, ok)
	}
	if len(committed) != 1 || committed[0] != 80 {
		t.Errorf("committed = %v, want [80]", committed)
	}
}

func TestResizer_IgnoresMovesOutsideDrag(t *testing.T) {
	setter := &recordingSetter{}
	r, _ := NewResizer(20, 80, setter, nil)

	r.Move(Pointer{X: 40, ContainerWidth: 100})
	if r.Frame() {
		t.Error("frame outside a drag should do nothing")
	}
	if _, ok := r.EndDrag(); ok {
		t.Error("EndDrag without BeginDrag should report false")
	}

	r.BeginDrag(5) // out-of-range start is clamped
	width, _ := r.EndDrag()
	if width != 20 {
		t.Errorf("width = %v, want 20", width)
	}
	if len(setter.widths) != 0 {
		t.Errorf("setter should not be called without moves, got %v", setter.widths)
	}
}
