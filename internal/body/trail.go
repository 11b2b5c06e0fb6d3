package body

import "github.com/go-gl/mathgl/mgl32"

// Trail is a fixed-capacity ring buffer of recent positions. Once full, each
// push overwrites the oldest point.
type Trail struct {
	points []mgl32.Vec3
	head   int
	size   int
}

func NewTrail(capacity int) *Trail {
	return &Trail{points: make([]mgl32.Vec3, capacity)}
}

func (t *Trail) Len() int { return t.size }
func (t *Trail) Cap() int { return len(t.points) }

func (t *Trail) Push(p mgl32.Vec3) {
	t.points[t.head] = p
	t.head = (t.head + 1) % len(t.points)
	if t.size < len(t.points) {
		t.size++
	}
}

// At returns the i-th point, oldest first.
func (t *Trail) At(i int) mgl32.Vec3 {
	if i < 0 || i >= t.size {
		panic("body: trail index out of range")
	}
	return t.points[t.index(i)]
}

// Latest returns the most recently pushed point.
func (t *Trail) Latest() (mgl32.Vec3, bool) {
	if t.size == 0 {
		return mgl32.Vec3{}, false
	}
	return t.At(t.size - 1), true
}

// Each calls fn for every point, oldest first.
func (t *Trail) Each(fn func(i int, p mgl32.Vec3)) {
	for i := 0; i < t.size; i++ {
		fn(i, t.points[t.index(i)])
	}
}

// Points returns a copy of the trail, oldest first.
func (t *Trail) Points() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, t.size)
	t.Each(func(i int, p mgl32.Vec3) { out[i] = p })
	return out
}

func (t *Trail) index(i int) int {
	start := t.head - t.size
	if start < 0 {
		start += len(t.points)
	}
	return (start + i) % len(t.points)
}
