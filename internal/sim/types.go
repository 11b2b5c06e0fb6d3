package sim

import (
	"fmt"
	"strings"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/physics"
)

// UpdateOrder selects how a tick commits body positions.
type UpdateOrder int

const (
	// Sequential computes and commits body i before body i+1 is evaluated,
	// so later bodies see positions already advanced in the same tick.
	Sequential UpdateOrder = iota
	// Synchronized evaluates every force against one snapshot and commits
	// afterwards in collection order.
	Synchronized
)

func (o UpdateOrder) String() string {
	switch o {
	case Sequential:
		return "sequential"
	case Synchronized:
		return "synchronized"
	default:
		return fmt.Sprintf("UpdateOrder(%d)", int(o))
	}
}

func ParseUpdateOrder(s string) (UpdateOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential", "gauss-seidel":
		return Sequential, nil
	case "synchronized", "snapshot":
		return Synchronized, nil
	}
	return 0, fmt.Errorf("%w: unknown update order %q", ErrInvalidConfig, s)
}

type Config struct {
	Constants physics.Constants
	// StarIsFixed keeps the star in place: it attracts every body but is
	// never attracted back.
	StarIsFixed bool
	Order       UpdateOrder
	// Workers bounds the goroutines used for force evaluation in
	// Synchronized order. Values below 2 evaluate serially.
	Workers       int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Constants:     physics.DefaultConstants(),
		StarIsFixed:   true,
		Order:         Sequential,
		Workers:       1,
		ValidateState: true,
	}
}

// World is a read-only view of the simulation after a tick.
type World struct {
	Tick      int
	Star      *body.Body
	Bodies    []*body.Body
	Constants physics.Constants
}

type Metric interface {
	Name() string
	Observe(w World)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(w World)
}

type Result struct {
	Ticks   int
	Metrics map[string]float64
	Errors  []error
}

// Overlap is a pair of bodies whose spheres intersect.
type Overlap struct {
	A, B *body.Body
}
