package sim

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// parallelFor splits [0, n) into at most workers contiguous chunks and runs
// fn on each. Chunks write disjoint indices; fn must not mutate bodies.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= 1 {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// Builder creates an independent simulator for one ensemble member.
type Builder func(seed int64) (*Simulator, error)

// Ensemble runs several independently seeded simulators concurrently.
type Ensemble struct {
	build     Builder
	numRuns   int
	seedStart int64
	limit     int
}

func NewEnsemble(build Builder, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart, limit: -1}
}

// SetLimit caps the number of members running at once.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

// Run returns one result per member, indexed by seed offset. The first
// failing member cancels the rest.
func (e *Ensemble) Run(ctx context.Context, ticks int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			s, err := e.build(e.seedStart + int64(idx))
			if err != nil {
				return err
			}
			results[idx], err = s.Run(ctx, ticks)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
