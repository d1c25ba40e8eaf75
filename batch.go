package vincenty

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Pair is an inverse problem input.
type Pair struct {
	From, To Point
}

// Leg is a direct problem input.
type Leg struct {
	From     Point
	Bearing  float64 // radians
	Distance float64 // meters
}

// InverseBatch solves the inverse problem for every pair using up to
// workers goroutines. Results are in the same order as pairs.
//
// A non-positive workers value means no limit. The first error, either an
// invalid argument or the cancellation of ctx, stops the remaining work and
// is returned with the index of the failing pair.
func (e Ellipsoid) InverseBatch(ctx context.Context, pairs []Pair, params Params, workers int) ([]InverseResult, error) {
	results := make([]InverseResult, len(pairs))
	err := fanOut(ctx, len(pairs), workers, func(i int) (err error) {
		results[i], err = e.Inverse(pairs[i].From, pairs[i].To, params)
		return errors.Wrapf(err, "pair %d", i)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// DirectBatch solves the direct problem for every leg using up to workers
// goroutines. See InverseBatch.
func (e Ellipsoid) DirectBatch(ctx context.Context, legs []Leg, params Params, workers int) ([]DirectResult, error) {
	results := make([]DirectResult, len(legs))
	err := fanOut(ctx, len(legs), workers, func(i int) (err error) {
		l := legs[i]
		results[i], err = e.Direct(l.From, l.Bearing, l.Distance, params)
		return errors.Wrapf(err, "leg %d", i)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func fanOut(ctx context.Context, n, workers int, fn func(i int) error) error {
	eg, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i := 0; i < n; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	// cancelled before any goroutine observed it
	return errors.WithStack(ctx.Err())
}
