package extensibility

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/comalice/fsmx"
)

// Target accepts triggers. *fsmx.Machine satisfies it.
type Target[E comparable] interface {
	Trigger(event E, opts ...fsmx.TriggerOption) *fsmx.Pending
}

// Feed triggers target with every event from sources, one goroutine per
// source. Events from one source are triggered in order; sources interleave.
// It returns nil once every source has closed, ctx.Err() if ctx ends first and
// fsmx.ErrMachineClosed if target stops accepting triggers.
func Feed[E comparable](ctx context.Context, target Target[E], sources ...EventSource[E]) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		g.Go(func() error {
			events := src.Events()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					if err := target.Trigger(ev).Err(); errors.Is(err, fsmx.ErrMachineClosed) {
						return err
					}
				}
			}
		})
	}
	return g.Wait()
}
