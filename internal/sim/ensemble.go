package sim

import (
	"context"

	"github.com/san-kum/dpend/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// RunAll runs independent simulators concurrently, one goroutine each, with
// the same run configuration. Results are returned in input order. The first
// error cancels the remaining runs.
func RunAll(ctx context.Context, sims []*Simulator, cfg dynamo.Config) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(sims))
	g, ctx := errgroup.WithContext(ctx)

	for i, s := range sims {
		g.Go(func() error {
			res, err := s.Run(ctx, cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
