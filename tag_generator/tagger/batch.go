package tagger

import (
	"context"
	"errors"

	"MS-Sequence-Tags/tag_generator/common"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome for one spectrum of a batch.
// Err is set when that spectrum alone was rejected; the rest of the batch is unaffected.
type BatchResult struct {
	Index int
	Title string
	Output
	Err error
}

// GenerateBatch runs spectra on up to cfg.Workers goroutines. Spectra share no mutable
// state; only the read-only alphabet is shared. Results come back in input order.
// The returned error is non-nil only when ctx is cancelled.
func (g *Generator) GenerateBatch(ctx context.Context, spectra []*common.Spectrum) ([]BatchResult, error) {
	results := make([]BatchResult, len(spectra))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)

	for i, spec := range spectra {
		i, spec := i, spec
		eg.Go(func() error {
			r := BatchResult{Index: i}
			if spec != nil {
				r.Title = spec.Title
			}
			out, err := g.Generate(egCtx, spec)
			r.Output = out
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				g.logger.Error("spectrum rejected", "index", i, "spectrum", r.Title, "err", err)
				r.Err = err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
