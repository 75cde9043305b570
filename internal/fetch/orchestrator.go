package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"quotewatch/internal/quote"
	"quotewatch/internal/security"
)

// Orchestrator fans one fetch per security out over a quote.Client and
// reassembles the results in input order. It implements quote.Fetcher.
//
// Fan-out is unordered and concurrent; fan-in waits for every task, so one
// security's failure never cancels or delays its siblings. Each input
// produces exactly one Result, success or not.
type Orchestrator struct {
	Client quote.Client
	// MaxConcurrency caps simultaneous outbound fetches. 0 means no cap:
	// every security in the batch gets its own in-flight request, which can
	// exhaust sockets on very large watchlists.
	MaxConcurrency int
}

func (o *Orchestrator) Fetch(ctx context.Context, secs []security.Security) []quote.Result {
	results := make([]quote.Result, len(secs))
	var g errgroup.Group
	if o.MaxConcurrency > 0 {
		g.SetLimit(o.MaxConcurrency)
	}
	for i, s := range secs {
		i, s := i, s
		g.Go(func() error {
			data, err := o.Client.Quote(ctx, s.ID)
			if err != nil {
				results[i] = quote.Result{Security: s, Err: err}
				return nil
			}
			results[i] = quote.Result{Security: s, Data: data}
			return nil
		})
	}
	// Tasks never return errors; Wait is only the completion barrier.
	_ = g.Wait()
	return results
}
