package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job is one independent run inside a sweep. Metrics is called once per job
// so that metric state is never shared between goroutines.
type Job struct {
	Name    string
	Stepper Stepper
	Initial Sample
	Config  Config
	Metrics func() []Metric
}

// Sweep runs jobs concurrently, at most limit at a time (NumCPU when limit
// is not positive). Results are returned in job order. The first failing job
// cancels the rest.
func Sweep(ctx context.Context, jobs []Job, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range jobs {
		g.Go(func() error {
			s := New(job.Stepper)
			if job.Metrics != nil {
				for _, m := range job.Metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, job.Initial, job.Config)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
