package experiment

import (
	"context"

	"github.com/san-kum/dampsim/internal/config"
	"github.com/san-kum/dampsim/internal/sim"
	"github.com/san-kum/dampsim/spring"
)

// SweepRow is the response of one damping ratio in a sweep.
type SweepRow struct {
	DampingRatio float64
	Regime       spring.Regime
	Result       *sim.Result
}

// SweepDamping runs the config once per damping ratio with the closed form,
// concurrently.
func SweepDamping(ctx context.Context, cfg *config.Config, ratios []float64) ([]SweepRow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	registry := NewRegistry()

	rows := make([]SweepRow, len(ratios))
	jobs := make([]sim.Job, len(ratios))
	for i, zeta := range ratios {
		sc, err := spring.NewConfig(cfg.AngularFrequency, zeta)
		if err != nil {
			return nil, err
		}
		rows[i] = SweepRow{DampingRatio: zeta, Regime: sc.Params().Regime()}
		jobs[i] = sim.Job{
			Name:    sc.String(),
			Stepper: sim.NewClosedForm(sc.Params()),
			Initial: InitialSample(cfg),
			Config:  RunConfig(cfg),
			Metrics: func() []sim.Metric { return registry.DefaultMetrics(cfg.AngularFrequency, zeta) },
		}
	}

	results, err := sim.Sweep(ctx, jobs, 0)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Result = results[i]
	}
	return rows, nil
}
