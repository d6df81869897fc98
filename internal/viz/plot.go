package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dampsim/internal/sim"
)

const (
	plotWidth  = 80
	plotHeight = 15
)

// Plot charts a single series.
func Plot(data []float64, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotResponse charts position against the equilibrium it is chasing.
func PlotResponse(res *sim.Result, caption string) string {
	if res == nil || len(res.Positions) == 0 {
		return ""
	}
	return asciigraph.PlotMany([][]float64{res.Positions, res.Equilibriums},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.DarkGray),
	)
}
