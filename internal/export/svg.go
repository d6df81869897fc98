package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/dampsim/internal/sim"
)

// Series is one polyline in an SVG chart.
type Series struct {
	Values []float64
	Stroke string
}

const (
	positionStroke    = "#00ff88"
	equilibriumStroke = "#666688"
	velocityStroke    = "#00ccff"
)

// ResponseSVG charts position and equilibrium over time, and velocity when
// withVelocity is set.
func ResponseSVG(w io.Writer, res *sim.Result, width, height int, withVelocity bool) error {
	if res == nil || len(res.Times) < 2 {
		return fmt.Errorf("export: need at least two samples")
	}
	series := []Series{
		{Values: res.Equilibriums, Stroke: equilibriumStroke},
		{Values: res.Positions, Stroke: positionStroke},
	}
	if withVelocity {
		series = append(series, Series{Values: res.Velocities, Stroke: velocityStroke})
	}
	_, err := io.WriteString(w, TimeSeriesToSVG(res.Times, series, width, height))
	return err
}

// TimeSeriesToSVG draws every series against the shared time axis on one
// vertical scale.
func TimeSeriesToSVG(times []float64, series []Series, width, height int) string {
	if len(times) < 2 || len(series) == 0 {
		return ""
	}

	minX, maxX := times[0], times[len(times)-1]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, s := range series {
		n := min(len(times), len(s.Values))
		if n < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, s.Stroke))
		for i := 0; i < n; i++ {
			x := (times[i] - minX) / rangeX * float64(width)
			y := float64(height) - (s.Values[i]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
