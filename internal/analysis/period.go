package analysis

import "math"

// ZeroCrossings returns the linearly interpolated times at which values
// changes sign.
func ZeroCrossings(times, values []float64) []float64 {
	n := min(len(times), len(values))
	crossings := make([]float64, 0)
	for i := 1; i < n; i++ {
		prev, curr := values[i-1], values[i]
		if prev == 0 || curr != 0 && (prev > 0) == (curr > 0) {
			continue
		}
		frac := prev / (prev - curr)
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		crossings = append(crossings, times[i-1]+frac*(times[i]-times[i-1]))
	}
	return crossings
}

// CrossingPeriod estimates the oscillation period as twice the mean spacing
// between zero crossings. It returns 0 with fewer than two crossings.
func CrossingPeriod(times, values []float64) float64 {
	c := ZeroCrossings(times, values)
	if len(c) < 2 {
		return 0
	}
	return 2 * (c[len(c)-1] - c[0]) / float64(len(c)-1)
}

// DecayRate fits ln|peak| against time over the local extrema of |values|
// and returns the negated slope, i.e. ζω for an under-damped spring.
func DecayRate(times, values []float64) float64 {
	n := min(len(times), len(values))
	var xs, ys []float64
	for i := 1; i < n-1; i++ {
		a, b, c := math.Abs(values[i-1]), math.Abs(values[i]), math.Abs(values[i+1])
		if b > a && b >= c && b > 0 {
			xs = append(xs, times[i])
			ys = append(ys, math.Log(b))
		}
	}
	if len(xs) < 2 {
		return 0
	}
	return -slope(xs, ys)
}

func slope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}
