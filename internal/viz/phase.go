package viz

import "math"

// PhasePortrait draws velocity against offset on a width x height braille
// canvas. Bounds are symmetric so the equilibrium (zero offset, zero
// velocity) sits where the dotted axes cross; a damped spring spirals into
// it and an undamped one traces a closed ellipse.
func PhasePortrait(offsets, velocities []float64, width, height int) string {
	n := min(len(offsets), len(velocities))
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}

	xMax, vMax := 0.0, 0.0
	for i := 0; i < n; i++ {
		xMax = math.Max(xMax, math.Abs(offsets[i]))
		vMax = math.Max(vMax, math.Abs(velocities[i]))
	}
	if xMax == 0 {
		xMax = 1
	}
	if vMax == 0 {
		vMax = 1
	}

	c := NewCanvas(width, height)
	dotsX, dotsY := width*2, height*4
	px := func(x float64) int { return int((x/xMax+1)/2*float64(dotsX-1) + 0.5) }
	py := func(v float64) int { return dotsY - 1 - int((v/vMax+1)/2*float64(dotsY-1)+0.5) }

	ex, ey := px(0), py(0)
	for x := 0; x < dotsX; x += 2 {
		c.Set(x, ey)
	}
	for y := 0; y < dotsY; y += 2 {
		c.Set(ex, y)
	}

	x0, y0 := px(offsets[0]), py(velocities[0])
	c.Set(x0, y0)
	for i := 1; i < n; i++ {
		x1, y1 := px(offsets[i]), py(velocities[i])
		c.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
	return c.String()
}
