// Package analysis extracts oscillation characteristics from recorded runs.
//
//   - [DominantFrequency]: strongest spectral line via go-dsp's real FFT
//   - [CrossingPeriod]: period from interpolated zero crossings
//   - [DecayRate]: exponential envelope fitted over successive peaks
//
// For an under-damped spring these recover the damped angular frequency
// ωd = 2π/period and the decay rate ζω:
//
//	offsets := result.Offsets()
//	period := analysis.CrossingPeriod(result.Times, offsets)
//	sigma := analysis.DecayRate(result.Times, offsets)
package analysis
