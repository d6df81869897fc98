package config

import "sort"

var Presets = map[string]*Config{
	"bouncy": {
		AngularFrequency: 8.0, DampingRatio: 0.2, Dt: 0.01, Duration: 5.0,
		InitState: InitStateConfig{Position: 1.0},
	},
	"gentle": {
		AngularFrequency: 4.0, DampingRatio: 0.7, Dt: 0.01, Duration: 5.0,
		InitState: InitStateConfig{Position: 1.0},
	},
	"critical": {
		AngularFrequency: 5.0, DampingRatio: 1.0, Dt: 0.01, Duration: 5.0,
		InitState: InitStateConfig{Position: 1.0},
	},
	"sluggish": {
		AngularFrequency: 5.0, DampingRatio: 2.5, Dt: 0.01, Duration: 10.0,
		InitState: InitStateConfig{Position: 1.0},
	},
	"wobble": {
		AngularFrequency: 12.0, DampingRatio: 0.05, Dt: 0.005, Duration: 10.0,
		InitState: InitStateConfig{Position: 1.0},
	},
	"retarget": {
		AngularFrequency: 6.0, DampingRatio: 0.4, Dt: 0.01, Duration: 6.0,
		InitState: InitStateConfig{Position: 0.0},
		Retargets: []RetargetConfig{{Time: 0, Equilibrium: 1}, {Time: 2, Equilibrium: -1}, {Time: 4, Equilibrium: 0.5}},
	},
	"free": {
		AngularFrequency: 0.0, DampingRatio: 0.0, Dt: 0.01, Duration: 2.0,
		InitState: InitStateConfig{Position: 0.0, Velocity: 1.0},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or
// nil when it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	if cfg.Precision == "" {
		cfg.Precision = DefaultPrecision
	}
	if cfg.Method == "" {
		cfg.Method = DefaultMethod
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
