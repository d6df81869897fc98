package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dampsim/internal/dynamo"
	"github.com/san-kum/dampsim/internal/physics"
	"github.com/san-kum/dampsim/spring"
)

const (
	DefaultAngularFrequency = 5.0
	DefaultDampingRatio     = 0.5
	DefaultDt               = 0.01
	DefaultDuration         = 5.0
	DefaultPosition         = 1.0
	DefaultPrecision        = "float64"
	DefaultMethod           = "closedform"
)

type Config struct {
	AngularFrequency float64          `yaml:"angular_frequency"`
	DampingRatio     float64          `yaml:"damping_ratio"`
	Precision        string           `yaml:"precision"`
	Method           string           `yaml:"method"`
	Dt               float64          `yaml:"dt"`
	Duration         float64          `yaml:"duration"`
	InitState        InitStateConfig  `yaml:"init_state"`
	Retargets        []RetargetConfig `yaml:"retargets,omitempty"`
	Equilibriums     []float64        `yaml:"equilibriums,omitempty"`
	Physical         *PhysicalConfig  `yaml:"physical,omitempty"`
}

// PhysicalConfig gives the spring as mass, stiffness and damping. When
// present it overrides angular_frequency and damping_ratio.
type PhysicalConfig struct {
	Mass      float64 `yaml:"mass"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

type InitStateConfig struct {
	Position    float64 `yaml:"position"`
	Velocity    float64 `yaml:"velocity"`
	Equilibrium float64 `yaml:"equilibrium"`
}

type RetargetConfig struct {
	Time        float64 `yaml:"time"`
	Equilibrium float64 `yaml:"equilibrium"`
}

func DefaultConfig() *Config {
	return &Config{
		AngularFrequency: DefaultAngularFrequency,
		DampingRatio:     DefaultDampingRatio,
		Precision:        DefaultPrecision,
		Method:           DefaultMethod,
		Dt:               DefaultDt,
		Duration:         DefaultDuration,
		InitState: InitStateConfig{
			Position: DefaultPosition,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.ApplyPhysical(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the spring parameters with the spring package and the run
// settings against the simulator's requirements.
func (c *Config) Validate() error {
	if _, err := c.Spring(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidRunConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrInvalidRunConfig, c.Duration)
	}
	switch c.Precision {
	case "", "float32", "float64":
	default:
		return fmt.Errorf("%w: unknown precision %q", dynamo.ErrInvalidRunConfig, c.Precision)
	}
	for _, r := range c.Retargets {
		if r.Time < 0 {
			return fmt.Errorf("%w: retarget time must be non-negative, got %f", dynamo.ErrInvalidRunConfig, r.Time)
		}
	}
	return nil
}

// ApplyPhysical derives the angular frequency and damping ratio from the
// physical block, if any.
func (c *Config) ApplyPhysical() error {
	if c.Physical == nil {
		return nil
	}
	osc, err := c.SpringMass().Oscillator()
	if err != nil {
		return err
	}
	c.AngularFrequency, c.DampingRatio = osc.AngularFrequency, osc.DampingRatio
	return nil
}

// SpringMass returns the physical block, or the unit-mass spring with this
// angular frequency and damping ratio when there is none.
func (c *Config) SpringMass() *physics.SpringMass {
	if c.Physical != nil {
		return &physics.SpringMass{Mass: c.Physical.Mass, Stiffness: c.Physical.Stiffness, Damping: c.Physical.Damping}
	}
	osc := physics.NewDampedOscillator(c.AngularFrequency, c.DampingRatio)
	return physics.FromOscillator(osc, physics.DefaultMass)
}

// InitialEnergy is the mechanical energy in joules of the initial state,
// measured from the initial equilibrium.
func (c *Config) InitialEnergy() float64 {
	offset := c.InitState.Position - c.InitState.Equilibrium
	return c.SpringMass().Energy(dynamo.State{offset, c.InitState.Velocity})
}

func (c *Config) Spring() (spring.Config[float64], error) {
	return spring.NewConfig(c.AngularFrequency, c.DampingRatio)
}

// PrecisionOrDefault returns the configured width, float64 when unset.
func (c *Config) PrecisionOrDefault() string {
	if c.Precision == "" {
		return DefaultPrecision
	}
	return c.Precision
}

// Clone returns a deep copy, so presets can be handed out safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Retargets = append([]RetargetConfig(nil), c.Retargets...)
	out.Equilibriums = append([]float64(nil), c.Equilibriums...)
	if c.Physical != nil {
		p := *c.Physical
		out.Physical = &p
	}
	return &out
}
