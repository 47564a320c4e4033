package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects which sandbox simulation a session runs. The modes are
// data-driven configurations of one engine, not separate engines.
type Mode string

const (
	ModeOrbit     Mode = "orbit"
	ModeBallistic Mode = "ballistic"
	ModeCollision Mode = "collision"
	ModeSettling  Mode = "settling"
)

// Modes lists all selectable modes in menu order.
func Modes() []Mode {
	return []Mode{ModeOrbit, ModeBallistic, ModeCollision, ModeSettling}
}

var (
	// ErrUnknownMode indicates a mode name outside the fixed set.
	ErrUnknownMode = errors.New("config: unknown mode")

	// ErrInvalid indicates a config value outside its valid range.
	ErrInvalid = errors.New("config: invalid value")
)

// ParseMode resolves a mode name, accepting the aliases the menu uses.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "orbit", "orbital", "solar":
		return ModeOrbit, nil
	case "ballistic", "projectile", "cannon":
		return ModeBallistic, nil
	case "collision", "balls":
		return ModeCollision, nil
	case "settling", "viscosity", "fluids":
		return ModeSettling, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultMaxDt  = 0.25

	DefaultOrbitGravity     = 0.1
	DefaultSunMass          = 10000.0
	DefaultTimeScale        = 15.0
	DefaultProjGravity      = 500.0
	DefaultLaunchScale      = 4.0
	DefaultMaxLaunchSpeed   = 1000.0
	DefaultRestitution      = 0.8
	DefaultThrowScale       = 5.0
	DefaultBallCount        = 10
	DefaultSettlingGravity  = 500.0
	DefaultSettlingWidth    = 1280.0
	DefaultSettlingHeight   = 720.0
)

// Config carries every tunable of a session. One section per mode plus
// the shared world box; the Mode field selects which section applies.
// Immutable once a session is constructed from it.
type Config struct {
	Mode      Mode            `yaml:"mode"`
	Seed      int64           `yaml:"seed"`
	MaxDt     float64         `yaml:"max_dt"`
	World     WorldConfig     `yaml:"world"`
	Orbit     OrbitConfig     `yaml:"orbit"`
	Ballistic BallisticConfig `yaml:"ballistic"`
	Collision CollisionConfig `yaml:"collision"`
	Settling  SettlingConfig  `yaml:"settling"`
}

// WorldConfig is the window-sized box all modes simulate inside.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type OrbitConfig struct {
	Gravity   float64        `yaml:"gravity"`
	SunMass   float64        `yaml:"sun_mass"`
	SunRadius float64        `yaml:"sun_radius"`
	TimeScale float64        `yaml:"time_scale"`
	Planets   []PlanetConfig `yaml:"planets"`
}

type PlanetConfig struct {
	Name        string  `yaml:"name"`
	Radius      float64 `yaml:"radius"`
	OrbitRadius float64 `yaml:"orbit_radius"`
	Ringed      bool    `yaml:"ringed"`
	Striped     bool    `yaml:"striped"`
}

type BallisticConfig struct {
	Gravity        float64 `yaml:"gravity"`
	GroundHeight   float64 `yaml:"ground_height"`
	CannonX        float64 `yaml:"cannon_x"`
	CannonLength   float64 `yaml:"cannon_length"`
	CannonWidth    float64 `yaml:"cannon_width"`
	BallRadius     float64 `yaml:"ball_radius"`
	LaunchScale    float64 `yaml:"launch_scale"`
	MaxSpeed       float64 `yaml:"max_speed"`
	MuzzleOffset   float64 `yaml:"muzzle_offset"`
	PauseSecs      float64 `yaml:"pause_secs"`
	ShowSecs       float64 `yaml:"show_secs"`
	PreviewStep    float64 `yaml:"preview_step"`
	PreviewHorizon float64 `yaml:"preview_horizon"`
}

type CollisionConfig struct {
	Restitution float64 `yaml:"restitution"`
	BallRadius  float64 `yaml:"ball_radius"`
	BallCount   int     `yaml:"ball_count"`
	ThrowScale  float64 `yaml:"throw_scale"`
	Inset       float64 `yaml:"inset"`
	SpawnMargin float64 `yaml:"spawn_margin"`
}

type SettlingConfig struct {
	Gravity         float64       `yaml:"gravity"`
	Fluids          []FluidConfig `yaml:"fluids"`
	ContainerWidth  float64       `yaml:"container_width"`
	ContainerHeight float64       `yaml:"container_height"`
	Spacing         float64       `yaml:"spacing"`
	GroundHeight    float64       `yaml:"ground_height"`
	BallRadius      float64       `yaml:"ball_radius"`
	WaveSpeed       float64       `yaml:"wave_speed"`
}

// FluidConfig is one settling column: a named fluid and its linear
// drag coefficient.
type FluidConfig struct {
	Name      string  `yaml:"name"`
	Viscosity float64 `yaml:"viscosity"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:  ModeCollision,
		MaxDt: DefaultMaxDt,
		World: WorldConfig{Width: DefaultWidth, Height: DefaultHeight},
		Orbit: OrbitConfig{
			Gravity:   DefaultOrbitGravity,
			SunMass:   DefaultSunMass,
			SunRadius: 60,
			TimeScale: DefaultTimeScale,
			Planets: []PlanetConfig{
				{Name: "Earth", Radius: 15, OrbitRadius: 200, Striped: true},
				{Name: "Saturn", Radius: 20, OrbitRadius: 300, Ringed: true},
			},
		},
		Ballistic: BallisticConfig{
			Gravity:        DefaultProjGravity,
			GroundHeight:   4,
			CannonX:        50,
			CannonLength:   50,
			CannonWidth:    20,
			BallRadius:     8,
			LaunchScale:    DefaultLaunchScale,
			MaxSpeed:       DefaultMaxLaunchSpeed,
			MuzzleOffset:   50,
			PauseSecs:      2,
			ShowSecs:       4,
			PreviewStep:    0.1,
			PreviewHorizon: 2,
		},
		Collision: CollisionConfig{
			Restitution: DefaultRestitution,
			BallRadius:  15,
			BallCount:   DefaultBallCount,
			ThrowScale:  DefaultThrowScale,
			Inset:       50,
			SpawnMargin: 20,
		},
		Settling: SettlingConfig{
			Gravity: DefaultSettlingGravity,
			Fluids: []FluidConfig{
				{Name: "Water", Viscosity: 5},
				{Name: "Alcohol", Viscosity: 8},
				{Name: "Oil", Viscosity: 15},
				{Name: "Honey", Viscosity: 50},
				{Name: "Glycerine", Viscosity: 30},
			},
			ContainerWidth:  150,
			ContainerHeight: 400,
			Spacing:         100,
			GroundHeight:    300,
			BallRadius:      10,
			WaveSpeed:       2,
		},
	}
}

// DefaultFor is DefaultConfig pinned to one mode. The settling columns
// need a wider world than the other modes, so that mode bumps the box.
func DefaultFor(mode Mode) *Config {
	cfg := DefaultConfig()
	cfg.Mode = mode
	if mode == ModeSettling {
		cfg.World = WorldConfig{Width: DefaultSettlingWidth, Height: DefaultSettlingHeight}
	}
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate rejects configs a session cannot run. Sections of inactive
// modes are not checked; switching modes revalidates.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world %gx%g", ErrInvalid, c.World.Width, c.World.Height)
	}
	if c.MaxDt <= 0 {
		return fmt.Errorf("%w: max_dt %g", ErrInvalid, c.MaxDt)
	}
	switch c.Mode {
	case ModeOrbit:
		if c.Orbit.SunMass <= 0 || c.Orbit.Gravity <= 0 {
			return fmt.Errorf("%w: orbit gravity %g sun mass %g", ErrInvalid, c.Orbit.Gravity, c.Orbit.SunMass)
		}
		for _, p := range c.Orbit.Planets {
			if p.Radius <= 0 || p.OrbitRadius <= 0 {
				return fmt.Errorf("%w: planet %q radius %g orbit %g", ErrInvalid, p.Name, p.Radius, p.OrbitRadius)
			}
		}
	case ModeBallistic:
		b := c.Ballistic
		if b.Gravity <= 0 || b.BallRadius <= 0 || b.LaunchScale <= 0 || b.MaxSpeed <= 0 {
			return fmt.Errorf("%w: ballistic section", ErrInvalid)
		}
		if b.PreviewStep <= 0 || b.PreviewHorizon <= 0 {
			return fmt.Errorf("%w: preview step %g horizon %g", ErrInvalid, b.PreviewStep, b.PreviewHorizon)
		}
	case ModeCollision:
		col := c.Collision
		if col.Restitution < 0 || col.Restitution > 1 {
			return fmt.Errorf("%w: restitution %g", ErrInvalid, col.Restitution)
		}
		if col.BallRadius <= 0 || col.BallCount <= 0 || col.ThrowScale <= 0 {
			return fmt.Errorf("%w: collision section", ErrInvalid)
		}
	case ModeSettling:
		s := c.Settling
		if s.Gravity <= 0 || s.BallRadius <= 0 || len(s.Fluids) == 0 {
			return fmt.Errorf("%w: settling section", ErrInvalid)
		}
		for _, f := range s.Fluids {
			if f.Viscosity <= 0 {
				return fmt.Errorf("%w: fluid %q viscosity %g", ErrInvalid, f.Name, f.Viscosity)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}
	return nil
}
