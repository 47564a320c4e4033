package config

func preset(mode Mode, tweak func(*Config)) *Config {
	cfg := DefaultFor(mode)
	tweak(cfg)
	return cfg
}

var Presets = map[Mode]map[string]*Config{
	ModeOrbit: {
		"classic": preset(ModeOrbit, func(c *Config) {}),
		"rapid": preset(ModeOrbit, func(c *Config) {
			c.Orbit.TimeScale = 45
		}),
		"heavy-sun": preset(ModeOrbit, func(c *Config) {
			c.Orbit.SunMass = 25000
		}),
	},
	ModeBallistic: {
		"standard": preset(ModeBallistic, func(c *Config) {}),
		"lunar": preset(ModeBallistic, func(c *Config) {
			c.Ballistic.Gravity = 80
		}),
		"cannonade": preset(ModeBallistic, func(c *Config) {
			c.Ballistic.LaunchScale = 8
			c.Ballistic.MaxSpeed = 1500
		}),
	},
	ModeCollision: {
		"standard": preset(ModeCollision, func(c *Config) {}),
		"bouncy": preset(ModeCollision, func(c *Config) {
			c.Collision.Restitution = 0.95
		}),
		"deadball": preset(ModeCollision, func(c *Config) {
			c.Collision.Restitution = 0.2
		}),
		"crowded": preset(ModeCollision, func(c *Config) {
			c.Collision.BallCount = 24
		}),
	},
	ModeSettling: {
		"kitchen": preset(ModeSettling, func(c *Config) {}),
		"syrup": preset(ModeSettling, func(c *Config) {
			for i := range c.Settling.Fluids {
				c.Settling.Fluids[i].Viscosity *= 3
			}
		}),
	},
}

func GetPreset(mode Mode, name string) *Config {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	cfg, ok := modePresets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(mode Mode) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	return names
}
