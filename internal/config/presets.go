package config

var Presets = map[string]*Config{
	"zen": {
		Theme: "sumi", FPS: 30,
		Audio: AudioConfig{Enabled: true, Volume: 0.3},
		Pulse: PulseConfig{
			Count: 16, PeriodSeconds: 5.0,
			TurnoverSeconds: 2.0, TurnoverCount: 2,
			MinOpacity: 0.3, MaxOpacity: 0.9,
		},
	},
	"ripple": {
		Theme: "mizu", FPS: 60,
		Audio: AudioConfig{Enabled: true, Volume: 0.5},
		Pulse: PulseConfig{
			Count: 32, PeriodSeconds: 2.0,
			TurnoverSeconds: 0.8, TurnoverCount: 6,
			MinOpacity: 0.15, MaxOpacity: 1.0,
		},
	},
	"storm": {
		Theme: "momiji", FPS: 60, Expand: true,
		Audio: AudioConfig{Enabled: true, Volume: 0.7},
		Pulse: PulseConfig{
			Count: 48, PeriodSeconds: 1.0,
			TurnoverSeconds: 0.4, TurnoverCount: 10,
			MinOpacity: 0.1, MaxOpacity: 1.0,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil. Callers own the copy
// and may layer overrides onto it.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
