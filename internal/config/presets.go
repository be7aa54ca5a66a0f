package config

var Presets = map[string]*Config{
	"disk": {
		Bodies: 256, Dt: 0.001, Duration: 10.0, Seed: 42,
		G: 1.0, Softening: 0.1, CentralMass: 100.0,
		Scale: 10.0, BodyMass: 0.01,
	},
	"dense": {
		Bodies: 1024, Dt: 0.0005, Duration: 5.0, Seed: 42,
		G: 1.0, Softening: 0.1, CentralMass: 500.0,
		Scale: 8.0, BodyMass: 0.02, SampleEvery: 10,
	},
	"sparse": {
		Bodies: 64, Dt: 0.002, Duration: 30.0, Seed: 7,
		G: 1.0, Softening: 0.05, CentralMass: 100.0,
		Scale: 20.0, BodyMass: 0.005,
	},
	"heavy": {
		Bodies: 256, Dt: 0.0005, Duration: 10.0, Seed: 1,
		G: 1.0, Softening: 0.2, CentralMass: 100.0,
		Scale: 10.0, BodyMass: 0.5, Validate: true,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
