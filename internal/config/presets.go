package config

var Presets = map[string]map[string]*Config{
	"steel01": {
		"mild": {
			Material:       "steel01",
			MaterialParams: map[string]float64{"fy": 250, "e": 200000, "b": 0.01},
			Protocol:       "asce41", MaxAmplitude: 0.02, Points: 2000,
		},
		"grade60": {
			Material:       "steel01",
			MaterialParams: map[string]float64{"fy": 420, "e": 200000, "b": 0.01},
			Protocol:       "asce41", MaxAmplitude: 0.02, Points: 2000,
		},
		"highstrength": {
			Material:       "steel01",
			MaterialParams: map[string]float64{"fy": 690, "e": 200000, "b": 0.02},
			Protocol:       "atc24", MaxAmplitude: 0.03, Points: 2000,
		},
		"brittle": {
			Material:       "steel01",
			MaterialParams: map[string]float64{"fy": 420, "e": 200000, "b": 0.01, "max_strain": 0.015},
			Protocol:       "asce41", MaxAmplitude: 0.02, Points: 2000,
		},
	},
	"concrete01": {
		"unconfined": {
			Material:       "concrete01",
			MaterialParams: map[string]float64{"fpc": -30, "epsc0": -0.002, "fpcu": -6, "epsu": -0.006},
			Protocol:       "asce41", MaxAmplitude: 0.006, Points: 2000,
		},
		"confined": {
			Material:       "concrete01",
			MaterialParams: map[string]float64{"fpc": -35, "epsc0": -0.004, "fpcu": -30, "epsu": -0.014},
			Protocol:       "asce41", MaxAmplitude: 0.012, Points: 2000,
		},
		"highstrength": {
			Material:       "concrete01",
			MaterialParams: map[string]float64{"fpc": -60, "epsc0": -0.0025, "fpcu": -12, "epsu": -0.005},
			Protocol:       "fema461", MaxAmplitude: 0.005, Alpha: 0.62, Points: 2000,
		},
	},
	"concrete02": {
		"unconfined": {
			Material: "concrete02",
			MaterialParams: map[string]float64{
				"fpc": -30, "epsc0": -0.002, "fpcu": -6, "epsu": -0.006,
				"ft": 3.0, "ets": 1500,
			},
			Protocol: "asce41", MaxAmplitude: 0.006, Points: 2000,
		},
		"confined": {
			Material: "concrete02",
			MaterialParams: map[string]float64{
				"fpc": -35, "epsc0": -0.004, "fpcu": -30, "epsu": -0.014,
				"ft": 3.5, "ets": 1750,
			},
			Protocol: "asce41", MaxAmplitude: 0.012, Points: 2000,
		},
	},
	"elastic": {
		"steel": {
			Material:       "elastic",
			MaterialParams: map[string]float64{"e": 200000},
			Protocol:       "atc24", MaxAmplitude: 0.01, Points: 1000,
		},
	},
}

func GetPreset(material, preset string) *Config {
	materialPresets, ok := Presets[material]
	if !ok {
		return nil
	}
	cfg, ok := materialPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(material string) []string {
	materialPresets, ok := Presets[material]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(materialPresets))
	for name := range materialPresets {
		names = append(names, name)
	}
	return names
}
