package config

import "sort"

var Presets = map[string]map[string]*Config{
	"cubic_sine": {
		"coarse": {
			Equation: "cubic_sine", Method: "euler", X0: 0, T0: 0, T1: 10, Points: 20,
		},
		"fine": {
			Equation: "cubic_sine", Method: "euler", X0: 0, T0: 0, T1: 10, Points: 1000,
		},
		"short": {
			Equation: "cubic_sine", Method: "rk4", X0: 0, T0: 0, T1: 5, Points: 5,
		},
	},
	"decay": {
		"unit": {
			Equation: "decay", Method: "rk4", X0: 1, T0: 0, T1: 1, Points: 11,
		},
		"stiffish": {
			Equation: "decay", Method: "euler", X0: 1, T0: 0, T1: 5, Points: 11,
			Params: map[string]float64{"k": 5},
		},
	},
	"logistic": {
		"growth": {
			Equation: "logistic", Method: "rk4", X0: 0.1, T0: 0, T1: 10, Points: 101,
			Params: map[string]float64{"r": 1, "cap": 1},
		},
	},
	"constant": {
		"ramp": {
			Equation: "constant", Method: "euler", X0: 0, T0: 0, T1: 3, Points: 4,
		},
	},
	"zero": {
		"flat": {
			Equation: "zero", Method: "rk2", X0: 5, T0: 0, T1: 2, Points: 3,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(equation, preset string) *Config {
	eqPresets, ok := Presets[equation]
	if !ok {
		return nil
	}
	cfg, ok := eqPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(equation string) []string {
	eqPresets, ok := Presets[equation]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(eqPresets))
	for name := range eqPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
