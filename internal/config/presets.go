package config

// Presets are named classroom scenarios per circuit. Each preset is a full
// config so a lesson can be reproduced with one flag.
var Presets = map[string]map[string]*Config{
	"electric": {
		"trickle": {
			Circuit: "electric", FPS: DefaultFPS, Measure: true,
			Params: ParamsConfig{Voltage: 10, WireWidth: 50},
		},
		"standard": {
			Circuit: "electric", FPS: DefaultFPS, Measure: true,
			Params: ParamsConfig{Voltage: 50, WireWidth: 50},
		},
		"surge": {
			Circuit: "electric", FPS: DefaultFPS, Measure: true,
			Params: ParamsConfig{Voltage: 90, WireWidth: 80},
		},
		"thin_wire": {
			Circuit: "electric", FPS: DefaultFPS, Measure: true,
			Params: ParamsConfig{Voltage: 50, WireWidth: 10},
		},
	},
	"water": {
		"gentle": {
			Circuit: "water", FPS: DefaultFPS, Measure: true,
			Params: ParamsConfig{HeightDifference: 15, PipeWidth: 50},
		},
		"torrent": {
			Circuit: "water", FPS: DefaultFPS, Measure: true,
			Params: ParamsConfig{HeightDifference: 95, PipeWidth: 90},
		},
		"narrow_pipe": {
			Circuit: "water", FPS: DefaultFPS, Measure: true,
			Params: ParamsConfig{HeightDifference: 50, PipeWidth: 15},
		},
	},
	"playground": {
		"lazy": {
			Circuit: "playground", FPS: DefaultFPS, Measure: true,
			Params: ParamsConfig{SlideHeight: 20, SlideWidth: 50},
		},
		"recess": {
			Circuit: "playground", FPS: DefaultFPS, Measure: true,
			Params: ParamsConfig{SlideHeight: 80, SlideWidth: 80},
		},
	},
}

func GetPreset(circuit, preset string) *Config {
	circuitPresets, ok := Presets[circuit]
	if !ok {
		return nil
	}
	cfg, ok := circuitPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(circuit string) []string {
	circuitPresets, ok := Presets[circuit]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(circuitPresets))
	for name := range circuitPresets {
		names = append(names, name)
	}
	return names
}
