package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowlab/flowlab/internal/flow"
)

const (
	DefaultFPS              = 30
	DefaultVoltage          = 50.0
	DefaultWireWidth        = 50.0
	DefaultHeightDifference = 50.0
	DefaultPipeWidth        = 50.0
	DefaultSlideHeight      = 50.0
	DefaultSlideWidth       = 50.0
)

type Config struct {
	Circuit string       `yaml:"circuit"`
	FPS     int          `yaml:"fps"`
	Count   int          `yaml:"count"`
	Measure bool         `yaml:"measure"`
	Params  ParamsConfig `yaml:"params"`
}

// ParamsConfig carries the slider values for every circuit; Apply picks the
// pair belonging to the configured circuit.
type ParamsConfig struct {
	Voltage          float64 `yaml:"voltage"`
	WireWidth        float64 `yaml:"wire_width"`
	HeightDifference float64 `yaml:"height_difference"`
	PipeWidth        float64 `yaml:"pipe_width"`
	SlideHeight      float64 `yaml:"slide_height"`
	SlideWidth       float64 `yaml:"slide_width"`
}

func DefaultConfig() *Config {
	return &Config{
		Circuit: "electric",
		FPS:     DefaultFPS,
		Measure: true,
		Params: ParamsConfig{
			Voltage:          DefaultVoltage,
			WireWidth:        DefaultWireWidth,
			HeightDifference: DefaultHeightDifference,
			PipeWidth:        DefaultPipeWidth,
			SlideHeight:      DefaultSlideHeight,
			SlideWidth:       DefaultSlideWidth,
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

// CircuitParams returns the parameter map for the named circuit.
func (c *Config) CircuitParams(circuit string) map[string]float64 {
	switch circuit {
	case "electric":
		return map[string]float64{
			"voltage":   c.Params.Voltage,
			"wireWidth": c.Params.WireWidth,
		}
	case "water":
		return map[string]float64{
			"heightDifference": c.Params.HeightDifference,
			"pipeWidth":        c.Params.PipeWidth,
		}
	case "playground":
		return map[string]float64{
			"slideHeight": c.Params.SlideHeight,
			"slideWidth":  c.Params.SlideWidth,
		}
	default:
		return nil
	}
}

// Apply pushes the configured slider values onto the circuit. Values outside
// a parameter's bounds surface as errors rather than being clamped silently.
func (c *Config) Apply(circuit flow.Circuit) error {
	for name, value := range c.CircuitParams(circuit.Name()) {
		if err := circuit.SetParam(name, value); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}
