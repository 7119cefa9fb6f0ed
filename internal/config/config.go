// Package config loads the demo settings. Defaults are embedded; a YAML file
// may override any subset of them.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Demo struct {
	// Canvas is the id of the HTML canvas element to draw into.
	Canvas string `yaml:"canvas"`
	// Clear is the RGBA background color.
	Clear [4]float32 `yaml:"clear"`
	// LogEvery logs timing statistics every LogEvery frames; 0 disables it.
	LogEvery         uint64 `yaml:"log_every"`
	InstanceCapacity int    `yaml:"instance_capacity"`
	Grid             Grid   `yaml:"grid"`
	Window           Window `yaml:"window"`
}

type Grid struct {
	Columns int     `yaml:"columns"`
	Rows    int     `yaml:"rows"`
	Margin  float32 `yaml:"margin"`
	Depth   float32 `yaml:"depth"`
	Scale   float32 `yaml:"scale"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// Default returns the embedded defaults.
func Default() Demo {
	var d Demo
	if err := yaml.Unmarshal(defaultYAML, &d); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return d
}

// Parse overlays data on the defaults and validates the result.
func Parse(data []byte) (Demo, error) {
	d := Default()
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Demo{}, fmt.Errorf("config: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Demo{}, err
	}
	return d, nil
}

// Load reads path and overlays it on the defaults. An empty path yields the
// defaults.
func Load(path string) (Demo, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Demo{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

func (d Demo) Validate() error {
	var errs []error
	if d.Grid.Columns <= 0 || d.Grid.Rows <= 0 {
		errs = append(errs, fmt.Errorf("grid must have positive columns and rows, got %dx%d", d.Grid.Columns, d.Grid.Rows))
	}
	if d.Grid.Margin <= 0 || d.Grid.Margin > 1 {
		errs = append(errs, fmt.Errorf("grid margin %v outside (0, 1]", d.Grid.Margin))
	}
	if d.InstanceCapacity < 0 {
		errs = append(errs, fmt.Errorf("negative instance capacity %d", d.InstanceCapacity))
	}
	if d.Window.Width <= 0 || d.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", d.Window.Width, d.Window.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
