package config

import (
	"sort"

	"github.com/san-kum/dragsim/internal/sim"
)

var Presets = map[string]sim.Params{
	"drop":       {Height: 100, Speed: 0, Angle: 0, Drag: 0},
	"classic":    {Height: 10, Speed: 20, Angle: 45, Drag: 0},
	"lob":        {Height: 2, Speed: 35, Angle: 70, Drag: 0.05},
	"cliff":      {Height: 80, Speed: 15, Angle: 0, Drag: 0.1},
	"heavy_drag": {Height: 10, Speed: 30, Angle: 45, Drag: 5},
	"feather":    {Height: 60, Speed: 5, Angle: 80, Drag: 2},
}

// GetPreset returns the defaults with the named launch parameters, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
