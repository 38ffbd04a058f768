package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/dragsim/internal/analysis"
	"github.com/san-kum/dragsim/internal/config"
	"github.com/san-kum/dragsim/internal/export"
	"github.com/san-kum/dragsim/internal/render"
	"github.com/san-kum/dragsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of launches on one surface.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Surface     sim.Surface    `yaml:"surface"`
	MaxDuration float64        `yaml:"max_duration"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one launch. Params override the preset field by field.
type ScenarioStep struct {
	Name   string             `yaml:"name"`
	Preset string             `yaml:"preset"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
}

// Outcome is the result of one step.
type Outcome struct {
	Step    string
	Result  *sim.Result
	Summary analysis.Summary
}

// LoadScenario loads a scenario from a YAML file. A missing surface or
// duration falls back to the defaults.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	def := config.DefaultConfig()
	scenario := Scenario{
		Surface:     def.Surface,
		MaxDuration: def.MaxDuration,
	}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// StepParams resolves the launch of one step.
func StepParams(step ScenarioStep) (sim.Params, error) {
	p := config.DefaultConfig().Params
	if step.Preset != "" {
		cfg := config.GetPreset(step.Preset)
		if cfg == nil {
			return sim.Params{}, fmt.Errorf("unknown preset: %s", step.Preset)
		}
		p = cfg.Params
	}
	for k, v := range step.Params {
		if err := p.Set(k, v); err != nil {
			return sim.Params{}, err
		}
	}
	return p, p.Validate()
}

// RunScenario executes all steps in order and stops at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenario.Steps))
	rc := sim.RunConfig{MaxDuration: scenario.MaxDuration}

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name)

		p, err := StepParams(step)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := sim.Run(ctx, p, scenario.Surface, rc)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if step.SaveAs != "" {
			if err := save(step.SaveAs, result); err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
			logger.Debug("saved step", "name", name, "path", step.SaveAs)
		}

		outcomes = append(outcomes, Outcome{
			Step:    name,
			Result:  result,
			Summary: analysis.Summarize(result),
		})
	}

	return outcomes, nil
}

// save picks the export format from the file extension.
func save(path string, result *sim.Result) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = func(w io.Writer) error { return export.WriteCSV(w, result) }
	case ".json":
		write = func(w io.Writer) error { return export.WriteJSON(w, result) }
	case ".svg":
		write = func(w io.Writer) error { return export.WriteSVG(w, render.Build(result.Final, result.Surface)) }
	case ".png":
		write = func(w io.Writer) error { return export.WritePNG(w, result, 6, 4) }
	default:
		return fmt.Errorf("unsupported export format: %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParameterSweep runs the same launch across a range of one parameter.
type ParameterSweep struct {
	Base        sim.Params
	Surface     sim.Surface
	MaxDuration float64
	ParamName   string
	ParamMin    float64
	ParamMax    float64
	NumSteps    int
}

// SweepResult holds the summary of one sweep point.
type SweepResult struct {
	ParamValue float64
	Summary    analysis.Summary
}

// RunSweep executes a parameter sweep.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	probe := sweep.Base
	if err := probe.Set(sweep.ParamName, sweep.ParamMin); err != nil {
		return nil, err
	}

	rc := sim.RunConfig{MaxDuration: sweep.MaxDuration}
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		p := sweep.Base
		p.Set(sweep.ParamName, paramVal)

		result, err := sim.Run(ctx, p, sweep.Surface, rc)
		if err != nil {
			return results, err
		}
		results = append(results, SweepResult{
			ParamValue: paramVal,
			Summary:    analysis.Summarize(result),
		})
	}

	return results, nil
}
