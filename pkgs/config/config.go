// Package config loads and validates the harness configuration table from
// spec.md §6: flags, environment variables and an optional config file,
// layered through spf13/viper, then checked against a JSON Schema with
// santhosh-tekuri/jsonschema/v5 before any solver is constructed.
package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"

	"github.com/fastsatsolver/fss/pkgs/errors"
	"github.com/fastsatsolver/fss/pkgs/solver/evolutionary"
)

// Config mirrors the configuration table of spec.md §6.
type Config struct {
	InputFile           string
	BlindSolver         bool
	StepWidth           int
	MinCountOfSolutions int
	MaxCountOfSolutions int
	MaxCountOfRuns      int
	MaxTimePerRun       time.Duration
	TermUponConvergence bool
	GA                  evolutionary.GAParams
	ExportFormat        string
	ExportFile          string
}

const schemaDoc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "input-file":              {"type": "string", "minLength": 1},
    "blind-solver":             {"type": "boolean"},
    "step-width":              {"type": "integer", "minimum": 1, "maximum": 30},
    "min-solutions":           {"type": "integer", "minimum": 0},
    "max-solutions":           {"type": "integer", "minimum": 0},
    "max-runs":                {"type": "integer", "minimum": 0},
    "max-time-per-run":        {"type": "string", "minLength": 1},
    "term-upon-convergence":   {"type": "boolean"},
    "ga-pop-size":             {"type": "integer", "minimum": 1},
    "ga-mutation-rate":        {"type": "number", "minimum": 0, "maximum": 1},
    "ga-crossover-rate":       {"type": "number", "minimum": 0, "maximum": 1},
    "ga-seed":                 {"type": "string"},
    "export-format":           {"type": "string", "enum": ["", "cbor", "yaml"]},
    "export-file":             {"type": "string", "minLength": 1}
  },
  "required": ["input-file"]
}`

const schemaResourceURL = "fss://config-schema.json"

// Load layers flags (via an already-populated *viper.Viper, normally bound
// to cobra flags by cmd/fss), environment variables (FSS_ prefixed) and
// an optional config file, validates the merged document against
// schemaDoc, and decodes it into a Config.
func Load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("FSS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("blind-solver", false)
	v.SetDefault("step-width", 10)
	v.SetDefault("min-solutions", 1)
	v.SetDefault("max-solutions", 0)
	v.SetDefault("max-runs", 1)
	v.SetDefault("max-time-per-run", "30s")
	v.SetDefault("term-upon-convergence", false)
	v.SetDefault("ga-pop-size", 64)
	v.SetDefault("ga-mutation-rate", 0.05)
	v.SetDefault("ga-crossover-rate", 0.7)
	v.SetDefault("ga-seed", "")
	v.SetDefault("export-format", "")
	v.SetDefault("export-file", "-")

	if err := validate(v.AllSettings()); err != nil {
		return nil, errors.Wrap(errors.ErrDomain, "configuration failed schema validation", err)
	}

	maxTimePerRun, err := time.ParseDuration(v.GetString("max-time-per-run"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDomain, "invalid max-time-per-run", err)
	}

	return &Config{
		InputFile:           v.GetString("input-file"),
		BlindSolver:         v.GetBool("blind-solver"),
		StepWidth:           v.GetInt("step-width"),
		MinCountOfSolutions: v.GetInt("min-solutions"),
		MaxCountOfSolutions: v.GetInt("max-solutions"),
		MaxCountOfRuns:      v.GetInt("max-runs"),
		MaxTimePerRun:       maxTimePerRun,
		TermUponConvergence: v.GetBool("term-upon-convergence"),
		GA: evolutionary.GAParams{
			PopSize:             uint(v.GetInt("ga-pop-size")),
			MutationRate:        v.GetFloat64("ga-mutation-rate"),
			CrossoverRate:       v.GetFloat64("ga-crossover-rate"),
			TermUponConvergence: v.GetBool("term-upon-convergence"),
			Seed:                v.GetString("ga-seed"),
		},
		ExportFormat: v.GetString("export-format"),
		ExportFile:   v.GetString("export-file"),
	}, nil
}

// validate checks doc against schemaDoc. santhosh-tekuri/jsonschema/v5
// expects values produced by encoding/json's decoder (json.Number/float64
// for numbers, not Go-native int), so doc is round-tripped through
// encoding/json with UseNumber before being handed to the validator,
// rather than passed as the raw map viper.AllSettings() returns.
func validate(doc map[string]interface{}) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResourceURL, strings.NewReader(schemaDoc)); err != nil {
		return err
	}
	schema, err := compiler.Compile(schemaResourceURL)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var normalized interface{}
	if err := dec.Decode(&normalized); err != nil {
		return err
	}

	return schema.Validate(normalized)
}
