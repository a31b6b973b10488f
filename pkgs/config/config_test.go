package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastsatsolver/fss/pkgs/errors"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	v := viper.New()
	v.Set("input-file", "problem.sat")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "problem.sat", cfg.InputFile)
	assert.False(t, cfg.BlindSolver)
	assert.Equal(t, 10, cfg.StepWidth)
	assert.Equal(t, 1, cfg.MinCountOfSolutions)
	assert.Equal(t, 30*time.Second, cfg.MaxTimePerRun)
	assert.Equal(t, uint(64), cfg.GA.PopSize)
}

func TestLoad_MissingInputFileFailsValidation(t *testing.T) {
	v := viper.New()
	_, err := Load(v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDomain))
}

func TestLoad_InvalidDurationFails(t *testing.T) {
	v := viper.New()
	v.Set("input-file", "problem.sat")
	v.Set("max-time-per-run", "not-a-duration")

	_, err := Load(v)
	require.Error(t, err)
}

func TestLoad_ExplicitValuesOverrideDefaults(t *testing.T) {
	v := viper.New()
	v.Set("input-file", "problem.sat")
	v.Set("blind-solver", true)
	v.Set("step-width", 4)
	v.Set("ga-seed", "fixed")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.True(t, cfg.BlindSolver)
	assert.Equal(t, 4, cfg.StepWidth)
	assert.Equal(t, "fixed", cfg.GA.Seed)
}
