package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vt-tetris/config"
)

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vt.toml")
	body := "seed = 7\nfall_base = \"2s\"\nfold_case = true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv(config.EnvSeed, "8")

	cfg, err := resolveConfig([]string{"-config", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), cfg.Seed, "environment beats file")
	assert.Equal(t, 2*time.Second, cfg.FallBase.Duration, "file beats default")
	assert.True(t, cfg.FoldCase)

	cfg, err = resolveConfig([]string{"-config", path, "-seed", "9", "-fold-case=false"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), cfg.Seed, "flag beats environment")
	assert.False(t, cfg.FoldCase, "explicit false flag beats file")
}

func TestResolveConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-turbo"}},
		{"stray argument", []string{"extra"}},
		{"invalid device", []string{"-device", "modem"}},
		{"serial without path", []string{"-device", "serial"}},
		{"floor above base", []string{"-fall-base", "10ms", "-fall-floor", "20ms"}},
		{"missing file", []string{"-config", "/nonexistent/vt.toml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveConfig(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestResolveConfigHelp(t *testing.T) {
	_, err := resolveConfig([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}
