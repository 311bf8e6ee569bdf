package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
title = "Earth"
width = 300
height = 200
x = 10
strategy = "responsive-square"
texture = "~/maps/earth.jpg"
spin_speed = 0.01
background = "#102030"
watch = true
`

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "globe.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func parsedFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("globe", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadOptions_Defaults(t *testing.T) {
	opts, err := loadOptions("")
	require.NoError(t, err)
	assert.Equal(t, defaultOptions(), opts)
	assert.Equal(t, layout.Attributes{}, opts.Attributes())
}

func TestLoadOptions_FileOverDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)

	opts, err := loadOptions(path)
	require.NoError(t, err)

	assert.Equal(t, "Earth", opts.Title)
	assert.Equal(t, 300.0, opts.Width)
	assert.Equal(t, 200.0, opts.Height)
	require.NotNil(t, opts.X)
	assert.Equal(t, 10.0, *opts.X)
	assert.Nil(t, opts.Y)
	assert.Equal(t, "responsive-square", opts.Strategy)
	assert.Equal(t, 0.01, opts.SpinSpeed)
	assert.True(t, opts.Watch)
	// untouched keys keep their defaults
	assert.Equal(t, 1280, opts.WindowWidth)
	assert.Equal(t, 64, opts.Segments)
	assert.True(t, opts.VSync)
}

func TestLoadOptions_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	writeConfig(t, home, `title = "Home"`)

	opts, err := loadOptions("~/globe.toml")
	require.NoError(t, err)
	assert.Equal(t, "Home", opts.Title)
}

func TestLoadOptions_Errors(t *testing.T) {
	_, err := loadOptions(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeConfig(t, t.TempDir(), "width = [")
	_, err = loadOptions(path)
	assert.Error(t, err)
}

func TestApplyFlags_OnlyChangedFlagsOverride(t *testing.T) {
	opts, err := loadOptions(writeConfig(t, t.TempDir(), sampleConfig))
	require.NoError(t, err)

	fs := parsedFlags(t, "--width=500", "--y=25", "--vsync=false", "--debug")
	require.NoError(t, opts.applyFlags(fs))

	assert.Equal(t, 500.0, opts.Width)
	assert.Equal(t, 200.0, opts.Height)
	require.NotNil(t, opts.Y)
	assert.Equal(t, 25.0, *opts.Y)
	require.NotNil(t, opts.X)
	assert.Equal(t, 10.0, *opts.X)
	assert.False(t, opts.VSync)
	assert.True(t, opts.Debug)
	assert.Equal(t, "Earth", opts.Title)
}

func TestAttributes_SelectExplicitLayout(t *testing.T) {
	x := 10.0
	opts := Options{Width: 300, Height: 200.5, X: &x}

	attrs := opts.Attributes()
	assert.Equal(t, layout.Attributes{"width": "300px", "height": "200.5px", "x": "10px"}, attrs)

	cfg := layout.ParseAttributes(attrs, layout.StrategyFullscreen)
	require.IsType(t, layout.ExplicitSizeWithPosition{}, cfg)
	explicit := cfg.(layout.ExplicitSizeWithPosition)
	assert.Equal(t, 300.0, explicit.Width)
	assert.Equal(t, 200.5, explicit.Height)
	require.NotNil(t, explicit.X)
	assert.Nil(t, explicit.Y)
}

func TestAttributes_StyleOnly(t *testing.T) {
	opts := Options{Style: "width: 120px; height: 80px"}

	cfg := layout.ParseAttributes(opts.Attributes(), layout.StrategyResponsiveSquare)
	assert.Equal(t, layout.ExplicitSize{Width: 120, Height: 80}, cfg)
}

func TestClearColor(t *testing.T) {
	_, opaque, err := Options{}.ClearColor()
	require.NoError(t, err)
	assert.False(t, opaque)

	c, opaque, err := Options{Background: "#ff0000"}.ClearColor()
	require.NoError(t, err)
	assert.True(t, opaque)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 0.0, c.G, 1e-9)

	_, _, err = Options{Background: "red"}.ClearColor()
	assert.Error(t, err)
}

func TestRootCommand_RegistersFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"config", "width", "height", "x", "y", "strategy", "texture", "spin-speed", "background", "watch", "software", "profile"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
