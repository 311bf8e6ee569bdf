package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Options is everything the globe command can be configured with. A TOML file fills it first,
// then any flag set on the command line overrides the file.
type Options struct {
	Title        string `toml:"title"`
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`

	// Mount size and position in pixels. Zero size leaves the strategy in charge.
	Width  float64  `toml:"width"`
	Height float64  `toml:"height"`
	X      *float64 `toml:"x"`
	Y      *float64 `toml:"y"`
	Style  string   `toml:"style"`

	Strategy   string  `toml:"strategy"`
	Texture    string  `toml:"texture"`
	Segments   int     `toml:"segments"`
	SpinSpeed  float64 `toml:"spin_speed"`
	Background string  `toml:"background"`

	VSync     bool `toml:"vsync"`
	Antialias bool `toml:"antialias"`
	Watch     bool `toml:"watch"`
	Software  bool `toml:"software"`
	Debug     bool `toml:"debug"`
	Profile   bool `toml:"profile"`
}

func defaultOptions() Options {
	return Options{
		Title:        "Globe",
		WindowWidth:  1280,
		WindowHeight: 720,
		Strategy:     layout.StrategyFullscreen.String(),
		Segments:     64,
		SpinSpeed:    0.002,
		VSync:        true,
		Antialias:    true,
	}
}

// loadOptions reads a TOML file over the defaults. A leading ~ in path is expanded.
//
// Parameters:
//   - path: the config file path, or "" for defaults only
//
// Returns:
//   - Options: the loaded options
//   - error: error if the file cannot be read or parsed
func loadOptions(path string) (Options, error) {
	opts := defaultOptions()
	if path == "" {
		return opts, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return opts, fmt.Errorf("failed to expand config path %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return opts, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}
	return opts, nil
}

func registerFlags(fs *pflag.FlagSet) {
	d := defaultOptions()
	fs.String("config", "", "TOML config file")
	fs.String("title", d.Title, "window title")
	fs.Int("window-width", d.WindowWidth, "window width in pixels")
	fs.Int("window-height", d.WindowHeight, "window height in pixels")
	fs.Float64("width", 0, "mount width in pixels (needs --height)")
	fs.Float64("height", 0, "mount height in pixels (needs --width)")
	fs.Float64("x", 0, "mount left offset in pixels")
	fs.Float64("y", 0, "mount top offset in pixels")
	fs.String("style", "", `inline style, e.g. "width: 300px; height: 300px"`)
	fs.String("strategy", d.Strategy, "layout without an explicit size: fullscreen or responsive-square")
	fs.String("texture", "", "equirectangular texture path or http(s) URL")
	fs.Int("segments", d.Segments, "sphere width and height segments")
	fs.Float64("spin-speed", d.SpinSpeed, "idle spin in radians per frame")
	fs.String("background", "", "opaque background colour as #rrggbb (transparent when empty)")
	fs.Bool("vsync", d.VSync, "wait for vertical blank when presenting")
	fs.Bool("antialias", d.Antialias, "enable multisampling")
	fs.Bool("watch", false, "reload local textures when the file changes")
	fs.Bool("software", false, "force the fallback software adapter")
	fs.Bool("debug", false, "enable debug logging")
	fs.Bool("profile", false, "log frame rate and memory once per second")
}

// applyFlags copies every flag set on the command line into o.
//
// Parameters:
//   - fs: the parsed flag set built by registerFlags
//
// Returns:
//   - error: error if a flag value cannot be read
func (o *Options) applyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}
	str := func(dst *string, name string) func() error {
		return func() (e error) { *dst, e = fs.GetString(name); return }
	}
	integer := func(dst *int, name string) func() error {
		return func() (e error) { *dst, e = fs.GetInt(name); return }
	}
	float := func(dst *float64, name string) func() error {
		return func() (e error) { *dst, e = fs.GetFloat64(name); return }
	}
	floatPtr := func(dst **float64, name string) func() error {
		return func() error {
			v, e := fs.GetFloat64(name)
			*dst = &v
			return e
		}
	}
	boolean := func(dst *bool, name string) func() error {
		return func() (e error) { *dst, e = fs.GetBool(name); return }
	}

	set("title", str(&o.Title, "title"))
	set("window-width", integer(&o.WindowWidth, "window-width"))
	set("window-height", integer(&o.WindowHeight, "window-height"))
	set("width", float(&o.Width, "width"))
	set("height", float(&o.Height, "height"))
	set("x", floatPtr(&o.X, "x"))
	set("y", floatPtr(&o.Y, "y"))
	set("style", str(&o.Style, "style"))
	set("strategy", str(&o.Strategy, "strategy"))
	set("texture", str(&o.Texture, "texture"))
	set("segments", integer(&o.Segments, "segments"))
	set("spin-speed", float(&o.SpinSpeed, "spin-speed"))
	set("background", str(&o.Background, "background"))
	set("vsync", boolean(&o.VSync, "vsync"))
	set("antialias", boolean(&o.Antialias, "antialias"))
	set("watch", boolean(&o.Watch, "watch"))
	set("software", boolean(&o.Software, "software"))
	set("debug", boolean(&o.Debug, "debug"))
	set("profile", boolean(&o.Profile, "profile"))
	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}
	return nil
}

// Attributes renders the mount options as component attributes.
func (o Options) Attributes() layout.Attributes {
	attrs := layout.Attributes{}
	if o.Width > 0 {
		attrs[layout.AttrWidth] = pixels(o.Width)
	}
	if o.Height > 0 {
		attrs[layout.AttrHeight] = pixels(o.Height)
	}
	if o.X != nil {
		attrs[layout.AttrX] = pixels(*o.X)
	}
	if o.Y != nil {
		attrs[layout.AttrY] = pixels(*o.Y)
	}
	if o.Style != "" {
		attrs[layout.AttrStyle] = o.Style
	}
	return attrs
}

// ClearColor parses Background. ok is false when the background is transparent.
//
// Returns:
//   - colorful.Color: the parsed colour
//   - bool: true for an opaque background
//   - error: error if Background is not a hex colour
func (o Options) ClearColor() (colorful.Color, bool, error) {
	if o.Background == "" {
		return colorful.Color{}, false, nil
	}
	c, err := colorful.Hex(o.Background)
	if err != nil {
		return colorful.Color{}, false, fmt.Errorf("invalid background %q: %w", o.Background, err)
	}
	return c, true, nil
}

func pixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
