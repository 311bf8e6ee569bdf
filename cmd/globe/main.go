// Command globe opens a window with an interactive, textured globe.
//
// Controls:
//
//	Mouse drag  - Rotate the globe
//	Scroll      - Zoom in/out
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/oxy-globe/engine"
	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/profiler"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/viewport"
	"github.com/Carmen-Shannon/oxy-globe/engine/window"
	"github.com/spf13/cobra"
)

func init() {
	// GLFW must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "globe",
		Short: "Interactive globe viewer",
		Long: `globe - Interactive globe viewer

Mounts a spinning, textured sphere in a desktop window. Drag to rotate,
scroll to zoom. Without --width/--height the globe fills the window
(fullscreen) or the largest centred square (responsive-square).`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			opts, err := loadOptions(path)
			if err != nil {
				return err
			}
			if err := opts.applyFlags(cmd.Flags()); err != nil {
				return err
			}
			return run(cmd.Context(), opts)
		},
	}
	registerFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.NewDefaultLogger("globe", opts.Debug)

	strategy, err := layout.ParseStrategy(opts.Strategy)
	if err != nil {
		return err
	}
	background, opaque, err := opts.ClearColor()
	if err != nil {
		return err
	}

	w := window.NewWindow(
		window.WithTitle(opts.Title),
		window.WithWidth(opts.WindowWidth),
		window.WithHeight(opts.WindowHeight),
		window.WithLogger(log.With("window")),
	)

	presentMode := renderer.PresentModeVSync
	if !opts.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	engineOptions := []renderer.EngineBuilderOption{
		renderer.WithLogger(log.With("renderer")),
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(opts.Software),
		renderer.WithTextureWatch(opts.Watch),
	}
	if opaque {
		engineOptions = append(engineOptions, renderer.WithClearColor(background))
	}
	re := renderer.NewEngine(w, engineOptions...)

	viewportOptions := []viewport.ViewportOption{
		viewport.WithStrategy(strategy),
		viewport.WithTextureURL(opts.Texture),
		viewport.WithSegments(opts.Segments),
		viewport.WithSpinSpeed(opts.SpinSpeed),
		viewport.WithRenderFlags(opts.Antialias, !opaque),
		viewport.WithLogger(log),
	}
	if opts.Profile {
		viewportOptions = append(viewportOptions, viewport.WithProfiler(profiler.NewProfiler(log.With("profiler"))))
	}
	v, err := viewport.NewViewport(re, viewportOptions...)
	if err != nil {
		re.Close()
		_ = w.Close()
		return fmt.Errorf("failed to create viewport: %w", err)
	}

	app := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithViewport(v, opts.Attributes()),
		engine.WithRenderEngine(re),
		engine.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			app.Quit()
		case <-done:
		}
	}()

	return app.Run()
}
