package engine

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/viewport"
	"github.com/Carmen-Shannon/oxy-globe/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithTickRate sets the tick callback rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.tickRate = tickInterval(fps)
	}
}

// WithWindow sets the window the engine drives and hosts the viewport in.
//
// Parameters:
//   - w: an open Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithViewport sets the viewport attached when Run starts, and the mount attributes it is
// attached with.
//
// Parameters:
//   - v: the viewport to host
//   - attrs: mount attributes passed to Attach
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewport(v viewport.Viewport, attrs layout.Attributes) EngineBuilderOption {
	return func(e *engine) {
		e.viewport = v
		e.attrs = attrs
	}
}

// WithRenderEngine hands the render engine to the engine so it is closed after the viewport
// detaches.
//
// Parameters:
//   - re: the render engine backing the viewport
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderEngine(re renderer.Engine) EngineBuilderOption {
	return func(e *engine) {
		e.renderEngine = re
	}
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(log logger.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.log = log
	}
}
