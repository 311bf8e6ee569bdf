package renderer

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/loader"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/lucasb-eyer/go-colorful"
)

// EngineBuilderOption is a functional option applied to an engine during construction via NewEngine.
type EngineBuilderOption func(*engine)

// WithLoader sets the texture loader. The engine does not close a loader it was given.
// When not specified, the engine creates and owns a default loader.
//
// Parameters:
//   - l: the Loader to use
//
// Returns:
//   - EngineBuilderOption: a function that applies the loader option to an engine
func WithLoader(l loader.Loader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithLogger sets the engine logger.
//
// Parameters:
//   - log: the Logger to use
//
// Returns:
//   - EngineBuilderOption: a function that applies the logger option to an engine
func WithLogger(log logger.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.log = log
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
// Defaults to PresentModeVSync.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - EngineBuilderOption: a function that applies the present mode option to an engine
func WithPresentMode(mode PresentMode) EngineBuilderOption {
	return func(e *engine) {
		e.presentMode = mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - EngineBuilderOption: a function that applies the force software renderer option to an engine
func WithForceSoftwareRenderer(force bool) EngineBuilderOption {
	return func(e *engine) {
		e.forceFallbackAdapter = force
	}
}

// WithClearColor sets the background colour of renderers created without alpha.
// Defaults to black.
//
// Parameters:
//   - c: the background colour
//
// Returns:
//   - EngineBuilderOption: a function that applies the clear colour option to an engine
func WithClearColor(c colorful.Color) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = c
	}
}

// WithTextureWatch reloads a sphere's texture whenever its local source file changes.
//
// Parameters:
//   - watch: true to watch local texture files
//
// Returns:
//   - EngineBuilderOption: a function that applies the texture watch option to an engine
func WithTextureWatch(watch bool) EngineBuilderOption {
	return func(e *engine) {
		e.watchTextures = watch
	}
}
