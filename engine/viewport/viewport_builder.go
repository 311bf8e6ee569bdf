package viewport

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/orbit"
	"github.com/Carmen-Shannon/oxy-globe/engine/profiler"
)

// ViewportOption is a functional option for configuring a Viewport.
type ViewportOption func(*viewport)

// WithStrategy selects the layout used when no explicit size is supplied.
//
// Parameters:
//   - s: the strategy
//
// Returns:
//   - ViewportOption: option function to apply
func WithStrategy(s layout.Strategy) ViewportOption {
	return func(v *viewport) {
		v.strategy = s
	}
}

// WithTextureURL sets the equirectangular texture wrapped around the sphere.
//
// Parameters:
//   - url: local path or http(s) URL
//
// Returns:
//   - ViewportOption: option function to apply
func WithTextureURL(url string) ViewportOption {
	return func(v *viewport) {
		v.textureURL = url
	}
}

// WithSegments sets the sphere's width and height segment count.
//
// Parameters:
//   - n: segment count
//
// Returns:
//   - ViewportOption: option function to apply
func WithSegments(n int) ViewportOption {
	return func(v *viewport) {
		if n > 0 {
			v.segments = n
		}
	}
}

// WithSpinSpeed sets the idle spin applied at every attach, in radians per frame.
//
// Parameters:
//   - speed: radians per frame
//
// Returns:
//   - ViewportOption: option function to apply
func WithSpinSpeed(speed float64) ViewportOption {
	return func(v *viewport) {
		v.spinSpeed = speed
	}
}

// WithFitter replaces the layout fitter.
//
// Parameters:
//   - f: the fitter
//
// Returns:
//   - ViewportOption: option function to apply
func WithFitter(f layout.Fitter) ViewportOption {
	return func(v *viewport) {
		if f != nil {
			v.fitter = f
		}
	}
}

// WithOrbitOptions passes options to each attach's orbit controller.
//
// Parameters:
//   - opts: orbit controller options
//
// Returns:
//   - ViewportOption: option function to apply
func WithOrbitOptions(opts ...orbit.OrbitControllerOption) ViewportOption {
	return func(v *viewport) {
		v.orbitOptions = append(v.orbitOptions, opts...)
	}
}

// WithProfiler ticks p once per rendered frame.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - ViewportOption: option function to apply
func WithProfiler(p *profiler.Profiler) ViewportOption {
	return func(v *viewport) {
		v.profiler = p
	}
}

// WithLogger sets the base logger. The viewport prefixes it with its instance id.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ViewportOption: option function to apply
func WithLogger(l logger.Logger) ViewportOption {
	return func(v *viewport) {
		v.log = l
	}
}

// WithRenderFlags sets the antialias and alpha flags passed to CreateRenderer.
//
// Parameters:
//   - antialias: request multisampling
//   - alpha: request a transparent background
//
// Returns:
//   - ViewportOption: option function to apply
func WithRenderFlags(antialias, alpha bool) ViewportOption {
	return func(v *viewport) {
		v.antialias = antialias
		v.alpha = alpha
	}
}
