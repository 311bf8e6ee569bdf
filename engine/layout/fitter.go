package layout

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

const (
	// DefaultFov is the camera's vertical field of view in degrees.
	DefaultFov = 75.0

	// DefaultObjectRadius is the radius of the displayed sphere.
	DefaultObjectRadius = 1.0

	// DefaultFitMargin leaves 40% headroom around the sphere in fit-to-window modes.
	DefaultFitMargin = 1.4

	// DefaultExplicitDistance is the camera distance for explicit sizes. It is not derived
	// from the size.
	DefaultExplicitDistance = 1.8

	// DefaultFallbackSize is used for each edge when neither the host nor the window reports a size.
	DefaultFallbackSize = 400.0

	// TopLayer is the stacking order of a fullscreen mount.
	TopLayer = 999
)

// PositionMode is how the mount container is placed relative to its host.
type PositionMode int

const (
	// PositionFlow leaves the mount in normal document flow.
	PositionFlow PositionMode = iota
	// PositionAbsolute places the mount at MountOffsetX/MountOffsetY inside the host.
	PositionAbsolute
	// PositionFixed pins the mount to the window at MountOffsetX/MountOffsetY.
	PositionFixed
	// PositionCentered keeps the mount in flow with a left margin of MountOffsetX.
	PositionCentered
)

// Window is the host window's inner size in pixels.
type Window struct {
	Width, Height float64
}

// Geometry is the concrete mount and camera framing derived from a Config.
type Geometry struct {
	Mode Mode

	MountWidth   float64
	MountHeight  float64
	MountOffsetX *float64
	MountOffsetY *float64
	Position     PositionMode
	ZIndex       int

	CameraDistance float64
	CameraAspect   float64
}

// Offset returns the mount offsets with absent values as zero.
func (g Geometry) Offset() (x, y float64) {
	if g.MountOffsetX != nil {
		x = *g.MountOffsetX
	}
	if g.MountOffsetY != nil {
		y = *g.MountOffsetY
	}
	return x, y
}

// Equal reports whether two geometries are identical, comparing offsets by value.
func (g Geometry) Equal(o Geometry) bool {
	return g.Mode == o.Mode &&
		g.MountWidth == o.MountWidth &&
		g.MountHeight == o.MountHeight &&
		equalOptional(g.MountOffsetX, o.MountOffsetX) &&
		equalOptional(g.MountOffsetY, o.MountOffsetY) &&
		g.Position == o.Position &&
		g.ZIndex == o.ZIndex &&
		g.CameraDistance == o.CameraDistance &&
		g.CameraAspect == o.CameraAspect
}

func equalOptional(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Fitter derives Geometry from a Config. Fit is pure: the same Config and Window always
// produce an identical Geometry.
type Fitter interface {
	// Fit computes the geometry for cfg in a window of the given size.
	// Zero-sized results fall back to the window size, and a zero-sized window falls back to
	// the fallback size.
	//
	// Parameters:
	//   - cfg: the layout variant
	//   - win: the host window's inner size
	//
	// Returns:
	//   - Geometry: the computed geometry
	Fit(cfg Config, win Window) Geometry

	// FitDistance returns the camera distance used by the fit-to-window modes.
	FitDistance() float64

	// Fov returns the vertical field of view in degrees used for the fit distance.
	Fov() float64
}

type fitter struct {
	mu *sync.Mutex

	fov              float64
	objectRadius     float64
	fitMargin        float64
	explicitDistance float64
	fallbackSize     float64
}

var _ Fitter = &fitter{}

// NewFitter creates a Fitter with the default field of view, radius and margins.
//
// Parameters:
//   - options: functional options to configure the fitter
//
// Returns:
//   - Fitter: the new fitter
func NewFitter(options ...FitterOption) Fitter {
	f := &fitter{
		mu:               &sync.Mutex{},
		fov:              DefaultFov,
		objectRadius:     DefaultObjectRadius,
		fitMargin:        DefaultFitMargin,
		explicitDistance: DefaultExplicitDistance,
		fallbackSize:     DefaultFallbackSize,
	}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *fitter) Fov() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fov
}

func (f *fitter) FitDistance() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fitDistance()
}

// fitDistance fits the sphere to the vertical field of view only. In portrait windows with an
// aspect below about 0.7 the sphere is clipped at the left and right edges.
func (f *fitter) fitDistance() float64 {
	return common.FitDistance(f.objectRadius, f.fov, f.fitMargin)
}

func (f *fitter) Fit(cfg Config, win Window) Geometry {
	f.mu.Lock()
	defer f.mu.Unlock()

	if win.Width <= 0 || win.Height <= 0 {
		win = Window{Width: f.fallbackSize, Height: f.fallbackSize}
	}

	switch c := cfg.(type) {
	case ExplicitSize:
		return f.explicit(ModeExplicitSize, c.Width, c.Height, nil, nil, win)
	case ExplicitSizeWithPosition:
		return f.explicit(ModeExplicitSizeWithPosition, c.Width, c.Height, c.X, c.Y, win)
	case ResponsiveSquare:
		side := min(win.Width, win.Height)
		offsetX := (win.Width - side) / 2
		return Geometry{
			Mode:           ModeResponsiveSquare,
			MountWidth:     side,
			MountHeight:    side,
			MountOffsetX:   &offsetX,
			Position:       PositionCentered,
			CameraDistance: f.fitDistance(),
			CameraAspect:   1,
		}
	default:
		originX, originY := 0.0, 0.0
		return Geometry{
			Mode:           ModeFullscreen,
			MountWidth:     win.Width,
			MountHeight:    win.Height,
			MountOffsetX:   &originX,
			MountOffsetY:   &originY,
			Position:       PositionFixed,
			ZIndex:         TopLayer,
			CameraDistance: f.fitDistance(),
			CameraAspect:   win.Width / win.Height,
		}
	}
}

// explicit builds the geometry for both explicit-size variants. Caller must hold the mutex.
func (f *fitter) explicit(mode Mode, w, h float64, x, y *float64, win Window) Geometry {
	if w <= 0 || h <= 0 {
		w, h = win.Width, win.Height
	}
	g := Geometry{
		Mode:           mode,
		MountWidth:     w,
		MountHeight:    h,
		Position:       PositionFlow,
		CameraDistance: f.explicitDistance,
		CameraAspect:   w / h,
	}
	if x != nil || y != nil {
		g.Position = PositionAbsolute
		g.MountOffsetX = copyOptional(x)
		g.MountOffsetY = copyOptional(y)
	}
	return g
}

func copyOptional(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
