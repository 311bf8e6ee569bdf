package renderer

import "github.com/cogentcore/webgpu/wgpu"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. Used when a renderer is created with antialias.
	MSAA4x MSAASampleCount = 4
)

// SampleCountFor returns the sample count a renderer uses for the antialias flag.
//
// Parameters:
//   - antialias: whether multisampling was requested
//
// Returns:
//   - MSAASampleCount: MSAA4x when antialias is set, MSAAOff otherwise
func SampleCountFor(antialias bool) MSAASampleCount {
	if antialias {
		return MSAA4x
	}
	return MSAAOff
}

// SurfaceSource is the window a renderer presents to.
type SurfaceSource interface {
	// SurfaceDescriptor returns the platform surface descriptor for wgpu.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// Rect is a pixel rectangle on the surface.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ClampRect intersects r with a surface of the given size. The render pass viewport must lie
// inside the render target.
//
// Parameters:
//   - r: the requested rectangle
//   - surfaceWidth: the surface width in pixels
//   - surfaceHeight: the surface height in pixels
//
// Returns:
//   - Rect: the visible part of r, possibly empty
func ClampRect(r Rect, surfaceWidth, surfaceHeight int) Rect {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.Width, surfaceWidth), min(r.Y+r.Height, surfaceHeight)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
