package viewport

import (
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/orbit"
	"github.com/Carmen-Shannon/oxy-globe/engine/scheduler"
)

// InputListeners are the pointer and wheel handlers a viewport binds on its host.
type InputListeners struct {
	PointerDown  func(e common.PointerEvent)
	PointerMove  func(e common.PointerEvent)
	PointerUp    func(e common.PointerEvent)
	PointerLeave func(e common.PointerEvent)

	// Wheel returns true when the event was consumed and the host must not scroll.
	Wheel func(e common.WheelEvent) bool
}

// Host is the platform a viewport is attached to: the element it lives in, the window around
// it, and the UI thread's event and frame hooks. Every callback a Host invokes must run on the
// same thread, and none may be invoked synchronously from inside a Bind or RequestFrame call.
type Host interface {
	orbit.Surface
	scheduler.FrameRequester

	// Box returns the host element's current content size in pixels. Zero before layout.
	//
	// Returns:
	//   - float64, float64: width and height
	Box() (width, height float64)

	// WindowSize returns the inner size of the window containing the host.
	//
	// Returns:
	//   - layout.Window: the window size
	WindowSize() layout.Window

	// SetMount places and sizes the viewport's mount container.
	//
	// Parameters:
	//   - g: the geometry to apply
	SetMount(g layout.Geometry)

	// BindInput registers pointer and wheel listeners on the drawing surface.
	//
	// Parameters:
	//   - listeners: the handlers to call
	//
	// Returns:
	//   - func(): unbinds every listener registered by this call
	BindInput(listeners InputListeners) func()

	// BindResize registers a window resize listener.
	//
	// Parameters:
	//   - fn: called after each window resize
	//
	// Returns:
	//   - func(): unbinds the listener
	BindResize(fn func()) func()
}
