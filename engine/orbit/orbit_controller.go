package orbit

import "github.com/Carmen-Shannon/oxy-globe/common"

// Surface is the rendering surface the controller captures pointers on and sets cursors for.
type Surface interface {
	// SetPointerCapture routes all further events for the pointer to the surface,
	// even once the pointer leaves it.
	//
	// Parameters:
	//   - pointerID: the pointer to capture
	SetPointerCapture(pointerID int)

	// ReleasePointerCapture ends a capture started by SetPointerCapture.
	//
	// Parameters:
	//   - pointerID: the pointer to release
	ReleasePointerCapture(pointerID int)

	// SetCursor changes the cursor shown over the surface.
	//
	// Parameters:
	//   - cursor: the cursor to show
	SetCursor(cursor common.Cursor)
}

// DragState is the controller's drag bookkeeping.
type DragState struct {
	IsDragging bool
	LastX      float64
	LastY      float64
	PointerID  int
}

// OrbitController turns pointer drags into object rotation and wheel steps into camera distance.
// Horizontal drag changes yaw, vertical drag changes pitch, both at RotateSpeed radians per pixel.
// The first pointer-down permanently disables auto-spin on the controlled state.
type OrbitController interface {
	// OnPointerDown starts a drag, disables auto-spin and captures the pointer.
	//
	// Parameters:
	//   - e: the pointer event
	OnPointerDown(e common.PointerEvent)

	// OnPointerMove rotates the object by the distance moved since the last event.
	// Ignored when no drag is active.
	//
	// Parameters:
	//   - e: the pointer event
	OnPointerMove(e common.PointerEvent)

	// OnPointerUp ends the drag and releases the pointer capture. Auto-spin stays off.
	//
	// Parameters:
	//   - e: the pointer event
	OnPointerUp(e common.PointerEvent)

	// OnPointerLeave behaves exactly like OnPointerUp.
	//
	// Parameters:
	//   - e: the pointer event
	OnPointerLeave(e common.PointerEvent)

	// OnWheel moves the camera by DeltaY * ZoomSpeed, clamped to the state's distance range.
	// The event is always consumed; the host must not apply its own scrolling.
	//
	// Parameters:
	//   - e: the wheel event
	//
	// Returns:
	//   - bool: true, the event was consumed
	OnWheel(e common.WheelEvent) bool

	// IsDragging reports whether a drag is active.
	IsDragging() bool

	// DragState returns a copy of the drag bookkeeping.
	DragState() DragState

	// Reset drops any active drag, releasing the capture if one is held.
	Reset()

	// RotateSpeed returns radians of rotation per pixel dragged.
	RotateSpeed() float64

	// ZoomSpeed returns camera distance units per wheel delta unit.
	ZoomSpeed() float64
}
