package common

// Cursor identifies the pointer cursor shown over the rendering surface.
type Cursor int

const (
	// CursorDefault is the platform's standard arrow.
	CursorDefault Cursor = iota
	// CursorGrab signals that the object can be dragged.
	CursorGrab
	// CursorGrabbing is shown while a drag is in progress.
	CursorGrabbing
)

// PointerEvent is a pointer down/move/up/leave notification in surface client coordinates.
type PointerEvent struct {
	X, Y      float64
	PointerID int
}

// WheelEvent is a scroll notification. Positive DeltaY scrolls down, which zooms out.
type WheelEvent struct {
	DeltaY float64
}
