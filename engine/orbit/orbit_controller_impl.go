package orbit

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/state"
)

const (
	// DefaultRotateSpeed maps one dragged pixel to 0.005 radians independent of surface size.
	DefaultRotateSpeed = 0.005

	// DefaultZoomSpeed maps one wheel delta unit to 0.05 distance units.
	DefaultZoomSpeed = 0.05
)

type orbitControllerImpl struct {
	mu *sync.Mutex

	state   *state.ViewportState
	surface Surface

	drag DragState

	rotateSpeed float64
	zoomSpeed   float64
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates a controller that mutates st.
//
// Parameters:
//   - st: the viewport state to drive (must not be nil)
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the new controller
func NewOrbitController(st *state.ViewportState, options ...OrbitControllerOption) OrbitController {
	if st == nil {
		panic("orbit: NewOrbitController requires a non-nil ViewportState")
	}
	oc := &orbitControllerImpl{
		mu:          &sync.Mutex{},
		state:       st,
		rotateSpeed: DefaultRotateSpeed,
		zoomSpeed:   DefaultZoomSpeed,
	}
	for _, option := range options {
		option(oc)
	}
	if oc.surface != nil {
		oc.surface.SetCursor(common.CursorGrab)
	}
	return oc
}

func (oc *orbitControllerImpl) OnPointerDown(e common.PointerEvent) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	oc.drag = DragState{
		IsDragging: true,
		LastX:      e.X,
		LastY:      e.Y,
		PointerID:  e.PointerID,
	}
	oc.state.DisableAutoSpin()

	if oc.surface != nil {
		oc.surface.SetCursor(common.CursorGrabbing)
		oc.surface.SetPointerCapture(e.PointerID)
	}
}

func (oc *orbitControllerImpl) OnPointerMove(e common.PointerEvent) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if !oc.drag.IsDragging || !common.IsFinite(e.X) || !common.IsFinite(e.Y) {
		return
	}
	dx := e.X - oc.drag.LastX
	dy := e.Y - oc.drag.LastY
	oc.state.Rotate(dy*oc.rotateSpeed, dx*oc.rotateSpeed)
	oc.drag.LastX = e.X
	oc.drag.LastY = e.Y
}

func (oc *orbitControllerImpl) OnPointerUp(e common.PointerEvent) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.endDrag(e.PointerID)
}

func (oc *orbitControllerImpl) OnPointerLeave(e common.PointerEvent) {
	oc.OnPointerUp(e)
}

func (oc *orbitControllerImpl) OnWheel(e common.WheelEvent) bool {
	oc.state.AddDistance(e.DeltaY * oc.ZoomSpeed())
	return true
}

func (oc *orbitControllerImpl) IsDragging() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.drag.IsDragging
}

func (oc *orbitControllerImpl) DragState() DragState {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.drag
}

func (oc *orbitControllerImpl) Reset() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.drag.IsDragging {
		oc.endDrag(oc.drag.PointerID)
	}
	oc.drag = DragState{}
}

func (oc *orbitControllerImpl) RotateSpeed() float64 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.rotateSpeed
}

func (oc *orbitControllerImpl) ZoomSpeed() float64 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.zoomSpeed
}

// endDrag clears the drag flag, restores the idle cursor and releases the capture.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) endDrag(pointerID int) {
	oc.drag.IsDragging = false
	if oc.surface != nil {
		oc.surface.SetCursor(common.CursorGrab)
		oc.surface.ReleasePointerCapture(pointerID)
	}
}
