// Package viewport owns one embedded globe: it acquires the scene, camera and renderer on attach,
// wires input, layout and the frame loop together, and releases everything on detach.
package viewport

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/state"
	"github.com/google/uuid"
)

var (
	// ErrNoRenderEngine is returned by NewViewport when no rendering engine is supplied.
	ErrNoRenderEngine = errors.New("viewport: no render engine")

	// ErrAlreadyAttached is returned by Attach while the viewport is initializing or active.
	ErrAlreadyAttached = errors.New("viewport: already attached")

	// ErrNilHost is returned by Attach when host is nil.
	ErrNilHost = errors.New("viewport: nil host")
)

// Status is the viewport lifecycle state.
type Status int

const (
	StatusUnattached Status = iota
	StatusInitializing
	StatusActive
	StatusDetached
)

func (s Status) String() string {
	switch s {
	case StatusUnattached:
		return "unattached"
	case StatusInitializing:
		return "initializing"
	case StatusActive:
		return "active"
	case StatusDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Viewport is an embeddable, interactive globe bound to one Host at a time.
//
// Lifecycle: Unattached -> Initializing -> Active -> Detached. A detached viewport renders
// again only after a new Attach, which acquires fresh resources and resets the view state.
type Viewport interface {
	// Attach acquires the scene, camera and renderer, binds input and resize listeners,
	// applies the initial layout and starts the frame loop.
	// On failure every resource already acquired is released and the viewport is Unattached.
	//
	// Parameters:
	//   - host: the platform to attach to
	//   - attrs: the component attributes selecting the layout
	//
	// Returns:
	//   - error: ErrNilHost, ErrAlreadyAttached, or a wrapped engine error
	Attach(host Host, attrs layout.Attributes) error

	// Detach stops the frame loop, unbinds every listener, resets the drag state and
	// disposes the renderer. No-op unless Active.
	Detach()

	// SetSpinSpeed changes the idle spin in radians per frame.
	// Has no effect once a drag has disabled auto-spin.
	//
	// Parameters:
	//   - speed: radians per frame
	//
	// Returns:
	//   - bool: true if the speed was applied
	SetSpinSpeed(speed float64) bool

	// Status returns the lifecycle state.
	//
	// Returns:
	//   - Status: the current state
	Status() Status

	// ViewportState returns a snapshot of the rotation, distance and auto-spin settings.
	//
	// Returns:
	//   - state.Snapshot: the snapshot
	ViewportState() state.Snapshot

	// Config returns the layout chosen at the last attach. Nil before the first attach.
	//
	// Returns:
	//   - layout.Config: the layout config
	Config() layout.Config

	// Geometry returns the most recently applied layout geometry.
	//
	// Returns:
	//   - layout.Geometry: the geometry
	Geometry() layout.Geometry

	// Dragging reports whether a pointer drag is in progress.
	Dragging() bool

	// ID returns the instance id used to tag log output.
	ID() uuid.UUID
}
