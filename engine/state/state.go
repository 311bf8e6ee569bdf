// Package state holds the per-viewport mutable state shared by the input handler, the layout
// fitter and the frame scheduler.
package state

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

const (
	// MaxPitch is the largest absolute object pitch in radians.
	MaxPitch = math.Pi * 0.45

	// MinDistance is the closest the camera may get to the object centre.
	MinDistance = 0.5

	// MaxDistance is the farthest the camera may get from the object centre.
	MaxDistance = 10.0

	// DefaultSpinSpeed is the idle yaw applied per frame, in radians.
	DefaultSpinSpeed = 0.002

	// DefaultDistance is the camera distance before the first layout pass.
	DefaultDistance = 1.5
)

// Rotation is the object's orientation in radians.
type Rotation struct {
	// X is pitch, clamped to [-MaxPitch, MaxPitch].
	X float64
	// Y is yaw, unbounded.
	Y float64
}

// Snapshot is a copy of ViewportState taken under its lock.
type Snapshot struct {
	AutoSpin       bool
	SpinSpeed      float64
	CameraDistance float64
	Rotation       Rotation
}

// ViewportState is the object rotation, camera distance and auto-spin setting of one viewport.
// Every mutator enforces the pitch and distance clamps, and auto-spin can only ever go from
// enabled to disabled. Safe for concurrent use.
type ViewportState struct {
	mu *sync.Mutex

	autoSpin       bool
	spinSpeed      float64
	cameraDistance float64
	rotation       Rotation
}

// NewViewportState creates a state with auto-spin enabled at DefaultSpinSpeed, zero rotation
// and the camera at DefaultDistance.
//
// Returns:
//   - *ViewportState: the new state
func NewViewportState() *ViewportState {
	s := &ViewportState{mu: &sync.Mutex{}}
	s.reset()
	return s
}

// Reset restores the defaults of NewViewportState, re-enabling auto-spin.
// Only the lifecycle manager calls this, when a fresh attach begins.
func (s *ViewportState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *ViewportState) reset() {
	s.autoSpin = true
	s.spinSpeed = DefaultSpinSpeed
	s.cameraDistance = DefaultDistance
	s.rotation = Rotation{}
}

// Snapshot returns a consistent copy of all fields.
func (s *ViewportState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		AutoSpin:       s.autoSpin,
		SpinSpeed:      s.spinSpeed,
		CameraDistance: s.cameraDistance,
		Rotation:       s.rotation,
	}
}

// Rotation returns the current pitch and yaw.
func (s *ViewportState) Rotation() Rotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotation
}

// Rotate adds the given deltas to pitch and yaw, then clamps pitch. A NaN or infinite delta,
// or one that would overflow yaw, leaves its axis unchanged.
//
// Parameters:
//   - pitch: pitch delta in radians
//   - yaw: yaw delta in radians
//
// Returns:
//   - Rotation: the rotation after the update
func (s *ViewportState) Rotate(pitch, yaw float64) Rotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if common.IsFinite(pitch) {
		s.rotation.X = common.Clamp(s.rotation.X+pitch, -MaxPitch, MaxPitch)
	}
	if y := s.rotation.Y + yaw; common.IsFinite(y) {
		s.rotation.Y = y
	}
	return s.rotation
}

// Spin advances yaw by the spin speed when auto-spin is enabled and the caller reports no
// active drag.
//
// Parameters:
//   - dragging: whether a drag is currently in progress
//
// Returns:
//   - bool: true if yaw was advanced
func (s *ViewportState) Spin(dragging bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.autoSpin || dragging {
		return false
	}
	y := s.rotation.Y + s.spinSpeed
	if !common.IsFinite(y) {
		return false
	}
	s.rotation.Y = y
	return true
}

// Distance returns the camera distance from the sphere centre.
func (s *ViewportState) Distance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameraDistance
}

// SetDistance sets the camera distance, clamped to [MinDistance, MaxDistance]. NaN and
// infinite values are ignored.
//
// Returns:
//   - float64: the stored distance
func (s *ViewportState) SetDistance(d float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if common.IsFinite(d) {
		s.cameraDistance = common.Clamp(d, MinDistance, MaxDistance)
	}
	return s.cameraDistance
}

// AddDistance moves the camera by delta, clamped to [MinDistance, MaxDistance]. NaN and
// infinite deltas are ignored.
//
// Returns:
//   - float64: the stored distance
func (s *ViewportState) AddDistance(delta float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if common.IsFinite(delta) {
		s.cameraDistance = common.Clamp(s.cameraDistance+delta, MinDistance, MaxDistance)
	}
	return s.cameraDistance
}

// AutoSpin reports whether idle rotation is still enabled.
func (s *ViewportState) AutoSpin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoSpin
}

// DisableAutoSpin turns idle rotation off for the rest of this attach cycle.
// There is no matching enable: the only way back is Reset on a new attach.
func (s *ViewportState) DisableAutoSpin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSpin = false
}

// SpinSpeed returns the idle yaw per frame in radians.
func (s *ViewportState) SpinSpeed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spinSpeed
}

// SetSpinSpeed changes the idle yaw per frame. It is ignored once auto-spin is disabled and
// for NaN or infinite speeds.
//
// Parameters:
//   - speed: radians per frame
//
// Returns:
//   - bool: true if the speed was applied
func (s *ViewportState) SetSpinSpeed(speed float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.autoSpin || !common.IsFinite(speed) {
		return false
	}
	s.spinSpeed = speed
	return true
}
