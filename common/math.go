package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float64: lo if v < lo, hi if v > hi, v otherwise
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FitDistance returns the camera distance at which a sphere of the given radius exactly fills
// a perspective view with the given vertical field of view, scaled by margin.
// A margin of 1.4 leaves 40% headroom around the sphere.
//
// Parameters:
//   - radius: the sphere radius in world units
//   - fovDeg: vertical field of view in degrees
//   - margin: multiplier applied to the exact-fit distance
//
// Returns:
//   - float64: the camera distance from the sphere centre
func FitDistance(radius, fovDeg, margin float64) float64 {
	half := mgl64.DegToRad(fovDeg) / 2
	return radius / math.Tan(half) * margin
}

// BuildModelMatrix constructs a column-major model matrix for an object at the origin rotated
// by pitch (about X) and yaw (about Y) as an XYZ Euler rotation: R = Rx * Ry.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - rotX: pitch in radians
//   - rotY: yaw in radians
func BuildModelMatrix(out []float32, rotX, rotY float64) {
	m := mgl32.HomogRotate3DX(float32(rotX)).Mul4(mgl32.HomogRotate3DY(float32(rotY)))
	copy(out, m[:])
}
