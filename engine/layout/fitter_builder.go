package layout

// FitterOption is a functional option for configuring a Fitter.
type FitterOption func(*fitter)

// WithFov sets the vertical field of view in degrees used by the fit distance.
//
// Parameters:
//   - fovDeg: field of view in degrees
//
// Returns:
//   - FitterOption: functional option to set the field of view
func WithFov(fovDeg float64) FitterOption {
	return func(f *fitter) {
		f.fov = fovDeg
	}
}

// WithObjectRadius sets the radius of the framed object.
//
// Parameters:
//   - radius: object radius in world units
//
// Returns:
//   - FitterOption: functional option to set the radius
func WithObjectRadius(radius float64) FitterOption {
	return func(f *fitter) {
		f.objectRadius = radius
	}
}

// WithFitMargin sets the multiplier applied to the exact-fit distance.
//
// Parameters:
//   - margin: distance multiplier (1 = touching the view edges)
//
// Returns:
//   - FitterOption: functional option to set the margin
func WithFitMargin(margin float64) FitterOption {
	return func(f *fitter) {
		f.fitMargin = margin
	}
}

// WithExplicitDistance sets the camera distance used for explicit sizes.
//
// Parameters:
//   - distance: camera distance in world units
//
// Returns:
//   - FitterOption: functional option to set the explicit distance
func WithExplicitDistance(distance float64) FitterOption {
	return func(f *fitter) {
		f.explicitDistance = distance
	}
}

// WithFallbackSize sets the edge length used when the window reports no size.
//
// Parameters:
//   - size: edge length in pixels
//
// Returns:
//   - FitterOption: functional option to set the fallback size
func WithFallbackSize(size float64) FitterOption {
	return func(f *fitter) {
		f.fallbackSize = size
	}
}
