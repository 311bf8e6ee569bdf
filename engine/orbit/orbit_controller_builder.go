package orbit

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithSurface sets the surface used for pointer capture and cursor feedback.
// Without a surface the controller only updates state.
//
// Parameters:
//   - s: the rendering surface
//
// Returns:
//   - OrbitControllerOption: functional option to set the surface
func WithSurface(s Surface) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.surface = s
	}
}

// WithRotateSpeed sets the radians of rotation per dragged pixel.
//
// Parameters:
//   - speed: radians per pixel
//
// Returns:
//   - OrbitControllerOption: functional option to set the rotate speed
func WithRotateSpeed(speed float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the camera distance change per wheel delta unit.
//
// Parameters:
//   - speed: distance units per wheel unit
//
// Returns:
//   - OrbitControllerOption: functional option to set the zoom speed
func WithZoomSpeed(speed float64) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}
