// Package render defines the rendering engine the viewport drives. The viewport never touches a
// GPU API directly: it asks an Engine for a scene, a camera, a renderer, lights and a textured
// sphere, then calls Render once per frame.
package render

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
)

// Engine creates and draws the handful of primitives a globe viewport needs.
type Engine interface {
	// CreateScene returns an empty scene.
	//
	// Returns:
	//   - Scene: the new scene
	CreateScene() Scene

	// CreatePerspectiveCamera returns a perspective camera looking at the origin.
	//
	// Parameters:
	//   - fovDeg: vertical field of view in degrees
	//   - aspect: width / height
	//   - near: near clipping plane distance
	//   - far: far clipping plane distance
	//
	// Returns:
	//   - camera.Camera: the new camera
	CreatePerspectiveCamera(fovDeg, aspect, near, far float64) camera.Camera

	// CreateRenderer returns a renderer drawing to the engine's output surface.
	//
	// Parameters:
	//   - antialias: request multisampling
	//   - alpha: request a transparent clear colour
	//
	// Returns:
	//   - Renderer: the new renderer
	//   - error: an error if GPU resources could not be created
	CreateRenderer(antialias, alpha bool) (Renderer, error)

	// AddLight adds a light to scene.
	//
	// Parameters:
	//   - scene: the target scene
	//   - light: the light to add
	AddLight(scene Scene, light Light)

	// CreateTexturedSphere adds a UV sphere centred at the origin to scene.
	// The texture may arrive later; the sphere draws untextured until it does.
	//
	// Parameters:
	//   - scene: the target scene
	//   - radius: sphere radius
	//   - segments: width and height segment count
	//   - textureURL: local path or http(s) URL of the equirectangular texture (empty for none)
	//
	// Returns:
	//   - Object: the sphere handle
	//   - error: an error if the mesh could not be created
	CreateTexturedSphere(scene Scene, radius float64, segments int, textureURL string) (Object, error)

	// Render draws scene through cam with r.
	//
	// Parameters:
	//   - scene: the scene to draw
	//   - cam: the camera to draw through
	//   - r: the renderer to draw with
	Render(scene Scene, cam camera.Camera, r Renderer)
}

// Renderer owns the drawing surface and its size.
type Renderer interface {
	// Resize sets the drawing buffer size in pixels.
	//
	// Parameters:
	//   - width: new width
	//   - height: new height
	Resize(width, height int)

	// Size returns the current drawing buffer size in pixels.
	//
	// Returns:
	//   - int, int: width and height
	Size() (width, height int)

	// Dispose releases the renderer's resources. Calling it more than once is a no-op.
	Dispose()

	// Surface returns the engine-specific output handle.
	//
	// Returns:
	//   - any: the surface handle
	Surface() any
}

// Positioner is implemented by renderers that draw into a sub-rectangle of a larger surface.
type Positioner interface {
	// SetOffset moves the drawing rectangle's top-left corner, in pixels.
	SetOffset(x, y int)
}

// Object is a drawable whose orientation the viewport controls.
type Object interface {
	// SetRotation sets the Euler rotation in radians (pitch about X, yaw about Y).
	SetRotation(x, y float64)

	// Rotation returns the current Euler rotation in radians.
	Rotation() (x, y float64)
}
