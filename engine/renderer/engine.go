package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/loader"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/render"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrEngineClosed is returned by CreateRenderer and CreateTexturedSphere after Close.
var ErrEngineClosed = errors.New("renderer: engine closed")

type backendFactory func(desc *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error)

// engine is the implementation of the Engine interface.
type engine struct {
	mu *sync.Mutex

	source     SurfaceSource
	loader     loader.Loader
	ownsLoader bool
	log        logger.Logger

	presentMode          PresentMode
	forceFallbackAdapter bool
	clearColor           colorful.Color
	watchTextures        bool
	newBackend           backendFactory

	renderers map[*globeRenderer]struct{}
	spheres   map[*sphereObject]struct{}
	closed    bool
}

// Engine is the WebGPU implementation of render.Engine. It draws into one window surface and
// loads sphere textures through a Loader.
//
// Each CreateRenderer call opens its own device on the surface, so a viewport that detaches and
// reattaches gets fresh GPU state. Textures arrive asynchronously: a sphere is drawn white until
// its texture has been decoded, then the texture is uploaded on the next Render.
type Engine interface {
	render.Engine

	// Loader returns the texture loader used for spheres.
	//
	// Returns:
	//   - loader.Loader: the loader
	Loader() loader.Loader

	// Close disposes every renderer still open, stops texture watches and closes the loader
	// when the engine created it. Safe to call repeatedly.
	Close()
}

var _ Engine = &engine{}

// NewEngine creates an Engine drawing into source.
// Panics if source is nil.
//
// Parameters:
//   - source: the window surface renderers present to
//   - options: optional EngineBuilderOption values
//
// Returns:
//   - Engine: the new engine
func NewEngine(source SurfaceSource, options ...EngineBuilderOption) Engine {
	if source == nil {
		panic("renderer: nil SurfaceSource")
	}
	e := &engine{
		mu:          &sync.Mutex{},
		source:      source,
		presentMode: PresentModeVSync,
		clearColor:  colorful.Color{R: 0, G: 0, B: 0},
		newBackend:  newWGPURendererBackend,
		renderers:   make(map[*globeRenderer]struct{}),
		spheres:     make(map[*sphereObject]struct{}),
	}
	for _, opt := range options {
		opt(e)
	}
	e.log = logger.OrNop(e.log)
	if e.loader == nil {
		e.loader = loader.NewLoader(loader.WithLogger(e.log.With("loader")))
		e.ownsLoader = true
	}
	return e
}

func (e *engine) Loader() loader.Loader {
	return e.loader
}

func (e *engine) CreateScene() render.Scene {
	return render.NewScene()
}

func (e *engine) CreatePerspectiveCamera(fovDeg, aspect, near, far float64) camera.Camera {
	return camera.NewCamera(
		camera.WithFov(fovDeg),
		camera.WithAspect(aspect),
		camera.WithClipPlanes(near, far),
	)
}

func (e *engine) CreateRenderer(antialias, alpha bool) (render.Renderer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrEngineClosed
	}

	backend, err := e.newBackend(e.source.SurfaceDescriptor(), e.forceFallbackAdapter, SampleCountFor(antialias))
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	backend.SetPresentMode(e.presentMode)
	backend.SetClearColor(clearValue(e.clearColor, alpha))

	if err := backend.ConfigureSurface(e.source.Width(), e.source.Height()); err != nil {
		backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}
	if err := backend.RegisterSpherePipeline(SphereShaderSource); err != nil {
		backend.Release()
		return nil, err
	}

	r := newGlobeRenderer(backend, e.source, e.log)
	r.onDispose = e.forgetRenderer
	e.renderers[r] = struct{}{}
	e.log.Debugf("renderer created (antialias=%t alpha=%t)", antialias, alpha)
	return r, nil
}

func (e *engine) forgetRenderer(r *globeRenderer, spheres []*sphereObject) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.renderers, r)
	for _, so := range spheres {
		delete(e.spheres, so)
	}
}

func (e *engine) AddLight(scene render.Scene, light render.Light) {
	if scene == nil {
		return
	}
	scene.AddLight(light)
}

func (e *engine) CreateTexturedSphere(scene render.Scene, radius float64, segments int, textureURL string) (render.Object, error) {
	if scene == nil {
		return nil, errors.New("renderer: nil scene")
	}
	if radius <= 0 {
		return nil, fmt.Errorf("renderer: sphere radius must be positive, got %v", radius)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrEngineClosed
	}
	so := newSphereObject(radius, segments, textureURL)
	e.spheres[so] = struct{}{}
	watch := e.watchTextures
	e.mu.Unlock()

	scene.AddObject(so)
	if textureURL == "" {
		return so, nil
	}

	e.loadTexture(so)
	if watch {
		stop, err := e.loader.Watch(textureURL, func() { e.loadTexture(so) })
		switch {
		case errors.Is(err, loader.ErrNotWatchable):
		case err != nil:
			e.log.Warnf("not watching %s: %v", textureURL, err)
		default:
			so.setStopWatch(stop)
		}
	}
	return so, nil
}

func (e *engine) loadTexture(so *sphereObject) {
	e.loader.LoadTextureAsync(so.Source(), func(src string, tex common.TextureStagingData, err error) {
		if err != nil {
			e.log.Warnf("failed to load texture %s: %v", src, err)
			so.setLoadErr(err)
			return
		}
		so.setTexture(tex)
	})
}

func (e *engine) Render(scene render.Scene, cam camera.Camera, r render.Renderer) {
	gr, ok := r.(*globeRenderer)
	if !ok || scene == nil || cam == nil {
		return
	}
	gr.render(scene, cam)
}

func (e *engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	renderers := make([]*globeRenderer, 0, len(e.renderers))
	for r := range e.renderers {
		renderers = append(renderers, r)
	}
	spheres := make([]*sphereObject, 0, len(e.spheres))
	for so := range e.spheres {
		spheres = append(spheres, so)
	}
	e.spheres = map[*sphereObject]struct{}{}
	e.mu.Unlock()

	for _, so := range spheres {
		so.close()
	}
	for _, r := range renderers {
		r.Dispose()
	}
	if e.ownsLoader {
		e.loader.Close()
	}
}

// clearValue converts the configured background into the render pass clear colour. Alpha
// renderers clear to transparent black so the host's content shows around the sphere.
func clearValue(c colorful.Color, alpha bool) wgpu.Color {
	if alpha {
		return wgpu.Color{}
	}
	r, g, b := c.Clamped().LinearRgb()
	return wgpu.Color{R: r, G: g, B: b, A: 1}
}
