package viewport

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/orbit"
	"github.com/Carmen-Shannon/oxy-globe/engine/profiler"
	"github.com/Carmen-Shannon/oxy-globe/engine/render"
	"github.com/Carmen-Shannon/oxy-globe/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-globe/engine/state"
	"github.com/google/uuid"
)

const (
	sphereRadius    = 1.0
	defaultSegments = 64
	cameraNear      = 0.01
	cameraFar       = 1000.0

	lightColor           = 0xffffff
	ambientIntensity     = 1.2
	directionalIntensity = 0.8
)

// directionalPosition is where the key light sits; it shines towards the origin.
var directionalPosition = [3]float32{5, 3, 5}

// attachment is everything acquired by one Attach and released by the matching Detach.
type attachment struct {
	host       Host
	scene      render.Scene
	camera     camera.Camera
	renderer   render.Renderer
	sphere     render.Object
	controller orbit.OrbitController
	scheduler  scheduler.Scheduler
	unbind     []func()
}

// release undoes whatever part of an attach completed. Safe on a partial attachment.
func (a *attachment) release() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	for i := len(a.unbind) - 1; i >= 0; i-- {
		if a.unbind[i] != nil {
			a.unbind[i]()
		}
	}
	a.unbind = nil
	if a.controller != nil {
		a.controller.Reset()
	}
	if a.renderer != nil {
		a.renderer.Dispose()
	}
	if a.scene != nil {
		a.scene.Clear()
	}
}

type viewport struct {
	mu *sync.Mutex

	id     uuid.UUID
	engine render.Engine
	log    logger.Logger

	fitter       layout.Fitter
	strategy     layout.Strategy
	textureURL   string
	segments     int
	spinSpeed    float64
	antialias    bool
	alpha        bool
	orbitOptions []orbit.OrbitControllerOption
	profiler     *profiler.Profiler

	st       *state.ViewportState
	status   Status
	config   layout.Config
	geometry layout.Geometry
	att      *attachment
}

var _ Viewport = &viewport{}

// NewViewport creates an unattached viewport drawing through engine.
//
// Parameters:
//   - engine: the rendering engine (required)
//   - options: functional options to configure the viewport
//
// Returns:
//   - Viewport: the new viewport
//   - error: ErrNoRenderEngine if engine is nil
func NewViewport(engine render.Engine, options ...ViewportOption) (Viewport, error) {
	if engine == nil {
		return nil, ErrNoRenderEngine
	}
	v := &viewport{
		mu:        &sync.Mutex{},
		id:        uuid.New(),
		engine:    engine,
		fitter:    layout.NewFitter(),
		strategy:  layout.StrategyFullscreen,
		segments:  defaultSegments,
		spinSpeed: state.DefaultSpinSpeed,
		antialias: true,
		alpha:     true,
		st:        state.NewViewportState(),
	}
	for _, option := range options {
		option(v)
	}
	if v.log == nil {
		v.log = logger.NewDefaultLogger("viewport", false)
	}
	v.log = v.log.With(v.id.String())
	return v, nil
}

func (v *viewport) Attach(host Host, attrs layout.Attributes) (err error) {
	if host == nil {
		return ErrNilHost
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.status == StatusInitializing || v.status == StatusActive {
		return ErrAlreadyAttached
	}

	v.status = StatusInitializing
	v.st.Reset()
	v.st.SetSpinSpeed(v.spinSpeed)
	v.config = layout.ParseAttributes(attrs, v.strategy)

	a := &attachment{host: host}
	defer func() {
		if err != nil {
			a.release()
			v.status = StatusUnattached
			v.log.Errorf("attach failed: %v", err)
		}
	}()

	width, height := host.Box()
	if width <= 0 || height <= 0 {
		width, height = layout.DefaultFallbackSize, layout.DefaultFallbackSize
	}

	a.scene = v.engine.CreateScene()
	a.camera = v.engine.CreatePerspectiveCamera(v.fitter.Fov(), width/height, cameraNear, cameraFar)
	a.camera.SetDistance(v.st.Distance())
	if a.renderer, err = v.engine.CreateRenderer(v.antialias, v.alpha); err != nil {
		return fmt.Errorf("viewport: create renderer: %w", err)
	}
	a.renderer.Resize(int(width), int(height))

	v.engine.AddLight(a.scene, render.AmbientLight(lightColor, ambientIntensity))
	v.engine.AddLight(a.scene, render.DirectionalLight(lightColor, directionalIntensity,
		directionalPosition[0], directionalPosition[1], directionalPosition[2]))
	if a.sphere, err = v.engine.CreateTexturedSphere(a.scene, sphereRadius, v.segments, v.textureURL); err != nil {
		return fmt.Errorf("viewport: create sphere: %w", err)
	}

	orbitOptions := append([]orbit.OrbitControllerOption{orbit.WithSurface(host)}, v.orbitOptions...)
	a.controller = orbit.NewOrbitController(v.st, orbitOptions...)
	a.unbind = append(a.unbind, host.BindInput(InputListeners{
		PointerDown:  a.controller.OnPointerDown,
		PointerMove:  a.controller.OnPointerMove,
		PointerUp:    a.controller.OnPointerUp,
		PointerLeave: a.controller.OnPointerLeave,
		Wheel:        a.controller.OnWheel,
	}))
	a.unbind = append(a.unbind, host.BindResize(v.onResize))

	v.applyLayout(a)

	a.scheduler = scheduler.NewScheduler(host,
		scheduler.WithSpinner(v.st),
		scheduler.WithDragSource(a.controller),
		scheduler.WithDrawCallback(func() { v.draw(a) }),
		scheduler.WithProfiler(v.profiler),
		scheduler.WithLogger(v.log),
	)
	a.scheduler.Start()

	v.att = a
	v.status = StatusActive
	v.log.Infof("attached: %s %.0fx%.0f, camera distance %.3f",
		v.geometry.Mode, v.geometry.MountWidth, v.geometry.MountHeight, v.geometry.CameraDistance)
	return nil
}

func (v *viewport) Detach() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.status != StatusActive {
		return
	}
	v.att.release()
	v.att = nil
	v.status = StatusDetached
	v.log.Infof("detached")
}

func (v *viewport) SetSpinSpeed(speed float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.st.SetSpinSpeed(speed) {
		v.log.Debugf("spin speed %.4f ignored, auto-spin disabled", speed)
		return false
	}
	v.spinSpeed = speed
	return true
}

func (v *viewport) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *viewport) ViewportState() state.Snapshot {
	return v.st.Snapshot()
}

func (v *viewport) Config() layout.Config {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.config
}

func (v *viewport) Geometry() layout.Geometry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.geometry
}

func (v *viewport) Dragging() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.att == nil {
		return false
	}
	return v.att.controller.IsDragging()
}

func (v *viewport) ID() uuid.UUID {
	return v.id
}

func (v *viewport) onResize() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.status != StatusActive || v.att == nil {
		return
	}
	v.applyLayout(v.att)
	v.log.Debugf("resized: %.0fx%.0f", v.geometry.MountWidth, v.geometry.MountHeight)
}

// applyLayout refits the mount, drawing buffer and camera together. Caller must hold the mutex.
func (v *viewport) applyLayout(a *attachment) {
	g := v.fitter.Fit(v.config, a.host.WindowSize())
	a.host.SetMount(g)
	a.renderer.Resize(int(math.Round(g.MountWidth)), int(math.Round(g.MountHeight)))
	if p, ok := a.renderer.(render.Positioner); ok {
		x, y := g.Offset()
		p.SetOffset(int(math.Round(x)), int(math.Round(y)))
	}
	a.camera.Apply(g.CameraAspect, v.st.SetDistance(g.CameraDistance))
	v.geometry = g
}

// draw renders one frame of a. Runs on the host thread between input callbacks.
func (v *viewport) draw(a *attachment) {
	snap := v.st.Snapshot()
	a.sphere.SetRotation(snap.Rotation.X, snap.Rotation.Y)
	a.camera.SetDistance(snap.CameraDistance)
	v.engine.Render(a.scene, a.camera, a.renderer)
}
