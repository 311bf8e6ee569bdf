package viewport

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/render"
	"github.com/Carmen-Shannon/oxy-globe/engine/scheduler"
)

var errGPU = errors.New("gpu unavailable")

type fakeObject struct{ x, y float64 }

func (o *fakeObject) SetRotation(x, y float64)     { o.x, o.y = x, y }
func (o *fakeObject) Rotation() (float64, float64) { return o.x, o.y }

type fakeRenderer struct {
	antialias, alpha bool
	width, height    int
	offsetX, offsetY int
	sizes            [][2]int
	disposed         int
}

func (r *fakeRenderer) Resize(w, h int)    { r.width, r.height = w, h; r.resizes++ }
func (r *fakeRenderer) Size() (int, int)   { return r.width, r.height }
func (r *fakeRenderer) Dispose()           { r.disposed++ }
func (r *fakeRenderer) Surface() any       { return nil }
func (r *fakeRenderer) SetOffset(x, y int) { r.offsetX, r.offsetY = x, y }

type sphereCall struct {
	radius     float64
	segments   int
	textureURL string
}

type fakeEngine struct {
	rendererErr error
	sphereErr   error

	renderers []*fakeRenderer
	cameras   []camera.Camera
	spheres   []*fakeObject
	calls     []sphereCall
	renders   int
	lastScene render.Scene
}

func (e *fakeEngine) CreateScene() render.Scene {
	e.lastScene = render.NewScene()
	return e.lastScene
}

func (e *fakeEngine) CreatePerspectiveCamera(fovDeg, aspect, near, far float64) camera.Camera {
	c := camera.NewCamera(camera.WithFov(fovDeg), camera.WithAspect(aspect), camera.WithClipPlanes(near, far))
	e.cameras = append(e.cameras, c)
	return c
}

func (e *fakeEngine) CreateRenderer(antialias, alpha bool) (render.Renderer, error) {
	if e.rendererErr != nil {
		return nil, e.rendererErr
	}
	r := &fakeRenderer{antialias: antialias, alpha: alpha}
	e.renderers = append(e.renderers, r)
	return r, nil
}

func (e *fakeEngine) AddLight(scene render.Scene, light render.Light) {
	scene.AddLight(light)
}

func (e *fakeEngine) CreateTexturedSphere(scene render.Scene, radius float64, segments int, textureURL string) (render.Object, error) {
	if e.sphereErr != nil {
		return nil, e.sphereErr
	}
	o := &fakeObject{}
	e.spheres = append(e.spheres, o)
	e.calls = append(e.calls, sphereCall{radius, segments, textureURL})
	scene.AddObject(o)
	return o, nil
}

func (e *fakeEngine) Render(scene render.Scene, cam camera.Camera, r render.Renderer) {
	e.renders++
}

func (e *fakeEngine) lastRenderer() *fakeRenderer { return e.renderers[len(e.renderers)-1] }
func (e *fakeEngine) lastCamera() camera.Camera   { return e.cameras[len(e.cameras)-1] }
func (e *fakeEngine) lastSphere() *fakeObject     { return e.spheres[len(e.spheres)-1] }

type fakeHost struct {
	boxW, boxH float64
	window     layout.Window

	mounts    []layout.Geometry
	listeners *InputListeners
	resize    func()

	next      scheduler.FrameRequest
	frames    map[scheduler.FrameRequest]func()
	captured  map[int]bool
	cursor    common.Cursor
	cancelled int
}

func newFakeHost(boxW, boxH, winW, winH float64) *fakeHost {
	return &fakeHost{
		boxW:     boxW,
		boxH:     boxH,
		window:   layout.Window{Width: winW, Height: winH},
		frames:   map[scheduler.FrameRequest]func(){},
		captured: map[int]bool{},
	}
}

func (h *fakeHost) SetPointerCapture(id int)     { h.captured[id] = true }
func (h *fakeHost) ReleasePointerCapture(id int) { delete(h.captured, id) }
func (h *fakeHost) SetCursor(c common.Cursor)    { h.cursor = c }

func (h *fakeHost) RequestFrame(cb func()) scheduler.FrameRequest {
	h.next++
	h.frames[h.next] = cb
	return h.next
}

func (h *fakeHost) CancelFrame(req scheduler.FrameRequest) {
	if _, ok := h.frames[req]; ok {
		h.cancelled++
	}
	delete(h.frames, req)
}

func (h *fakeHost) Box() (float64, float64)    { return h.boxW, h.boxH }
func (h *fakeHost) WindowSize() layout.Window  { return h.window }
func (h *fakeHost) SetMount(g layout.Geometry) { h.mounts = append(h.mounts, g) }

func (h *fakeHost) BindInput(l InputListeners) func() {
	h.listeners = &l
	return func() { h.listeners = nil }
}

func (h *fakeHost) BindResize(fn func()) func() {
	h.resize = fn
	return func() { h.resize = nil }
}

// tick runs one display refresh.
func (h *fakeHost) tick() {
	due := h.frames
	h.frames = map[scheduler.FrameRequest]func(){}
	for _, cb := range due {
		cb()
	}
}

func (h *fakeHost) ticks(n int) {
	for range n {
		h.tick()
	}
}

func (h *fakeHost) drag(fromX, fromY, toX, toY float64) {
	h.listeners.PointerDown(common.PointerEvent{X: fromX, Y: fromY, PointerID: 1})
	h.listeners.PointerMove(common.PointerEvent{X: toX, Y: toY, PointerID: 1})
	h.listeners.PointerUp(common.PointerEvent{X: toX, Y: toY, PointerID: 1})
}

func (h *fakeHost) resizeWindow(w, hgt float64) {
	h.window = layout.Window{Width: w, Height: hgt}
	if h.resize != nil {
		h.resize()
	}
}
