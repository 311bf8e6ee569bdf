package window

import (
	"fmt"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-globe/engine/viewport"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a desktop window that hosts a viewport. It delivers pointer, wheel and resize events
// to bound listeners, runs requested frames once per loop iteration, and exposes the surface a
// renderer presents to.
//
// All callbacks run on the thread that called NewWindow and ProcessMessages.
type Window interface {
	viewport.Host

	// SetUpdateCallback sets a function called once per loop iteration after pending frames run.
	//
	// Parameters:
	//   - callback: the function to call, or nil
	SetUpdateCallback(callback func())

	// SurfaceDescriptor returns the platform surface descriptor for wgpu.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if the window is not open
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and has not been asked to close.
	IsRunning() bool

	// RequestClose asks the event loop to stop without destroying the window. An idle loop
	// notices within one event wait. Safe to call from any goroutine.
	RequestClose()

	// Close destroys the window.
	//
	// Returns:
	//   - error: error if the window was never opened
	Close() error

	// ProcessMessages runs the event loop until the window closes.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// Mount returns the geometry last applied by SetMount.
	Mount() layout.Geometry
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	mu *sync.Mutex

	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// framebuffer size in pixels
	width  int
	height int

	internalWindow any
	log            logger.Logger

	onUpdate func()
	closing  atomic.Bool

	frames    map[scheduler.FrameRequest]func()
	nextFrame scheduler.FrameRequest

	inputs    map[int]viewport.InputListeners
	resizes   map[int]func()
	nextToken int

	mount    layout.Geometry
	hasMount bool

	captured  bool
	pointerID int
	inside    bool
	cursor    common.Cursor
	applied   common.Cursor
}

var _ Window = &engineWindow{}

// NewWindow creates and opens a new Window with the specified options.
// Panics if the platform window cannot be created.
//
// Parameters:
//   - options: optional WindowBuilderOption values
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		mu:        &sync.Mutex{},
		title:     "Globe",
		maxWidth:  -1,
		maxHeight: -1,
		minWidth:  200,
		minHeight: 200,
		width:     1280,
		height:    720,
		frames:    make(map[scheduler.FrameRequest]func()),
		inputs:    make(map[int]viewport.InputListeners),
		resizes:   make(map[int]func()),
	}
	for _, opt := range options {
		opt(w)
	}
	w.log = logger.OrNop(w.log)
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return !w.closing.Load() && platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	w.closing.Store(true)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		// Block briefly for events when nothing is animating.
		if succ := platformProcessMessages(w, !w.hasPendingFrames()); !succ {
			break
		}

		w.runFrames()

		if w.onUpdate != nil {
			w.safeCall("update", w.onUpdate)
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *engineWindow) Box() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return float64(w.width), float64(w.height)
}

func (w *engineWindow) WindowSize() layout.Window {
	w.mu.Lock()
	defer w.mu.Unlock()
	return layout.Window{Width: float64(w.width), Height: float64(w.height)}
}

func (w *engineWindow) SetMount(g layout.Geometry) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mount = g
	w.hasMount = true
}

func (w *engineWindow) Mount() layout.Geometry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mount
}

func (w *engineWindow) RequestFrame(fn func()) scheduler.FrameRequest {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextFrame++
	w.frames[w.nextFrame] = fn
	return w.nextFrame
}

func (w *engineWindow) CancelFrame(id scheduler.FrameRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.frames, id)
}

func (w *engineWindow) BindInput(listeners viewport.InputListeners) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextToken++
	token := w.nextToken
	w.inputs[token] = listeners
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.inputs, token)
	}
}

func (w *engineWindow) BindResize(fn func()) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextToken++
	token := w.nextToken
	w.resizes[token] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.resizes, token)
	}
}

func (w *engineWindow) SetPointerCapture(pointerID int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.captured = true
	w.pointerID = pointerID
}

func (w *engineWindow) ReleasePointerCapture(pointerID int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pointerID == pointerID {
		w.captured = false
	}
}

func (w *engineWindow) SetCursor(cursor common.Cursor) {
	w.mu.Lock()
	w.cursor = cursor
	w.mu.Unlock()
	w.updateCursor()
}

func (w *engineWindow) hasPendingFrames() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.frames) > 0
}

// runFrames runs the frames requested before this call. Frames requested while running wait
// for the next iteration.
func (w *engineWindow) runFrames() {
	w.mu.Lock()
	if len(w.frames) == 0 {
		w.mu.Unlock()
		return
	}
	ids := make([]scheduler.FrameRequest, 0, len(w.frames))
	for id := range w.frames {
		ids = append(ids, id)
	}
	w.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		// A frame callback may cancel a later one.
		w.mu.Lock()
		fn, ok := w.frames[id]
		delete(w.frames, id)
		w.mu.Unlock()
		if ok && fn != nil {
			w.safeCall("frame", fn)
		}
	}
}

// listeners returns a copy of the bound input listeners in binding order.
func (w *engineWindow) listeners() []viewport.InputListeners {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]viewport.InputListeners, 0, len(w.inputs))
	for token := 1; token <= w.nextToken; token++ {
		if l, ok := w.inputs[token]; ok {
			out = append(out, l)
		}
	}
	return out
}

// inMount reports whether a framebuffer pixel lies inside the mounted viewport.
func (w *engineWindow) inMount(x, y float64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.hasMount {
		return x >= 0 && y >= 0 && x < float64(w.width) && y < float64(w.height)
	}
	ox, oy := w.mount.Offset()
	return x >= ox && y >= oy && x < ox+w.mount.MountWidth && y < oy+w.mount.MountHeight
}

func (w *engineWindow) isCaptured() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.captured
}

func (w *engineWindow) dispatchPointerDown(x, y float64) {
	if !w.inMount(x, y) {
		return
	}
	w.mu.Lock()
	w.inside = true
	w.mu.Unlock()

	e := common.PointerEvent{X: x, Y: y, PointerID: primaryPointer}
	for _, l := range w.listeners() {
		if l.PointerDown != nil {
			w.safeCall("pointer down", func() { l.PointerDown(e) })
		}
	}
}

func (w *engineWindow) dispatchPointerMove(x, y float64) {
	inside := w.inMount(x, y)
	w.mu.Lock()
	wasInside := w.inside
	w.inside = inside
	captured := w.captured
	w.mu.Unlock()

	if wasInside && !inside && !captured {
		w.dispatchPointerLeave(x, y)
		return
	}
	w.updateCursor()
	if !inside && !captured {
		return
	}
	e := common.PointerEvent{X: x, Y: y, PointerID: primaryPointer}
	for _, l := range w.listeners() {
		if l.PointerMove != nil {
			w.safeCall("pointer move", func() { l.PointerMove(e) })
		}
	}
}

func (w *engineWindow) dispatchPointerUp(x, y float64) {
	if !w.isCaptured() && !w.inMount(x, y) {
		return
	}
	e := common.PointerEvent{X: x, Y: y, PointerID: primaryPointer}
	for _, l := range w.listeners() {
		if l.PointerUp != nil {
			w.safeCall("pointer up", func() { l.PointerUp(e) })
		}
	}
	w.updateCursor()
}

func (w *engineWindow) dispatchPointerLeave(x, y float64) {
	w.mu.Lock()
	w.inside = false
	w.mu.Unlock()

	e := common.PointerEvent{X: x, Y: y, PointerID: primaryPointer}
	for _, l := range w.listeners() {
		if l.PointerLeave != nil {
			w.safeCall("pointer leave", func() { l.PointerLeave(e) })
		}
	}
	w.updateCursor()
}

// dispatchWheel delivers a scroll inside the mount. A desktop window has no native scroll to
// suppress, so the listeners' consumed result is not used.
func (w *engineWindow) dispatchWheel(x, y, deltaY float64) {
	if !w.inMount(x, y) {
		return
	}
	e := common.WheelEvent{DeltaY: deltaY}
	for _, l := range w.listeners() {
		if l.Wheel != nil {
			w.safeCall("wheel", func() { l.Wheel(e) })
		}
	}
}

func (w *engineWindow) dispatchResize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	fns := make([]func(), 0, len(w.resizes))
	for token := 1; token <= w.nextToken; token++ {
		if fn, ok := w.resizes[token]; ok {
			fns = append(fns, fn)
		}
	}
	w.mu.Unlock()

	for _, fn := range fns {
		w.safeCall("resize", fn)
	}
}

// effectiveCursor is the requested cursor while the pointer is over the mount or captured,
// and the default arrow elsewhere.
func (w *engineWindow) effectiveCursor() common.Cursor {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inside || w.captured {
		return w.cursor
	}
	return common.CursorDefault
}

func (w *engineWindow) updateCursor() {
	c := w.effectiveCursor()
	w.mu.Lock()
	changed := c != w.applied
	w.applied = c
	w.mu.Unlock()
	if changed {
		platformSetCursor(w, c)
	}
}

// safeCall runs fn and logs a panic instead of tearing down the event loop.
func (w *engineWindow) safeCall(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Errorf("panic in %s callback: %v", what, r)
		}
	}()
	fn()
}

// primaryPointer is the pointer id of the mouse; GLFW reports a single pointer.
const primaryPointer = 1
