package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-globe/engine/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	downs, moves, ups, leaves []common.PointerEvent
	wheels                    []common.WheelEvent
}

func (r *recorder) listeners() viewport.InputListeners {
	return viewport.InputListeners{
		PointerDown:  func(e common.PointerEvent) { r.downs = append(r.downs, e) },
		PointerMove:  func(e common.PointerEvent) { r.moves = append(r.moves, e) },
		PointerUp:    func(e common.PointerEvent) { r.ups = append(r.ups, e) },
		PointerLeave: func(e common.PointerEvent) { r.leaves = append(r.leaves, e) },
		Wheel: func(e common.WheelEvent) bool {
			r.wheels = append(r.wheels, e)
			return true
		},
	}
}

func ptr(v float64) *float64 { return &v }

func mountedWindow() *engineWindow {
	w := newEngineWindow(WithWidth(800), WithHeight(600))
	w.SetMount(layout.Geometry{
		MountWidth:   200,
		MountHeight:  100,
		MountOffsetX: ptr(50),
		MountOffsetY: ptr(40),
		Position:     layout.PositionFixed,
	})
	return w
}

func TestNewEngineWindow_Defaults(t *testing.T) {
	w := newEngineWindow(WithTitle("earth"), WithWidth(640), WithHeight(480))

	assert.Equal(t, "earth", w.title)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
	bw, bh := w.Box()
	assert.Equal(t, 640.0, bw)
	assert.Equal(t, 480.0, bh)
	assert.Equal(t, layout.Window{Width: 640, Height: 480}, w.WindowSize())
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestRunFrames_RunsInRequestOrderOnce(t *testing.T) {
	w := newEngineWindow()
	var got []int
	w.RequestFrame(func() { got = append(got, 1) })
	w.RequestFrame(func() { got = append(got, 2) })
	w.RequestFrame(func() { got = append(got, 3) })

	w.runFrames()
	w.runFrames()

	assert.Equal(t, []int{1, 2, 3}, got)
	assert.False(t, w.hasPendingFrames())
}

func TestRunFrames_RequestDuringRunWaitsForNextIteration(t *testing.T) {
	w := newEngineWindow()
	count := 0
	var loop func()
	loop = func() {
		count++
		w.RequestFrame(loop)
	}
	w.RequestFrame(loop)

	w.runFrames()
	assert.Equal(t, 1, count)
	assert.True(t, w.hasPendingFrames())

	w.runFrames()
	assert.Equal(t, 2, count)
}

func TestCancelFrame(t *testing.T) {
	w := newEngineWindow()
	ran := false
	id := w.RequestFrame(func() { ran = true })
	w.CancelFrame(id)
	w.CancelFrame(id)

	w.runFrames()
	assert.False(t, ran)
}

func TestRunFrames_FrameCanCancelLaterFrame(t *testing.T) {
	w := newEngineWindow()
	ran := false
	var second scheduler.FrameRequest
	w.RequestFrame(func() { w.CancelFrame(second) })
	second = w.RequestFrame(func() { ran = true })

	w.runFrames()
	assert.False(t, ran)
}

func TestRunFrames_RecoversPanic(t *testing.T) {
	w := newEngineWindow()
	ran := false
	w.RequestFrame(func() { panic("boom") })
	w.RequestFrame(func() { ran = true })

	assert.NotPanics(t, w.runFrames)
	assert.True(t, ran)
}

func TestPointerDown_OnlyInsideMount(t *testing.T) {
	w := mountedWindow()
	rec := &recorder{}
	w.BindInput(rec.listeners())

	w.dispatchPointerDown(10, 10)
	w.dispatchPointerDown(100, 60)

	require.Len(t, rec.downs, 1)
	assert.Equal(t, common.PointerEvent{X: 100, Y: 60, PointerID: primaryPointer}, rec.downs[0])
}

func TestPointerDown_WholeWindowBeforeMount(t *testing.T) {
	w := newEngineWindow(WithWidth(800), WithHeight(600))
	rec := &recorder{}
	w.BindInput(rec.listeners())

	w.dispatchPointerDown(10, 10)
	w.dispatchPointerDown(900, 10)

	assert.Len(t, rec.downs, 1)
}

func TestPointerMove_CapturedOutsideMountStillDelivered(t *testing.T) {
	w := mountedWindow()
	rec := &recorder{}
	w.BindInput(rec.listeners())

	w.dispatchPointerDown(100, 60)
	w.SetPointerCapture(primaryPointer)
	w.dispatchPointerMove(600, 500)
	w.dispatchPointerUp(600, 500)

	assert.Len(t, rec.moves, 1)
	assert.Len(t, rec.ups, 1)
	assert.Empty(t, rec.leaves)
}

func TestPointerMove_LeavingMountUncapturedSendsLeave(t *testing.T) {
	w := mountedWindow()
	rec := &recorder{}
	w.BindInput(rec.listeners())

	w.dispatchPointerMove(100, 60)
	w.dispatchPointerMove(600, 500)
	w.dispatchPointerMove(700, 500)

	assert.Len(t, rec.moves, 1)
	assert.Len(t, rec.leaves, 1)
}

func TestPointerUp_OutsideMountUncapturedIgnored(t *testing.T) {
	w := mountedWindow()
	rec := &recorder{}
	w.BindInput(rec.listeners())

	w.dispatchPointerUp(600, 500)
	assert.Empty(t, rec.ups)
}

func TestReleasePointerCapture_OtherPointerIgnored(t *testing.T) {
	w := mountedWindow()
	w.SetPointerCapture(primaryPointer)
	w.ReleasePointerCapture(7)
	assert.True(t, w.isCaptured())
	w.ReleasePointerCapture(primaryPointer)
	assert.False(t, w.isCaptured())
}

func TestWheel_OnlyInsideMount(t *testing.T) {
	w := mountedWindow()
	rec := &recorder{}
	w.BindInput(rec.listeners())

	w.dispatchWheel(10, 10, 1)
	w.dispatchWheel(60, 50, -1)

	require.Len(t, rec.wheels, 1)
	assert.Equal(t, -1.0, rec.wheels[0].DeltaY)
}

func TestBindInput_Unbind(t *testing.T) {
	w := mountedWindow()
	rec := &recorder{}
	unbind := w.BindInput(rec.listeners())
	unbind()
	unbind()

	w.dispatchPointerDown(100, 60)
	assert.Empty(t, rec.downs)
}

func TestDispatchResize(t *testing.T) {
	w := newEngineWindow(WithWidth(800), WithHeight(600))
	calls := 0
	var seen layout.Window
	unbind := w.BindResize(func() {
		calls++
		seen = w.WindowSize()
	})

	w.dispatchResize(1024, 768)
	assert.Equal(t, 1, calls)
	assert.Equal(t, layout.Window{Width: 1024, Height: 768}, seen)

	unbind()
	w.dispatchResize(640, 480)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 640, w.Width())
}

func TestListenerPanicIsRecovered(t *testing.T) {
	w := mountedWindow()
	rec := &recorder{}
	w.BindInput(viewport.InputListeners{PointerDown: func(common.PointerEvent) { panic("boom") }})
	w.BindInput(rec.listeners())

	assert.NotPanics(t, func() { w.dispatchPointerDown(100, 60) })
	assert.Len(t, rec.downs, 1)
}

func TestEffectiveCursor(t *testing.T) {
	w := mountedWindow()
	w.SetCursor(common.CursorGrab)
	assert.Equal(t, common.CursorDefault, w.effectiveCursor())

	w.dispatchPointerMove(100, 60)
	assert.Equal(t, common.CursorGrab, w.effectiveCursor())

	w.SetCursor(common.CursorGrabbing)
	w.SetPointerCapture(primaryPointer)
	w.dispatchPointerMove(700, 500)
	assert.Equal(t, common.CursorGrabbing, w.effectiveCursor())

	w.ReleasePointerCapture(primaryPointer)
	w.dispatchPointerLeave(700, 500)
	assert.Equal(t, common.CursorDefault, w.effectiveCursor())
}

func TestMount(t *testing.T) {
	w := mountedWindow()
	assert.Equal(t, 200.0, w.Mount().MountWidth)
	assert.True(t, w.inMount(50, 40))
	assert.False(t, w.inMount(250, 40))
}

func TestRequestClose_BeforeOpenIsSafe(t *testing.T) {
	w := newEngineWindow()

	w.RequestClose()
	w.RequestClose()

	assert.True(t, w.closing.Load())
	assert.False(t, w.IsRunning())
}
