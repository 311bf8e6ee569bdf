package viewport

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/render"
	"github.com/Carmen-Shannon/oxy-globe/engine/state"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fitDistance = common.FitDistance(1, 75, 1.4)

func newTestViewport(t *testing.T, e *fakeEngine, options ...ViewportOption) Viewport {
	t.Helper()
	options = append([]ViewportOption{WithLogger(logger.NewNopLogger())}, options...)
	v, err := NewViewport(e, options...)
	require.NoError(t, err)
	return v
}

func attached(t *testing.T, options ...ViewportOption) (Viewport, *fakeEngine, *fakeHost) {
	t.Helper()
	e := &fakeEngine{}
	h := newFakeHost(300, 200, 1000, 500)
	v := newTestViewport(t, e, options...)
	require.NoError(t, v.Attach(h, nil))
	return v, e, h
}

func TestNewViewport_RequiresEngine(t *testing.T) {
	v, err := NewViewport(nil)
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrNoRenderEngine)
}

func TestAttach_NilHost(t *testing.T) {
	v := newTestViewport(t, &fakeEngine{})
	assert.ErrorIs(t, v.Attach(nil, nil), ErrNilHost)
	assert.Equal(t, StatusUnattached, v.Status())
}

func TestAttach_BuildsSceneAndStartsLoop(t *testing.T) {
	v, e, h := attached(t, WithTextureURL("earth.jpg"))

	assert.Equal(t, StatusActive, v.Status())
	assert.Len(t, h.frames, 1)
	assert.Equal(t, common.CursorGrab, h.cursor)
	require.NotNil(t, h.listeners)
	require.NotNil(t, h.resize)

	lights := e.lastScene.Lights()
	require.Len(t, lights, 2)
	assert.Equal(t, render.AmbientLight(0xffffff, 1.2), lights[0])
	assert.Equal(t, render.LightDirectional, lights[1].Kind)
	assert.Equal(t, 0.8, lights[1].Intensity)
	assert.Equal(t, mgl32.Vec3{5, 3, 5}, lights[1].Position)

	assert.Equal(t, []sphereCall{{radius: 1, segments: 64, textureURL: "earth.jpg"}}, e.calls)

	r := e.lastRenderer()
	assert.True(t, r.antialias)
	assert.True(t, r.alpha)
	assert.Equal(t, [2]int{300, 200}, r.sizes[0])

	cam := e.lastCamera()
	assert.Equal(t, 75.0, cam.Fov())
	assert.Equal(t, 0.01, cam.Near())
	assert.Equal(t, 1000.0, cam.Far())
}

func TestAttach_ZeroBoxFallsBackTo400(t *testing.T) {
	e := &fakeEngine{}
	h := newFakeHost(0, 0, 1000, 500)
	v := newTestViewport(t, e)
	require.NoError(t, v.Attach(h, nil))

	assert.Equal(t, [2]int{400, 400}, e.lastRenderer().sizes[0])
}

func TestAttach_FullscreenLayout(t *testing.T) {
	v, e, h := attached(t)

	g := v.Geometry()
	assert.Equal(t, layout.ModeFullscreen, g.Mode)
	assert.Equal(t, 1000.0, g.MountWidth)
	assert.Equal(t, 500.0, g.MountHeight)
	assert.InDelta(t, fitDistance, g.CameraDistance, 1e-12)
	require.Len(t, h.mounts, 1)
	assert.True(t, g.Equal(h.mounts[0]))

	r := e.lastRenderer()
	assert.Equal(t, 1000, r.width)
	assert.Equal(t, 500, r.height)
	assert.InDelta(t, 2, e.lastCamera().Aspect(), 1e-12)
	assert.InDelta(t, fitDistance, e.lastCamera().Distance(), 1e-12)
	assert.InDelta(t, fitDistance, v.ViewportState().CameraDistance, 1e-12)
}

func TestAttach_ExplicitSize(t *testing.T) {
	e := &fakeEngine{}
	h := newFakeHost(300, 200, 1000, 500)
	v := newTestViewport(t, e)
	require.NoError(t, v.Attach(h, layout.Attributes{layout.AttrWidth: "200", layout.AttrHeight: "300"}))

	g := v.Geometry()
	assert.Equal(t, layout.ExplicitSize{Width: 200, Height: 300}, v.Config())
	assert.Equal(t, 200.0, g.MountWidth)
	assert.Equal(t, 300.0, g.MountHeight)
	assert.Equal(t, 1.8, g.CameraDistance)
	assert.Equal(t, 200, e.lastRenderer().width)
	assert.Equal(t, 300, e.lastRenderer().height)
	assert.InDelta(t, 200.0/300.0, e.lastCamera().Aspect(), 1e-12)
	assert.Equal(t, 1.8, e.lastCamera().Distance())
}

func TestAttach_ResponsiveSquareOffsetsRenderer(t *testing.T) {
	_, e, _ := attached(t, WithStrategy(layout.StrategyResponsiveSquare))

	r := e.lastRenderer()
	assert.Equal(t, 500, r.width)
	assert.Equal(t, 500, r.height)
	assert.Equal(t, 250, r.offsetX)
	assert.Equal(t, 0, r.offsetY)
	assert.Equal(t, 1.0, e.lastCamera().Aspect())
}

func TestAttach_Twice(t *testing.T) {
	v, _, h := attached(t)
	assert.ErrorIs(t, v.Attach(h, nil), ErrAlreadyAttached)
	assert.Equal(t, StatusActive, v.Status())
}

func TestFrameLoop_IdleSpin(t *testing.T) {
	v, e, h := attached(t)

	h.ticks(5)

	assert.Equal(t, 5, e.renders)
	assert.InDelta(t, 5*state.DefaultSpinSpeed, v.ViewportState().Rotation.Y, 1e-12)
	_, y := e.lastSphere().Rotation()
	assert.InDelta(t, 5*state.DefaultSpinSpeed, y, 1e-12)
}

func TestSetSpinSpeed_BeforeDrag(t *testing.T) {
	v, _, h := attached(t)

	assert.True(t, v.SetSpinSpeed(0.1))
	h.ticks(2)
	assert.InDelta(t, 0.2, v.ViewportState().Rotation.Y, 1e-12)
}

func TestSetSpinSpeed_BeforeAttachCarriesOver(t *testing.T) {
	e := &fakeEngine{}
	h := newFakeHost(300, 200, 1000, 500)
	v := newTestViewport(t, e)

	assert.True(t, v.SetSpinSpeed(0.01))
	require.NoError(t, v.Attach(h, nil))
	h.tick()
	assert.InDelta(t, 0.01, v.ViewportState().Rotation.Y, 1e-12)
}

func TestDrag_DisablesAutoSpinForGood(t *testing.T) {
	v, e, h := attached(t)

	h.drag(0, 0, 100, 50)
	snap := v.ViewportState()
	assert.False(t, snap.AutoSpin)
	assert.InDelta(t, 0.5, snap.Rotation.Y, 1e-12)
	assert.InDelta(t, 0.25, snap.Rotation.X, 1e-12)

	assert.False(t, v.SetSpinSpeed(0.1))
	h.ticks(3)
	assert.InDelta(t, 0.5, v.ViewportState().Rotation.Y, 1e-12)
	x, y := e.lastSphere().Rotation()
	assert.InDelta(t, 0.25, x, 1e-12)
	assert.InDelta(t, 0.5, y, 1e-12)
}

func TestFrameLoop_NoSpinWhileDragging(t *testing.T) {
	v, _, h := attached(t)

	h.listeners.PointerDown(common.PointerEvent{X: 10, Y: 10, PointerID: 1})
	assert.True(t, v.Dragging())
	h.ticks(3)
	assert.Zero(t, v.ViewportState().Rotation.Y)
}

func TestWheel_ZoomsCamera(t *testing.T) {
	v, e, h := attached(t)

	assert.True(t, h.listeners.Wheel(common.WheelEvent{DeltaY: 10}))
	h.tick()

	want := fitDistance + 10*0.05
	assert.InDelta(t, want, v.ViewportState().CameraDistance, 1e-12)
	assert.InDelta(t, want, e.lastCamera().Distance(), 1e-12)

	for range 1000 {
		h.listeners.Wheel(common.WheelEvent{DeltaY: 100})
	}
	assert.Equal(t, state.MaxDistance, v.ViewportState().CameraDistance)
}

func TestResize_RefitsLayout(t *testing.T) {
	v, e, h := attached(t)

	h.resizeWindow(800, 800)

	g := v.Geometry()
	assert.Equal(t, 800.0, g.MountWidth)
	assert.Equal(t, 800.0, g.MountHeight)
	assert.Len(t, h.mounts, 2)
	assert.Equal(t, 800, e.lastRenderer().width)
	assert.Equal(t, 1.0, e.lastCamera().Aspect())

	again := v.Geometry()
	h.resizeWindow(800, 800)
	assert.True(t, again.Equal(v.Geometry()))
}

func TestDetach_ReleasesEverything(t *testing.T) {
	v, e, h := attached(t)
	h.ticks(2)

	v.Detach()

	assert.Equal(t, StatusDetached, v.Status())
	assert.Empty(t, h.frames)
	assert.Equal(t, 1, h.cancelled)
	assert.Nil(t, h.listeners)
	assert.Nil(t, h.resize)
	assert.Equal(t, 1, e.lastRenderer().disposed)
	assert.Empty(t, e.lastScene.Lights())

	h.ticks(3)
	assert.Equal(t, 2, e.renders)

	v.Detach()
	assert.Equal(t, 1, e.lastRenderer().disposed)
}

func TestDetach_DuringDragReleasesCapture(t *testing.T) {
	v, _, h := attached(t)

	h.listeners.PointerDown(common.PointerEvent{X: 1, Y: 1, PointerID: 7})
	require.True(t, h.captured[7])

	v.Detach()
	assert.False(t, v.Dragging())
	assert.Empty(t, h.captured)
}

func TestDetach_StaleFrameAfterDetachIsInert(t *testing.T) {
	v, e, h := attached(t)

	var stale func()
	for _, cb := range h.frames {
		stale = cb
	}
	v.Detach()
	stale()

	assert.Zero(t, e.renders)
}

func TestReattach_FreshResources(t *testing.T) {
	v, e, h := attached(t)
	h.listeners.PointerDown(common.PointerEvent{X: 1, Y: 1, PointerID: 1})
	v.Detach()

	require.NoError(t, v.Attach(h, nil))

	assert.Equal(t, StatusActive, v.Status())
	assert.Len(t, e.renderers, 2)
	assert.Zero(t, e.lastRenderer().disposed)
	assert.False(t, v.Dragging())
	assert.True(t, v.ViewportState().AutoSpin)

	h.tick()
	assert.Equal(t, 1, e.renders)
	assert.InDelta(t, state.DefaultSpinSpeed, v.ViewportState().Rotation.Y, 1e-12)
}

func TestAttach_RendererFailureRollsBack(t *testing.T) {
	e := &fakeEngine{rendererErr: errGPU}
	h := newFakeHost(300, 200, 1000, 500)
	v := newTestViewport(t, e)

	err := v.Attach(h, nil)
	assert.ErrorIs(t, err, errGPU)
	assert.Equal(t, StatusUnattached, v.Status())
	assert.Nil(t, h.listeners)
	assert.Empty(t, h.frames)

	e.rendererErr = nil
	require.NoError(t, v.Attach(h, nil))
	assert.Equal(t, StatusActive, v.Status())
}

func TestAttach_SphereFailureDisposesRenderer(t *testing.T) {
	e := &fakeEngine{sphereErr: errGPU}
	h := newFakeHost(300, 200, 1000, 500)
	v := newTestViewport(t, e)

	err := v.Attach(h, nil)
	assert.ErrorIs(t, err, errGPU)
	assert.Equal(t, StatusUnattached, v.Status())
	assert.Equal(t, 1, e.lastRenderer().disposed)
	assert.Nil(t, h.listeners)
	assert.Empty(t, h.frames)
	assert.Empty(t, e.lastScene.Lights())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "unattached", StatusUnattached.String())
	assert.Equal(t, "initializing", StatusInitializing.String())
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "detached", StatusDetached.String())
	assert.Equal(t, "unknown", Status(42).String())
}

func TestID_Unique(t *testing.T) {
	a := newTestViewport(t, &fakeEngine{})
	b := newTestViewport(t, &fakeEngine{})
	assert.NotEqual(t, a.ID(), b.ID())
}
