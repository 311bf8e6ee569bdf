package orbit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/state"
)

type fakeSurface struct {
	captured map[int]bool
	cursors  []common.Cursor
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{captured: map[int]bool{}}
}

func (f *fakeSurface) SetPointerCapture(id int)     { f.captured[id] = true }
func (f *fakeSurface) ReleasePointerCapture(id int) { delete(f.captured, id) }
func (f *fakeSurface) SetCursor(c common.Cursor)    { f.cursors = append(f.cursors, c) }

func (f *fakeSurface) lastCursor() common.Cursor {
	return f.cursors[len(f.cursors)-1]
}

func TestPointerDown_StartsDragAndDisablesAutoSpin(t *testing.T) {
	st := state.NewViewportState()
	surface := newFakeSurface()
	oc := NewOrbitController(st, WithSurface(surface))

	assert.Equal(t, common.CursorGrab, surface.lastCursor())

	oc.OnPointerDown(common.PointerEvent{X: 10, Y: 20, PointerID: 3})

	drag := oc.DragState()
	assert.True(t, drag.IsDragging)
	assert.Equal(t, 10.0, drag.LastX)
	assert.Equal(t, 20.0, drag.LastY)
	assert.False(t, st.AutoSpin())
	assert.True(t, surface.captured[3])
	assert.Equal(t, common.CursorGrabbing, surface.lastCursor())
}

func TestPointerMove_RotatesByPixelDelta(t *testing.T) {
	st := state.NewViewportState()
	oc := NewOrbitController(st)

	oc.OnPointerDown(common.PointerEvent{X: 100, Y: 100})
	oc.OnPointerMove(common.PointerEvent{X: 140, Y: 90})

	r := st.Rotation()
	assert.InDelta(t, 40*DefaultRotateSpeed, r.Y, 1e-12)
	assert.InDelta(t, -10*DefaultRotateSpeed, r.X, 1e-12)

	drag := oc.DragState()
	assert.Equal(t, 140.0, drag.LastX)
	assert.Equal(t, 90.0, drag.LastY)
}

func TestPointerMove_IgnoredWithoutDrag(t *testing.T) {
	st := state.NewViewportState()
	oc := NewOrbitController(st)

	oc.OnPointerMove(common.PointerEvent{X: 500, Y: 500})

	assert.Equal(t, state.Rotation{}, st.Rotation())
	assert.True(t, st.AutoSpin())
	assert.False(t, oc.IsDragging())
}

func TestPointerMove_YawUnclamped(t *testing.T) {
	st := state.NewViewportState()
	oc := NewOrbitController(st)

	oc.OnPointerDown(common.PointerEvent{})
	oc.OnPointerMove(common.PointerEvent{X: 10000})

	assert.InDelta(t, 50.0, st.Rotation().Y, 1e-9)
}

func TestPointerMove_PitchStaysClampedForRandomDrags(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	st := state.NewViewportState()
	oc := NewOrbitController(st)

	oc.OnPointerDown(common.PointerEvent{})
	for i := 0; i < 2000; i++ {
		oc.OnPointerMove(common.PointerEvent{
			X: rng.Float64()*4000 - 2000,
			Y: rng.Float64()*4000 - 2000,
		})
		x := st.Rotation().X
		require.GreaterOrEqual(t, x, -state.MaxPitch)
		require.LessOrEqual(t, x, state.MaxPitch)
	}
}

func TestPointerUpAndLeave_EndDragWithoutRestoringAutoSpin(t *testing.T) {
	for _, end := range []string{"up", "leave"} {
		t.Run(end, func(t *testing.T) {
			st := state.NewViewportState()
			surface := newFakeSurface()
			oc := NewOrbitController(st, WithSurface(surface))

			oc.OnPointerDown(common.PointerEvent{PointerID: 1})
			if end == "up" {
				oc.OnPointerUp(common.PointerEvent{PointerID: 1})
			} else {
				oc.OnPointerLeave(common.PointerEvent{PointerID: 1})
			}

			assert.False(t, oc.IsDragging())
			assert.False(t, st.AutoSpin())
			assert.Empty(t, surface.captured)
			assert.Equal(t, common.CursorGrab, surface.lastCursor())

			before := st.Rotation()
			oc.OnPointerMove(common.PointerEvent{X: 50, Y: 50})
			assert.Equal(t, before, st.Rotation())
		})
	}
}

func TestOnWheel_ZoomsAndClamps(t *testing.T) {
	st := state.NewViewportState()
	oc := NewOrbitController(st)

	assert.True(t, oc.OnWheel(common.WheelEvent{DeltaY: 10}))
	assert.InDelta(t, state.DefaultDistance+0.5, st.Distance(), 1e-12)

	oc.OnWheel(common.WheelEvent{DeltaY: 10000})
	assert.Equal(t, state.MaxDistance, st.Distance())

	oc.OnWheel(common.WheelEvent{DeltaY: -10000})
	assert.Equal(t, state.MinDistance, st.Distance())
}

func TestOnWheel_RandomSequencesStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	st := state.NewViewportState()
	oc := NewOrbitController(st)

	for i := 0; i < 2000; i++ {
		oc.OnWheel(common.WheelEvent{DeltaY: rng.NormFloat64() * 100})
		d := st.Distance()
		require.GreaterOrEqual(t, d, state.MinDistance)
		require.LessOrEqual(t, d, state.MaxDistance)
	}
}

func TestReset_ReleasesCapture(t *testing.T) {
	st := state.NewViewportState()
	surface := newFakeSurface()
	oc := NewOrbitController(st, WithSurface(surface))

	oc.OnPointerDown(common.PointerEvent{PointerID: 9})
	oc.Reset()

	assert.Equal(t, DragState{}, oc.DragState())
	assert.Empty(t, surface.captured)
}

func TestOptions(t *testing.T) {
	st := state.NewViewportState()
	oc := NewOrbitController(st, WithRotateSpeed(0.01), WithZoomSpeed(1))

	assert.Equal(t, 0.01, oc.RotateSpeed())
	assert.Equal(t, 1.0, oc.ZoomSpeed())

	oc.OnPointerDown(common.PointerEvent{})
	oc.OnPointerMove(common.PointerEvent{X: 10})
	assert.InDelta(t, 0.1, st.Rotation().Y, 1e-12)
}

func TestNewOrbitController_NilStatePanics(t *testing.T) {
	assert.Panics(t, func() { NewOrbitController(nil) })
}

func TestNonFiniteEventsKeepClamps(t *testing.T) {
	st := state.NewViewportState()
	oc := NewOrbitController(st)

	oc.OnPointerDown(common.PointerEvent{X: 0, Y: 0})
	oc.OnPointerMove(common.PointerEvent{X: 0, Y: math.NaN()})
	oc.OnPointerMove(common.PointerEvent{X: math.Inf(1), Y: 0})
	oc.OnPointerMove(common.PointerEvent{X: 0, Y: 10})
	assert.True(t, oc.OnWheel(common.WheelEvent{DeltaY: math.NaN()}))
	assert.True(t, oc.OnWheel(common.WheelEvent{DeltaY: math.Inf(-1)}))
	oc.OnWheel(common.WheelEvent{DeltaY: 1})

	snap := st.Snapshot()
	assert.InDelta(t, 10*DefaultRotateSpeed, snap.Rotation.X, 1e-12)
	assert.Equal(t, 0.0, snap.Rotation.Y)
	assert.InDelta(t, state.DefaultDistance+DefaultZoomSpeed, snap.CameraDistance, 1e-12)
	assert.False(t, math.IsNaN(snap.Rotation.X))
	assert.Equal(t, 10.0, oc.DragState().LastY)
}
