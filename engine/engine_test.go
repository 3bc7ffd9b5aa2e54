package engine

import (
	"testing"
	"time"

	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/math"
	"github.com/spaghettifunk/gyre/engine/platform"
	"github.com/spaghettifunk/gyre/engine/renderer/metadata"
	"github.com/spaghettifunk/gyre/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 50 * time.Millisecond

type recordingBackend struct {
	packets  []*metadata.RenderPacket
	layers   int
	shutdown bool
}

func (b *recordingBackend) Initialize(appName string) error { return nil }
func (b *recordingBackend) Shutdown() error                 { b.shutdown = true; return nil }
func (b *recordingBackend) BeginFrame(packet *metadata.RenderPacket) error {
	b.packets = append(b.packets, packet)
	return nil
}
func (b *recordingBackend) DrawLayer(layer metadata.Layer) error          { b.layers++; return nil }
func (b *recordingBackend) EndFrame(packet *metadata.RenderPacket) error { return nil }

func (b *recordingBackend) last() *metadata.RenderPacket {
	if len(b.packets) == 0 {
		return nil
	}
	return b.packets[len(b.packets)-1]
}

func newTestEngine(t *testing.T) (*Engine, *platform.ManualScheduler, *recordingBackend) {
	t.Helper()
	config := DefaultApplicationConfig()
	config.LogLevel = "error"
	sched := platform.NewManualScheduler()
	backend := &recordingBackend{}
	e, err := New(&Game{ApplicationConfig: config}, sched, backend)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	return e, sched, backend
}

func TestTickAdvancesAngleByOne(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))
	require.NoError(t, e.Start())
	assert.Equal(t, AnimationStageRunning, e.AnimationStage())

	for want := int64(1); want <= 10; want++ {
		assert.Equal(t, 1, sched.Advance(tick))
		assert.Equal(t, want, e.Angle())
	}
	assert.Equal(t, uint64(10), e.Metrics().Total())
}

func TestSphereScenarioOneTick(t *testing.T) {
	e, sched, backend := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))

	original := backend.last()
	require.NotNil(t, original)
	require.Len(t, original.Layers, 1)
	require.Len(t, original.Layers[0].Cloud, 10000)
	for _, p := range original.Layers[0].Cloud {
		assert.InDelta(t, 5, p.Length(), 1e-9)
	}

	require.NoError(t, e.Start())
	sched.Advance(tick)
	require.Equal(t, int64(1), e.Angle())

	rotated := backend.last()
	require.Equal(t, int64(1), rotated.Angle)
	r := math.NewMat3RotationY(1)
	for i, p := range original.Layers[0].Cloud {
		assert.Equal(t, p.MulMat3(r), rotated.Layers[0].Cloud[i])
	}
}

func TestStartThenStopYieldsNoExtraRotation(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))
	require.NoError(t, e.Start())
	e.Stop()
	assert.Equal(t, AnimationStageIdle, e.AnimationStage())

	// The armed tick fires once, sees the stop and ends the chain.
	assert.Equal(t, 1, sched.Advance(time.Second))
	assert.Equal(t, int64(0), e.Angle())
	assert.Equal(t, 0, sched.Pending())
}

func TestStopAfterTicksEndsChain(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindCylinder, 3))
	require.NoError(t, e.Start())
	sched.Advance(3 * tick)
	require.Equal(t, int64(3), e.Angle())

	e.Stop()
	sched.Advance(10 * tick)
	assert.Equal(t, int64(3), e.Angle())
	assert.Equal(t, 0, sched.Pending())
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))
	require.NoError(t, e.Start())
	require.NoError(t, e.Start())
	sched.Advance(tick / 2)
	require.NoError(t, e.Start())

	sched.Advance(10*tick - tick/2)
	assert.Equal(t, int64(10), e.Angle())
	assert.Equal(t, 1, sched.Pending())
}

func TestStopStartDoesNotDoubleSpeed(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))
	require.NoError(t, e.Start())
	sched.Advance(tick / 2)
	e.Stop()
	require.NoError(t, e.Start())

	// Old chain fires at 50ms and ends; new chain ticks at 75ms, 125ms, ...
	sched.Advance(10 * tick)
	assert.Equal(t, int64(10), e.Angle())
	assert.Equal(t, 1, sched.Pending())
}

func TestStartWithoutSolidKeepsTicking(t *testing.T) {
	e, sched, backend := newTestEngine(t)
	require.NoError(t, e.Start())
	sched.Advance(2 * tick)
	assert.Equal(t, int64(2), e.Angle())
	require.NotNil(t, backend.last())
	assert.True(t, backend.last().IsEmpty())
}

func TestInvalidRadiusLeavesSceneUnchanged(t *testing.T) {
	e, _, backend := newTestEngine(t)

	err := e.SelectSolid(resources.SolidKindSphere, 100)
	var radiusErr *core.InvalidRadiusError
	require.ErrorAs(t, err, &radiusErr)
	assert.Equal(t, 2.0, radiusErr.Min)
	assert.Equal(t, 50.0, radiusErr.Max)
	_, ok := e.Solid()
	assert.False(t, ok)
	assert.Empty(t, backend.packets)

	require.NoError(t, e.SelectSolid(resources.SolidKindCylinder, 3))
	frames := len(backend.packets)
	require.ErrorIs(t, e.SelectSolid(resources.SolidKindSphere, 100), core.ErrInvalidRadius)
	solid, ok := e.Solid()
	require.True(t, ok)
	assert.Equal(t, resources.SolidKindCylinder, solid.Kind)
	assert.Len(t, backend.packets, frames)
}

func TestSelectSolidResetsAngleWhileRunning(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))
	require.NoError(t, e.Start())
	sched.Advance(5 * tick)

	require.NoError(t, e.SelectSolid(resources.SolidKindCylinder, 4))
	assert.Equal(t, int64(0), e.Angle())
	assert.Equal(t, AnimationStageRunning, e.AnimationStage())
	sched.Advance(tick)
	assert.Equal(t, int64(1), e.Angle())
}

func TestProjectScenarioLayers(t *testing.T) {
	e, _, backend := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindCylinder, 3))
	require.NoError(t, e.SelectTransformation(resources.Projection(math.AxisX)))

	packet := backend.last()
	require.Len(t, packet.Layers, 3)
	projected, ok := packet.Layer(metadata.LayerRoleProjected)
	require.True(t, ok)
	complement, ok := packet.Layer(metadata.LayerRoleComplement)
	require.True(t, ok)
	for i := range projected.Cloud {
		assert.Zero(t, projected.Cloud[i].Y)
		assert.Zero(t, projected.Cloud[i].Z)
		assert.Zero(t, complement.Cloud[i].X)
	}
	assert.Equal(t, resources.Projection(math.AxisX), e.Transformation())
}

func TestSelectTransformationInvalidAxis(t *testing.T) {
	e, _, _ := newTestEngine(t)
	err := e.SelectTransformation(resources.Reflection(math.Axis(5)))
	assert.ErrorIs(t, err, core.ErrInvalidAxis)
	assert.Equal(t, resources.NoTransformation(), e.Transformation())
}

func TestClear(t *testing.T) {
	e, sched, backend := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))
	require.NoError(t, e.SelectTransformation(resources.Reflection(math.AxisZ)))
	require.NoError(t, e.Start())
	sched.Advance(4 * tick)

	e.Clear()
	assert.Equal(t, AnimationStageIdle, e.AnimationStage())
	assert.Equal(t, int64(0), e.Angle())
	_, ok := e.Solid()
	assert.False(t, ok)
	assert.Equal(t, resources.NoTransformation(), e.Transformation())
	assert.True(t, backend.last().IsEmpty())

	sched.Advance(10 * tick)
	assert.Equal(t, int64(0), e.Angle())
}

func TestRedrawWithoutSolid(t *testing.T) {
	e, _, backend := newTestEngine(t)
	assert.ErrorIs(t, e.Redraw(), core.ErrNoSolidSelected)
	require.Len(t, backend.packets, 1)
	assert.True(t, backend.packets[0].IsEmpty())
	assert.Equal(t, uint64(1), e.FrameNumber())
}

func TestApplyConfigRevalidatesOnStart(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 40))

	narrowed := DefaultApplicationConfig()
	narrowed.LogLevel = "error"
	narrowed.RadiusMin, narrowed.RadiusMax = 0.1, 1.5
	narrowed.TickIntervalMS = 20
	require.NoError(t, e.ApplyConfig(narrowed))
	assert.Equal(t, resources.RadiusBounds{Min: 0.1, Max: 1.5}, e.RadiusBounds())

	assert.ErrorIs(t, e.Start(), core.ErrInvalidRadius)
	assert.Equal(t, AnimationStageIdle, e.AnimationStage())

	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 1))
	require.NoError(t, e.Start())
	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, int64(5), e.Angle())
}

func TestApplyConfigStopsAnimationOutsideNewBounds(t *testing.T) {
	e, sched, backend := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 40))
	require.NoError(t, e.Start())
	sched.Advance(100 * time.Millisecond)
	require.Equal(t, int64(2), e.Angle())
	require.Len(t, backend.packets, 3)

	stopped := 0
	e.Events().Register(core.EVENT_CODE_ANIMATION_STOPPED, t, func(core.EventContext) bool {
		stopped++
		return true
	})

	narrowed := DefaultApplicationConfig()
	narrowed.LogLevel = "error"
	narrowed.RadiusMin, narrowed.RadiusMax = 0.1, 1.5
	require.NoError(t, e.ApplyConfig(narrowed))

	assert.Equal(t, AnimationStageIdle, e.AnimationStage())
	assert.Equal(t, 1, stopped)

	// The armed tick ends the chain without advancing or rendering.
	sched.Advance(time.Second)
	assert.Equal(t, int64(2), e.Angle())
	assert.Len(t, backend.packets, 3)
	assert.Zero(t, sched.Pending())

	solid, ok := e.Solid()
	require.True(t, ok)
	assert.Equal(t, 40.0, solid.Radius)
	assert.ErrorIs(t, e.Start(), core.ErrInvalidRadius)
}

func TestApplyConfigKeepsAnimationInsideNewBounds(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))
	require.NoError(t, e.Start())

	widened := DefaultApplicationConfig()
	widened.LogLevel = "error"
	widened.RadiusMin, widened.RadiusMax = 1, 10
	require.NoError(t, e.ApplyConfig(widened))

	assert.Equal(t, AnimationStageRunning, e.AnimationStage())
	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, int64(2), e.Angle())
}

func TestApplyConfigRejectsInvalid(t *testing.T) {
	e, _, _ := newTestEngine(t)
	bad := DefaultApplicationConfig()
	bad.RadiusMin, bad.RadiusMax = 10, 1
	assert.ErrorIs(t, e.ApplyConfig(bad), core.ErrInvalidConfig)
	assert.Equal(t, resources.RadiusBounds{Min: 2, Max: 50}, e.RadiusBounds())
}

func TestEventsAreFired(t *testing.T) {
	e, sched, _ := newTestEngine(t)
	var codes []core.EventCode
	var tickAngles []int64
	record := func(ctx core.EventContext) bool {
		codes = append(codes, ctx.Type)
		if ctx.Type == core.EVENT_CODE_TICK {
			tickAngles = append(tickAngles, ctx.Angle)
		}
		return false
	}
	for _, code := range []core.EventCode{
		core.EVENT_CODE_SOLID_SELECTED,
		core.EVENT_CODE_ANIMATION_STARTED,
		core.EVENT_CODE_TICK,
		core.EVENT_CODE_ANIMATION_STOPPED,
		core.EVENT_CODE_SCENE_CLEARED,
	} {
		require.True(t, e.Events().Register(code, "test", record))
	}

	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))
	require.NoError(t, e.Start())
	sched.Advance(2 * tick)
	e.Clear()

	assert.Equal(t, []core.EventCode{
		core.EVENT_CODE_SOLID_SELECTED,
		core.EVENT_CODE_ANIMATION_STARTED,
		core.EVENT_CODE_TICK,
		core.EVENT_CODE_TICK,
		core.EVENT_CODE_ANIMATION_STOPPED,
		core.EVENT_CODE_SCENE_CLEARED,
	}, codes)
	assert.Equal(t, []int64{1, 2}, tickAngles)
}

func TestShutdown(t *testing.T) {
	e, sched, backend := newTestEngine(t)
	require.NoError(t, e.SelectSolid(resources.SolidKindSphere, 5))
	require.NoError(t, e.Start())
	require.NoError(t, e.Shutdown())
	assert.True(t, backend.shutdown)
	sched.Advance(tick)
	assert.Equal(t, int64(0), e.Angle())
}
