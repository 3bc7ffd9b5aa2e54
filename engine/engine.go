package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/platform"
	"github.com/spaghettifunk/gyre/engine/renderer"
	"github.com/spaghettifunk/gyre/engine/renderer/metadata"
	"github.com/spaghettifunk/gyre/engine/renderer/snapshot"
	"github.com/spaghettifunk/gyre/engine/resources"
	"github.com/spaghettifunk/gyre/engine/scene"
	"github.com/spaghettifunk/gyre/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine initialization is complete and commands are accepted
	EngineStageInitialized
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type AnimationStage uint8

const (
	// No tick chain is armed, or the armed tick will end the chain.
	AnimationStageIdle AnimationStage = iota
	// Ticks advance the angle and re-arm themselves.
	AnimationStageRunning
)

func (s AnimationStage) String() string {
	if s == AnimationStageRunning {
		return "running"
	}
	return "idle"
}

// Degrees added to the angle by every tick.
const AngleStep int64 = 1

// Engine owns the scene and drives the animation. Every method must be
// called from the scheduler's event context; see platform.EventLoop.
type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *ApplicationConfig
	scheduler     platform.Scheduler
	systemManager *systems.SystemManager
	scene         *scene.Scene
	events        *core.EventBus
	clock         *core.Clock
	metrics       *core.Metrics
	tickInterval  time.Duration
	// generation identifies the tick chain armed by the latest Start.
	generation uint64
}

func New(g *Game, scheduler platform.Scheduler, backends ...renderer.RendererBackend) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	config := g.ApplicationConfig
	if err := config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	if config.Snapshot.Enabled {
		backends = append(backends, snapshot.New(config.SnapshotBackendConfig()))
	}
	sm, err := systems.NewSystemManager(config.GeometrySystemConfig(), backends...)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	clock := core.NewClock()
	if src, ok := scheduler.(interface{ Now() time.Time }); ok {
		clock = core.NewClockWithSource(src.Now)
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		config:        config,
		scheduler:     scheduler,
		systemManager: sm,
		scene:         scene.New(config.RadiusBounds(), config.CylinderHeight),
		events:        core.NewEventBus(),
		clock:         clock,
		metrics:       core.NewMetrics(),
		tickInterval:  config.TickInterval(),
	}, nil
}

func (e *Engine) Initialize() error {
	if err := core.SetLogLevel(e.config.LogLevel); err != nil {
		core.LogWarn("unknown log level %q, keeping the current one", e.config.LogLevel)
	}
	if err := e.systemManager.Initialize(e.config.Name); err != nil {
		return err
	}
	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized (scene %s, tick %s)", e.config.Name, e.scene.ID(), e.tickInterval)
	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.scene.SetRunning(false)
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	e.events.Shutdown()
	return e.systemManager.Shutdown()
}

func (e *Engine) Events() *core.EventBus {
	return e.events
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) Angle() int64 {
	return e.scene.Angle()
}

func (e *Engine) Solid() (resources.Solid, bool) {
	return e.scene.Solid()
}

func (e *Engine) Transformation() resources.TransformationChoice {
	return e.scene.Choice()
}

func (e *Engine) RadiusBounds() resources.RadiusBounds {
	return e.scene.Bounds()
}

func (e *Engine) FrameNumber() uint64 {
	return e.systemManager.Renderer.FrameNumber()
}

func (e *Engine) AnimationStage() AnimationStage {
	if e.scene.Running() {
		return AnimationStageRunning
	}
	return AnimationStageIdle
}

// SelectSolid validates radius against the configured bounds and, on
// success, replaces the solid, resets the angle and the transformation and
// redraws. On failure nothing changes.
func (e *Engine) SelectSolid(kind resources.SolidKind, radius float64) error {
	if err := e.scene.SelectSolid(kind, radius); err != nil {
		core.LogWarn("select solid: %s", err)
		return err
	}
	solid, _ := e.scene.Solid()
	core.LogDebug("selected %s", solid)
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_SOLID_SELECTED, Data: solid})
	e.redraw()
	return nil
}

// SelectTransformation replaces the transformation applied after the
// rotation. The animation is not affected.
func (e *Engine) SelectTransformation(choice resources.TransformationChoice) error {
	if err := e.scene.SelectTransformation(choice); err != nil {
		core.LogWarn("select transformation: %s", err)
		return err
	}
	e.events.Fire(core.EventContext{
		Type:  core.EVENT_CODE_TRANSFORMATION_SELECTED,
		Angle: e.scene.Angle(),
		Data:  choice,
	})
	e.redraw()
	return nil
}

// Start moves the animation to Running and arms the first tick. The current
// radius is re-validated first since the bounds may have been reloaded.
// Starting while running does nothing else.
func (e *Engine) Start() error {
	if err := e.scene.ValidateSolid(); err != nil {
		core.LogWarn("start: %s", err)
		return err
	}
	if e.scene.Running() {
		return nil
	}

	e.generation++
	e.scene.SetRunning(true)
	e.clock.Start()
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_ANIMATION_STARTED, Angle: e.scene.Angle()})
	e.schedule(e.generation)
	return nil
}

// Stop moves the animation to Idle. A tick already armed still fires once
// and ends the chain.
func (e *Engine) Stop() {
	if !e.scene.Running() {
		return
	}
	e.scene.SetRunning(false)
	e.clock.Stop()
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_ANIMATION_STOPPED, Angle: e.scene.Angle()})
}

// Clear stops the animation, resets the scene and redraws the empty view.
func (e *Engine) Clear() {
	e.Stop()
	e.scene.Clear()
	e.metrics.Reset()
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_SCENE_CLEARED})
	e.redraw()
}

// Redraw renders the current state. With no solid selected the empty frame
// is drawn and ErrNoSolidSelected is returned.
func (e *Engine) Redraw() error {
	return e.render()
}

// ApplyConfig takes over the reloadable parts of config: radius bounds,
// cylinder height, tick interval and log level. The current solid is kept.
// If its radius falls outside the new bounds the animation is stopped, so
// the next Start re-validates it.
func (e *Engine) ApplyConfig(config *ApplicationConfig) error {
	if err := config.Validate(); err != nil {
		core.LogError("config not applied: %s", err)
		return err
	}
	if config.Resolution != e.config.Resolution || config.Snapshot != e.config.Snapshot {
		core.LogWarn("resolution and snapshot settings only take effect after a restart")
	}
	if err := core.SetLogLevel(config.LogLevel); err != nil {
		core.LogWarn("unknown log level %q, keeping the current one", config.LogLevel)
	}

	e.scene.SetBounds(config.RadiusBounds())
	e.scene.SetCylinderHeight(config.CylinderHeight)
	e.systemManager.GeometrySystem.SetBounds(config.RadiusBounds())
	e.tickInterval = config.TickInterval()

	if err := e.scene.ValidateSolid(); err != nil && e.scene.Running() {
		core.LogWarn("stopping animation: %s", err)
		e.Stop()
	}

	applied := *config
	applied.Resolution, applied.Snapshot = e.config.Resolution, e.config.Snapshot
	e.config = &applied

	core.LogInfo("configuration applied: radius [%g, %g], tick %s", config.RadiusMin, config.RadiusMax, e.tickInterval)
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_CONFIG_RELOADED, Data: config})
	return nil
}

func (e *Engine) schedule(generation uint64) {
	e.scheduler.AfterFunc(e.tickInterval, func() { e.tick(generation) })
}

// tick advances the angle, renders and re-arms itself. A chain ends when
// the animation is no longer running or a newer Start armed another chain.
func (e *Engine) tick(generation uint64) {
	if !e.scene.Running() || generation != e.generation {
		core.LogDebug("tick chain %d ended at angle %d", generation, e.scene.Angle())
		return
	}

	e.clock.Update()
	start := e.clock.Elapsed()

	angle := e.scene.Advance(AngleStep)
	e.events.Fire(core.EventContext{Type: core.EVENT_CODE_TICK, Angle: angle})
	if err := e.render(); err != nil && !errors.Is(err, core.ErrNoSolidSelected) {
		core.LogError("tick %d: %s", angle, err)
	}

	e.clock.Update()
	e.metrics.Update(e.clock.Elapsed()-start, e.tickInterval)

	e.schedule(generation)
}

func (e *Engine) redraw() {
	if err := e.render(); err != nil && !errors.Is(err, core.ErrNoSolidSelected) {
		core.LogError("redraw: %s", err)
	}
}

func (e *Engine) render() error {
	packet, err := e.scene.Compose(e.systemManager.GeometrySystem)
	if errors.Is(err, core.ErrNoSolidSelected) {
		packet = e.scene.EmptyPacket()
	} else if err != nil {
		return err
	}

	if drawErr := e.draw(packet); drawErr != nil {
		return drawErr
	}
	return err
}

func (e *Engine) draw(packet *metadata.RenderPacket) error {
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(packet); err != nil {
			return fmt.Errorf("game render: %w", err)
		}
	}
	return e.systemManager.Renderer.DrawFrame(packet)
}
