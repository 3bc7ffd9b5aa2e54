package testbed

import (
	"fmt"

	"github.com/spaghettifunk/gyre/engine"
	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/renderer/metadata"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	frames     uint64
	emptyFrame uint64
	lastAngle  int64
	lastPoints int

	reloads int
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	if config == nil {
		config = engine.DefaultApplicationConfig()
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnRender = tg.Render
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")
	*g.state() = gameState{}
	return nil
}

// Attach subscribes the game to the engine events it reports on.
func (g *TestGame) Attach(e *engine.Engine) {
	bus := e.Events()
	bus.Register(core.EVENT_CODE_SOLID_SELECTED, g, g.gameOnEvent)
	bus.Register(core.EVENT_CODE_TRANSFORMATION_SELECTED, g, g.gameOnEvent)
	bus.Register(core.EVENT_CODE_ANIMATION_STARTED, g, g.gameOnEvent)
	bus.Register(core.EVENT_CODE_ANIMATION_STOPPED, g, g.gameOnEvent)
	bus.Register(core.EVENT_CODE_SCENE_CLEARED, g, g.gameOnEvent)
	bus.Register(core.EVENT_CODE_CONFIG_RELOADED, g, g.gameOnEvent)
}

func (g *TestGame) Render(packet *metadata.RenderPacket) error {
	if packet == nil {
		return fmt.Errorf("nil render packet")
	}
	state := g.state()
	state.frames++
	state.lastAngle = packet.Angle

	if packet.IsEmpty() {
		state.emptyFrame++
		state.lastPoints = 0
		core.LogDebug("frame %d: empty view", state.frames)
		return nil
	}

	state.lastPoints = 0
	for _, layer := range packet.Layers {
		state.lastPoints += len(layer.Cloud)
	}
	core.LogDebug("frame %d: %s %s at %d° (%d layers, %d points)",
		state.frames, packet.Solid, packet.Transformation, packet.Angle, len(packet.Layers), state.lastPoints)
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.state()
	core.LogInfo("testbed shutting down after %d frames (%d empty), last angle %d°", state.frames, state.emptyFrame, state.lastAngle)
	return nil
}

// Frames returns how many frames reached the game since Initialize.
func (g *TestGame) Frames() uint64 {
	return g.state().frames
}

func (g *TestGame) LastAngle() int64 {
	return g.state().lastAngle
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) gameOnEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_SOLID_SELECTED:
		core.LogInfo("solid selected: %v", context.Data)
	case core.EVENT_CODE_TRANSFORMATION_SELECTED:
		core.LogInfo("transformation selected: %v", context.Data)
	case core.EVENT_CODE_ANIMATION_STARTED:
		core.LogInfo("animation started at %d°", context.Angle)
	case core.EVENT_CODE_ANIMATION_STOPPED:
		core.LogInfo("animation stopped at %d°", context.Angle)
	case core.EVENT_CODE_SCENE_CLEARED:
		core.LogInfo("scene cleared")
	case core.EVENT_CODE_CONFIG_RELOADED:
		g.state().reloads++
		core.LogInfo("configuration reloaded (%d so far)", g.state().reloads)
	default:
		return false
	}
	// Other listeners may be interested too.
	return false
}
