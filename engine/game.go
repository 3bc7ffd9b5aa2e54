package engine

import "github.com/spaghettifunk/gyre/engine/renderer/metadata"

// Game is the external collaborator driving the engine: it owns the
// presentation and receives every frame through FnRender. All hooks are
// optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnRender          Render
	FnShutdown        Shutdown
}

type Initialize func() error
type Render func(packet *metadata.RenderPacket) error
type Shutdown func() error
