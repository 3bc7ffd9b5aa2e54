package renderer

import "github.com/spaghettifunk/gyre/engine/renderer/metadata"

// RendererBackend draws render packets. Backends are driven from the
// engine's event loop and need not be safe for concurrent use.
type RendererBackend interface {
	Initialize(appName string) error
	Shutdown() error
	BeginFrame(packet *metadata.RenderPacket) error
	DrawLayer(layer metadata.Layer) error
	EndFrame(packet *metadata.RenderPacket) error
}
