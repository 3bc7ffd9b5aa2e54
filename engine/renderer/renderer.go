package renderer

import (
	"fmt"

	"github.com/spaghettifunk/gyre/engine/renderer/metadata"
)

// Renderer fans a packet out to every registered backend.
type Renderer struct {
	backends    []RendererBackend
	frameNumber uint64
}

func New(backends ...RendererBackend) *Renderer {
	return &Renderer{backends: backends}
}

func (r *Renderer) AddBackend(backend RendererBackend) {
	r.backends = append(r.backends, backend)
}

func (r *Renderer) Initialize(appName string) error {
	for _, b := range r.backends {
		if err := b.Initialize(appName); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) Shutdown() error {
	var firstErr error
	for _, b := range r.backends {
		if err := b.Shutdown(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Renderer) FrameNumber() uint64 {
	return r.frameNumber
}

// DrawFrame hands packet to every backend in order. The first failure
// aborts the frame and is returned wrapped; logging is left to the caller.
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	for _, b := range r.backends {
		if err := b.BeginFrame(packet); err != nil {
			return fmt.Errorf("begin frame: %w", err)
		}
		for _, layer := range packet.Layers {
			if err := b.DrawLayer(layer); err != nil {
				return fmt.Errorf("draw %s layer: %w", layer.Role, err)
			}
		}
		if err := b.EndFrame(packet); err != nil {
			return fmt.Errorf("end frame: %w", err)
		}
	}
	r.frameNumber++
	return nil
}
