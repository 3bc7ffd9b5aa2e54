package systems

import (
	"github.com/spaghettifunk/gyre/engine/core"
	"github.com/spaghettifunk/gyre/engine/renderer"
)

type SystemManager struct {
	GeometrySystem *GeometrySystem
	Renderer       *renderer.Renderer
}

func NewSystemManager(geometryConfig GeometrySystemConfig, backends ...renderer.RendererBackend) (*SystemManager, error) {
	gs, err := NewGeometrySystem(geometryConfig)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		GeometrySystem: gs,
		Renderer:       renderer.New(backends...),
	}, nil
}

func (sm *SystemManager) Initialize(appName string) error {
	return sm.Renderer.Initialize(appName)
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.Renderer.Shutdown(); err != nil {
		core.LogError(err.Error())
		return err
	}
	return nil
}
