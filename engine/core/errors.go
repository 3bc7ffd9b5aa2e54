package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRadius         = errors.New("invalid radius")
	ErrInvalidAxis           = errors.New("invalid axis")
	ErrNoSolidSelected       = errors.New("no solid selected")
	ErrUnknownSolid          = errors.New("unknown solid kind")
	ErrUnknownTransformation = errors.New("unknown transformation kind")
	ErrCloudSizeMismatch     = errors.New("vertex clouds differ in size")
	ErrQueueFull             = errors.New("queue is full")
	ErrQueueEmpty            = errors.New("queue is empty")
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrLoopStopped           = errors.New("event loop stopped")
)

// InvalidRadiusError reports a radius outside the configured closed
// interval [Min, Max]. It matches ErrInvalidRadius with errors.Is.
type InvalidRadiusError struct {
	Radius float64
	Min    float64
	Max    float64
}

func (e *InvalidRadiusError) Error() string {
	return fmt.Sprintf("invalid radius %g: must be within [%g, %g]", e.Radius, e.Min, e.Max)
}

func (e *InvalidRadiusError) Is(target error) bool {
	return target == ErrInvalidRadius
}
