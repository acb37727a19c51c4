package sim

import (
	"fmt"

	"github.com/TheBitDrifter/verlet/warehouse"
)

type UnknownNameError struct {
	Kind string
	Name string
}

func (e UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// NotLinkableError is returned when a link endpoint is not a particle.
type NotLinkableError struct {
	Entity warehouse.Entity
}

func (e NotLinkableError) Error() string {
	return fmt.Sprintf("entity %v is not a particle and cannot be linked", e.Entity)
}

type SelfLinkError struct {
	Entity warehouse.Entity
}

func (e SelfLinkError) Error() string {
	return fmt.Sprintf("entity %v cannot be linked to itself", e.Entity)
}

type UnknownEndpointError struct {
	Name string
}

func (e UnknownEndpointError) Error() string {
	return fmt.Sprintf("link endpoint %q does not name a particle", e.Name)
}

type InvalidParticleError struct {
	Reason string
}

func (e InvalidParticleError) Error() string {
	return "invalid particle: " + e.Reason
}

type UnknownSceneFormatError struct {
	Path string
}

func (e UnknownSceneFormatError) Error() string {
	return fmt.Sprintf("cannot tell scene format of %q, use .yaml, .yml or .json", e.Path)
}

type InvalidShapeError struct {
	Reason string
}

func (e InvalidShapeError) Error() string {
	return "invalid world shape: " + e.Reason
}
