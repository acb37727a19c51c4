package warehouse

import (
	"fmt"
	"reflect"
)

type LockedWorldError struct{}

func (e LockedWorldError) Error() string {
	return "world is locked by a running query"
}

type EmptyComponentSetError struct{}

func (e EmptyComponentSetError) Error() string {
	return "entity requires at least one component"
}

type DuplicateComponentError struct {
	Component ComponentID
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component %s given more than once", componentName(e.Component))
}

type ComponentNotFoundError struct {
	Component ComponentID
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %s", componentName(e.Component))
}

type EntityNotFoundError struct {
	Entity Entity
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d does not exist", e.Entity)
}

type NotPlainDataError struct {
	Type reflect.Type
	Kind reflect.Kind
}

func (e NotPlainDataError) Error() string {
	return fmt.Sprintf("component %s is not plain data: contains %s", e.Type, e.Kind)
}

type ComponentSizeMismatchError struct {
	Component ComponentID
	Want, Got uintptr
}

func (e ComponentSizeMismatchError) Error() string {
	return fmt.Sprintf("component %s: column stride %d, value size %d", componentName(e.Component), e.Want, e.Got)
}

type SignatureMismatchError struct {
	Archetype uint32
	Index     int
	Want, Got ComponentID
}

func (e SignatureMismatchError) Error() string {
	return fmt.Sprintf("archetype %d column %d holds %s, got %s",
		e.Archetype, e.Index, componentName(e.Want), componentName(e.Got))
}

type DuplicateQueryComponentError struct {
	Component ComponentID
}

func (e DuplicateQueryComponentError) Error() string {
	return fmt.Sprintf("query names component %s twice", componentName(e.Component))
}

type CacheFullError struct {
	Capacity int
}

func (e CacheFullError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}

type DuplicateKeyError struct {
	Key string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("cache key %q already registered", e.Key)
}
