package physics

import "fmt"

type UnknownUpdateModeError struct {
	Mode UpdateMode
	Name string
}

func (e UnknownUpdateModeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown update mode %q", e.Name)
	}
	return fmt.Sprintf("unknown update mode %d", int(e.Mode))
}

type InvalidSettingsError struct {
	Field  string
	Reason string
}

func (e InvalidSettingsError) Error() string {
	return fmt.Sprintf("invalid solver setting %s: %s", e.Field, e.Reason)
}

type NilShapeError struct{}

func (e NilShapeError) Error() string {
	return "solver requires a world shape"
}

type UnknownNameError struct {
	Kind string
	Name string
}

func (e UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}
