package physics

import (
	"strings"

	"github.com/TheBitDrifter/verlet/vmath"
)

// UpdateMode selects how frame time maps onto substep groups.
type UpdateMode int

const (
	// FrameVariable runs one group with the frame's own dt.
	FrameVariable UpdateMode = iota
	// FrameFixed runs one group of Timestep per frame.
	FrameFixed
	// FixedRate accumulates frame time and runs a group per Timestep.
	FixedRate
)

var updateModeNames = map[UpdateMode]string{
	FrameVariable: "frame_variable",
	FrameFixed:    "frame_fixed",
	FixedRate:     "fixed_rate",
}

func (m UpdateMode) String() string {
	if name, ok := updateModeNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m UpdateMode) Valid() bool {
	_, ok := updateModeNames[m]
	return ok
}

// ParseUpdateMode accepts the snake_case names used in config and scene files.
func ParseUpdateMode(s string) (UpdateMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for mode, name := range updateModeNames {
		if name == key {
			return mode, nil
		}
	}
	return -1, UnknownUpdateModeError{Mode: -1, Name: s}
}

func (m UpdateMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, UnknownUpdateModeError{Mode: m}
	}
	return []byte(m.String()), nil
}

func (m *UpdateMode) UnmarshalText(text []byte) error {
	mode, err := ParseUpdateMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// maxFrameTime caps how much time one Update may feed the accumulator.
const maxFrameTime float32 = 0.25

type Settings struct {
	UpdateMode       UpdateMode
	Timestep         float32
	Substeps         int
	Gravity          vmath.Vec2
	PartitioningSize float32
	Collisions       bool
}

func DefaultSettings() Settings {
	return Settings{
		UpdateMode:       FixedRate,
		Timestep:         1.0 / 60.0,
		Substeps:         8,
		Gravity:          vmath.New(0, -900),
		PartitioningSize: 25,
		Collisions:       true,
	}
}

func (s Settings) Validate() error {
	if !s.UpdateMode.Valid() {
		return UnknownUpdateModeError{Mode: s.UpdateMode}
	}
	if s.UpdateMode != FrameVariable && !(s.Timestep > 0) {
		return InvalidSettingsError{Field: "Timestep", Reason: "must be positive"}
	}
	if s.Substeps < 0 {
		return InvalidSettingsError{Field: "Substeps", Reason: "must not be negative"}
	}
	if !(s.PartitioningSize > 0) {
		return InvalidSettingsError{Field: "PartitioningSize", Reason: "must be positive"}
	}
	return nil
}

func (s Settings) substeps() int {
	return max(s.Substeps, 1)
}
