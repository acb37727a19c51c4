package sim

import (
	"strings"

	"github.com/TheBitDrifter/verlet/vmath"
)

type ColorMode int

const (
	ColorFixed ColorMode = iota
	ColorRandomHue
	ColorShiftHue
)

// RepeatMode decides how an animation continues past its duration.
type RepeatMode int

const (
	Repeat RepeatMode = iota
	Reverse
)

// Rotation animates the spawn direction between zero and the rotation limit.
type Rotation int

const (
	RotateNone Rotation = iota
	RotateLinear
	RotateSmoothStep
	RotateSmootherStep
)

// SpawnCondition picks the quantity compared against ConditionValue.
type SpawnCondition int

const (
	// SpawnDuration spawns for ConditionValue seconds after the initial delay.
	SpawnDuration SpawnCondition = iota
	// SpawnLocalAmount spawns until this spawner created ConditionValue particles.
	SpawnLocalAmount
	// SpawnGlobalAmount spawns while the simulation holds fewer than
	// ConditionValue particles.
	SpawnGlobalAmount
)

var (
	colorModeNames      = []string{"fixed", "random_hue", "shift_hue"}
	repeatModeNames     = []string{"repeat", "reverse"}
	rotationNames       = []string{"none", "linear", "smoothstep", "smootherstep"}
	spawnConditionNames = []string{"duration", "local_amount", "global_amount"}
)

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return "unknown"
	}
	return names[v]
}

func parseEnum(kind string, names []string, text []byte) (int, error) {
	key := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range names {
		if name == key {
			return i, nil
		}
	}
	return 0, UnknownNameError{Kind: kind, Name: string(text)}
}

func (m ColorMode) String() string      { return enumName(colorModeNames, int(m)) }
func (m RepeatMode) String() string     { return enumName(repeatModeNames, int(m)) }
func (r Rotation) String() string       { return enumName(rotationNames, int(r)) }
func (c SpawnCondition) String() string { return enumName(spawnConditionNames, int(c)) }

func (m ColorMode) MarshalText() ([]byte, error)      { return []byte(m.String()), nil }
func (m RepeatMode) MarshalText() ([]byte, error)     { return []byte(m.String()), nil }
func (r Rotation) MarshalText() ([]byte, error)       { return []byte(r.String()), nil }
func (c SpawnCondition) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (m *ColorMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("color mode", colorModeNames, text)
	*m = ColorMode(v)
	return err
}

func (m *RepeatMode) UnmarshalText(text []byte) error {
	v, err := parseEnum("repeat mode", repeatModeNames, text)
	*m = RepeatMode(v)
	return err
}

func (r *Rotation) UnmarshalText(text []byte) error {
	v, err := parseEnum("rotation", rotationNames, text)
	*r = Rotation(v)
	return err
}

func (c *SpawnCondition) UnmarshalText(text []byte) error {
	v, err := parseEnum("spawn condition", spawnConditionNames, text)
	*c = SpawnCondition(v)
	return err
}

// animParam maps time onto [0, 1] over duration, wrapping or bouncing.
func animParam(time, duration float32, mode RepeatMode) float32 {
	if duration <= 0 {
		return 0
	}
	t := time / duration
	if mode == Reverse {
		return vmath.PingPong(t, 1)
	}
	return vmath.Repeat(t, 1)
}
