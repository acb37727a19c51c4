package sim

import (
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/TheBitDrifter/verlet/physics"
	"github.com/TheBitDrifter/verlet/vmath"
	"github.com/TheBitDrifter/verlet/warehouse"
)

type SceneFormat int

const (
	FormatYAML SceneFormat = iota
	FormatJSON
)

// ShapeDef is the world boundary: a "rect" of Size or a "circle" of Radius
// around Center.
type ShapeDef struct {
	Type   string     `yaml:"type" json:"type"`
	Center vmath.Vec2 `yaml:"center" json:"center"`
	Size   vmath.Vec2 `yaml:"size" json:"size"`
	Radius float32    `yaml:"radius" json:"radius"`
}

func (d ShapeDef) Build() (physics.Shape, error) {
	switch strings.ToLower(d.Type) {
	case "rect", "":
		if !(d.Size.X > 0 && d.Size.Y > 0) {
			return nil, InvalidShapeError{Reason: "rect size must be positive"}
		}
		return physics.NewRectShape(d.Center, d.Size), nil
	case "circle":
		if !(d.Radius > 0) {
			return nil, InvalidShapeError{Reason: "circle radius must be positive"}
		}
		return physics.NewCircleShape(d.Center, d.Radius), nil
	}
	return nil, UnknownNameError{Kind: "shape", Name: d.Type}
}

// LinkSceneDef links two particles by name.
type LinkSceneDef struct {
	A       string `yaml:"a" json:"a"`
	B       string `yaml:"b" json:"b"`
	LinkDef `yaml:",inline"`
}

type SpawnerDef struct {
	Position vmath.Vec2      `yaml:"position" json:"position"`
	Settings SpawnerSettings `yaml:"settings" json:"settings"`
}

// Scene is a declarative description of a simulation. Omitted particle,
// link, field and spawner fields take their defaults.
type Scene struct {
	Shape       ShapeDef        `yaml:"shape" json:"shape"`
	Particles   []ParticleDef   `yaml:"particles" json:"particles"`
	Links       []LinkSceneDef  `yaml:"links" json:"links"`
	ForceFields []ForceFieldDef `yaml:"force_fields" json:"force_fields"`
	Spawners    []SpawnerDef    `yaml:"spawners" json:"spawners"`
}

// LoadScene reads a scene file, picking the format from its extension.
func LoadScene(path string) (*Scene, error) {
	var format SceneFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return nil, eris.Wrap(UnknownSceneFormatError{Path: path}, "load scene")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read scene %s", path)
	}
	scene, err := ParseScene(data, format)
	if err != nil {
		return nil, eris.Wrapf(err, "parse scene %s", path)
	}
	return scene, nil
}

func ParseScene(data []byte, format SceneFormat) (*Scene, error) {
	scene := &Scene{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, scene)
	default:
		err = yaml.Unmarshal(data, scene)
	}
	if err != nil {
		return nil, err
	}
	return scene, nil
}

// Populate adds the scene's contents to sim. Particle names must be unique
// and every link endpoint must name a particle.
func (sc *Scene) Populate(sim *Simulation) error {
	names := warehouse.FactoryNewCache[warehouse.Entity](len(sc.Particles))

	for i, def := range sc.Particles {
		e, err := sim.AddParticle(def)
		if err != nil {
			return eris.Wrapf(err, "particle %d", i)
		}
		if def.Name == "" {
			continue
		}
		if _, err := names.Register(def.Name, e); err != nil {
			return eris.Wrapf(err, "particle %d", i)
		}
	}

	for i, def := range sc.Links {
		a, ok := names.Lookup(def.A)
		if !ok {
			return eris.Wrapf(UnknownEndpointError{Name: def.A}, "link %d", i)
		}
		b, ok := names.Lookup(def.B)
		if !ok {
			return eris.Wrapf(UnknownEndpointError{Name: def.B}, "link %d", i)
		}
		if _, err := sim.AddLink(a, b, def.LinkDef); err != nil {
			return eris.Wrapf(err, "link %d", i)
		}
	}

	for i, def := range sc.ForceFields {
		if _, err := sim.AddForceField(def); err != nil {
			return eris.Wrapf(err, "force field %d", i)
		}
	}

	for _, def := range sc.Spawners {
		sim.AddSpawner(def.Position, def.Settings)
	}

	sim.log.Info("scene loaded",
		zap.Int("particles", len(sc.Particles)),
		zap.Int("named", names.Len()),
		zap.Int("links", len(sc.Links)),
		zap.Int("force_fields", len(sc.ForceFields)),
		zap.Int("spawners", len(sc.Spawners)),
	)
	return nil
}

// Build creates a simulation bounded by the scene's shape and populates it.
func (sc *Scene) Build(settings physics.Settings, opts ...Option) (*Simulation, error) {
	shape, err := sc.Shape.Build()
	if err != nil {
		return nil, eris.Wrap(err, "scene shape")
	}
	sim, err := New(shape, settings, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "create simulation")
	}
	if err := sc.Populate(sim); err != nil {
		sim.Close()
		return nil, err
	}
	return sim, nil
}

// The decoders below start every list element from its defaults so scene
// files only spell out what differs.

func (d *ParticleDef) UnmarshalYAML(node *yaml.Node) error {
	type plain ParticleDef
	*d = DefaultParticleDef()
	return node.Decode((*plain)(d))
}

func (d *ParticleDef) UnmarshalJSON(data []byte) error {
	type plain ParticleDef
	*d = DefaultParticleDef()
	return json.Unmarshal(data, (*plain)(d))
}

func (d *LinkSceneDef) UnmarshalYAML(node *yaml.Node) error {
	type plain LinkSceneDef
	*d = LinkSceneDef{LinkDef: DefaultLinkDef()}
	return node.Decode((*plain)(d))
}

func (d *LinkSceneDef) UnmarshalJSON(data []byte) error {
	type plain LinkSceneDef
	*d = LinkSceneDef{LinkDef: DefaultLinkDef()}
	return json.Unmarshal(data, (*plain)(d))
}

func (d *ForceFieldDef) UnmarshalYAML(node *yaml.Node) error {
	type plain ForceFieldDef
	*d = ForceFieldDef{Settings: physics.DefaultForceFieldSettings()}
	return node.Decode((*plain)(d))
}

func (d *ForceFieldDef) UnmarshalJSON(data []byte) error {
	type plain ForceFieldDef
	*d = ForceFieldDef{Settings: physics.DefaultForceFieldSettings()}
	return json.Unmarshal(data, (*plain)(d))
}

func (d *SpawnerDef) UnmarshalYAML(node *yaml.Node) error {
	type plain SpawnerDef
	*d = SpawnerDef{Settings: DefaultSpawnerSettings()}
	return node.Decode((*plain)(d))
}

func (d *SpawnerDef) UnmarshalJSON(data []byte) error {
	type plain SpawnerDef
	*d = SpawnerDef{Settings: DefaultSpawnerSettings()}
	return json.Unmarshal(data, (*plain)(d))
}
