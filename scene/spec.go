package scene

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Spec describes a scene graph: an ordered list of nodes, parents first.
type Spec struct {
	Name  string     `yaml:"name"`
	Nodes []NodeSpec `yaml:"nodes"`
}

type NodeSpec struct {
	Name      string         `yaml:"name"`
	Parent    string         `yaml:"parent,omitempty"`
	Transform TransformSpec  `yaml:"transform"`
	Model     *ModelSpec     `yaml:"model,omitempty"`
	Camera    *CameraSpec    `yaml:"camera,omitempty"`
	Light     *LightSpec     `yaml:"light,omitempty"`
	Collider  *ColliderSpec  `yaml:"collider,omitempty"`
	RigidBody *RigidBodySpec `yaml:"rigidbody,omitempty"`
	Player    *PlayerSpec    `yaml:"player,omitempty"`
	Rotator   *RotatorSpec   `yaml:"rotator,omitempty"`
	KillZone  *KillZoneSpec  `yaml:"kill_zone,omitempty"`
	Scripts   []string       `yaml:"scripts,omitempty"`
}

type TransformSpec struct {
	Position Vec3  `yaml:"position"`
	Rotation Vec3  `yaml:"rotation"`
	Scale    *Vec3 `yaml:"scale,omitempty"`
}

type ModelSpec struct {
	Mesh      string `yaml:"mesh,omitempty"`
	Material  string `yaml:"material,omitempty"`
	Primitive string `yaml:"primitive,omitempty"`
}

// CameraSpec holds both the lens and the orbit behaviour of a camera node.
type CameraSpec struct {
	Fov         float64 `yaml:"fov"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Target      string  `yaml:"target"`
	Speed       float64 `yaml:"speed"`
	LookAtDist  float64 `yaml:"look_at_dist"`
	MinDistance float64 `yaml:"min_distance"`
}

type LightSpec struct {
	Kind        string     `yaml:"kind"`
	Ambient     *YAMLColor `yaml:"ambient"`
	Diffuse     *YAMLColor `yaml:"diffuse"`
	Specular    *YAMLColor `yaml:"specular"`
	Direction   Vec3       `yaml:"direction"`
	Constant    float64    `yaml:"constant"`
	Linear      float64    `yaml:"linear"`
	Quadratic   float64    `yaml:"quadratic"`
	CutOff      Number     `yaml:"cut_off"`
	OuterCutOff Number     `yaml:"outer_cut_off"`
}

type ColliderSpec struct {
	Shape    string `yaml:"shape"`
	Offset   Vec3   `yaml:"offset"`
	Rotation Vec3   `yaml:"rotation"`
	Size     *Vec3  `yaml:"size,omitempty"`
}

type RigidBodySpec struct {
	Kinematic bool  `yaml:"kinematic"`
	Gravity   *Vec3 `yaml:"gravity,omitempty"`
}

// PlayerSpec configures locomotion. Zero values fall back to the defaults.
type PlayerSpec struct {
	Camera      string  `yaml:"camera"`
	GroundSpeed float64 `yaml:"ground_speed"`
	AirSpeed    float64 `yaml:"air_speed"`
	JumpForce   float64 `yaml:"jump_force"`
}

type RotatorSpec struct {
	Axis    Vec3    `yaml:"axis"`
	Speed   float64 `yaml:"speed"`
	LocalUp bool    `yaml:"local_up"`
}

type KillZoneSpec struct {
	Target string `yaml:"target"`
}

// Vec3 decodes from a three element sequence. Angles may be written as
// expressions of pi, e.g. "pi/2" or "-6*pi/9".
type Vec3 mgl64.Vec3

func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 3 {
		return fmt.Errorf("line %d: vector must be a sequence of 3 numbers", value.Line)
	}
	for i, item := range value.Content {
		f, err := parseNumber(item.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", item.Line, err)
		}
		v[i] = f
	}
	return nil
}

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// Number is a float that also accepts the expressions Vec3 does.
type Number float64

func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}
	f, err := parseNumber(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*n = Number(f)
	return nil
}

// parseNumber accepts a float or a product/quotient chain over numbers and
// "pi", with an optional leading minus.
func parseNumber(s string) (float64, error) {
	expr := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if f, err := strconv.ParseFloat(expr, 64); err == nil {
		return f, nil
	}
	if expr == "" {
		return 0, fmt.Errorf("empty number")
	}
	sign := 1.0
	if expr[0] == '-' {
		sign = -1
		expr = expr[1:]
	}

	result := 1.0
	op := byte('*')
	for len(expr) > 0 {
		i := strings.IndexAny(expr, "*/")
		term := expr
		if i >= 0 {
			term = expr[:i]
		}
		var f float64
		if strings.EqualFold(term, "pi") {
			f = math.Pi
		} else {
			var err error
			f, err = strconv.ParseFloat(term, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid number %q", s)
			}
		}
		if op == '*' {
			result *= f
		} else {
			if f == 0 {
				return 0, fmt.Errorf("division by zero in %q", s)
			}
			result /= f
		}
		if i < 0 {
			break
		}
		op = expr[i]
		expr = expr[i+1:]
		if expr == "" {
			return 0, fmt.Errorf("invalid number %q", s)
		}
	}
	return sign * result, nil
}

type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Parse decodes a scene description.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(err, "scene: unmarshal")
	}
	return &spec, nil
}

// LoadSpec reads and decodes the named scene.
func LoadSpec(name string) (*Spec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, errors.Wrapf(err, "scene: load %s", name)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene: %s", name)
	}
	return spec, nil
}

// Find returns the first node with the given name.
func (s *Spec) Find(name string) (*NodeSpec, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].Name == name {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}
