package scene

import (
	"fmt"
	"strings"
)

var (
	shapeKinds = map[string]bool{"cube": true, "sphere": true, "capsule": true}
	lightKinds = map[string]bool{"directional": true, "point": true, "spot": true}
)

// ValidationError lists every problem found in a scene.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scene: %d problem(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Validate checks references between nodes and the values the builder
// cannot default. Scripts are resolved with LoadScript.
func (s *Spec) Validate() error {
	return s.validate(ScriptExists)
}

func (s *Spec) validate(scriptExists func(string) bool) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	declared := map[string]bool{}
	cameras := map[string]bool{}
	for _, n := range s.Nodes {
		if n.Camera != nil {
			cameras[n.Name] = true
		}
	}

	players := 0
	for i, n := range s.Nodes {
		if strings.TrimSpace(n.Name) == "" {
			add("node %d has no name", i)
		}
		if n.Parent != "" {
			if n.Parent == n.Name {
				add("node %q is its own parent", n.Name)
			} else if !declared[n.Parent] {
				add("node %q: parent %q must be declared before it", n.Name, n.Parent)
			}
		}
		declared[n.Name] = true

		if n.Transform.Scale != nil {
			sc := n.Transform.Scale
			if sc[0] == 0 || sc[1] == 0 || sc[2] == 0 {
				add("node %q: scale must not have a zero component", n.Name)
			}
		}
		if n.Model != nil && n.Model.Primitive != "" && !shapeKinds[n.Model.Primitive] {
			add("node %q: unknown primitive %q", n.Name, n.Model.Primitive)
		}
		if n.Collider != nil && !shapeKinds[n.Collider.Shape] {
			add("node %q: unknown collider shape %q", n.Name, n.Collider.Shape)
		}
		if n.Light != nil && !lightKinds[n.Light.Kind] {
			add("node %q: unknown light kind %q", n.Name, n.Light.Kind)
		}
		if n.Camera != nil {
			if n.Camera.Target != "" && !s.hasNode(n.Camera.Target) {
				add("camera %q: target %q not found", n.Name, n.Camera.Target)
			}
			if n.Camera.Near <= 0 || n.Camera.Far <= n.Camera.Near {
				add("camera %q: need 0 < near < far", n.Name)
			}
		}
		if n.Player != nil {
			players++
			if n.Player.Camera == "" || !cameras[n.Player.Camera] {
				add("player %q: camera %q not found", n.Name, n.Player.Camera)
			}
			if n.RigidBody == nil {
				add("player %q has no rigidbody", n.Name)
			}
			if n.Player.GroundSpeed < 0 || n.Player.AirSpeed < 0 || n.Player.JumpForce < 0 {
				add("player %q: speeds and jump force must not be negative", n.Name)
			}
		}
		if n.KillZone != nil {
			if n.Collider == nil {
				add("kill zone %q has no collider", n.Name)
			}
			if !s.hasNode(n.KillZone.Target) {
				add("kill zone %q: target %q not found", n.Name, n.KillZone.Target)
			}
		}
		for _, path := range n.Scripts {
			if scriptExists != nil && !scriptExists(path) {
				add("node %q: script %q not found", n.Name, path)
			}
		}
	}
	if players != 1 {
		add("expected exactly one player, found %d", players)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (s *Spec) hasNode(name string) bool {
	_, ok := s.Find(name)
	return ok
}
