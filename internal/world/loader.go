package world

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SceneTable is the YAML-serializable definition of the scene registry.
type SceneTable struct {
	Name    string  `yaml:"name"`
	Contact string  `yaml:"contact"` // address shown on the contact scene
	Scenes  []Scene `yaml:"scenes"`
}

// Registry is the ordered, immutable list of scenes.
type Registry struct {
	Name    string
	Contact string
	scenes  []Scene
}

// LoadRegistry parses and validates a scene table from YAML bytes.
func LoadRegistry(data []byte) (*Registry, error) {
	var table SceneTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse scene table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("scene table %q: %w", table.Name, err)
	}
	return NewRegistry(table), nil
}

// NewRegistry builds a registry from an already validated table.
func NewRegistry(table SceneTable) *Registry {
	scenes := make([]Scene, len(table.Scenes))
	copy(scenes, table.Scenes)
	return &Registry{Name: table.Name, Contact: table.Contact, scenes: scenes}
}

// Validate checks the structural invariants the navigator relies on.
func (t *SceneTable) Validate() error {
	if len(t.Scenes) == 0 {
		return errors.New("no scenes")
	}
	seen := make(map[string]bool, len(t.Scenes))
	for i := range t.Scenes {
		s := &t.Scenes[i]
		if s.ID == "" {
			return fmt.Errorf("scene %d: missing id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("scene %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
		if len(s.Title) == 0 {
			return fmt.Errorf("scene %s: missing title", s.ID)
		}
		if _, err := ParseHexColor(s.Accent); err != nil {
			return fmt.Errorf("scene %s: %w", s.ID, err)
		}
		if s.IsFinal && i != len(t.Scenes)-1 {
			return fmt.Errorf("scene %s: only the last scene may be final", s.ID)
		}
		items := make(map[string]bool, len(s.Items))
		for j, it := range s.Items {
			if it.ID == "" {
				return fmt.Errorf("scene %s item %d: missing id", s.ID, j)
			}
			if items[it.ID] {
				return fmt.Errorf("scene %s: duplicate item id %q", s.ID, it.ID)
			}
			items[it.ID] = true
			if it.Details.Title == "" || len(it.Details.Points) == 0 {
				return fmt.Errorf("scene %s item %s: details need a title and points", s.ID, it.ID)
			}
		}
	}
	return nil
}

// Len returns the number of scenes.
func (r *Registry) Len() int { return len(r.scenes) }

// Scene returns the scene at index i. The pointer aliases the registry and
// must be treated as read-only; use Scenes for a private copy. Callers
// validate i; out of range panics.
func (r *Registry) Scene(i int) *Scene { return &r.scenes[i] }

// Scenes returns a deep copy of the ordered scene list.
func (r *Registry) Scenes() []Scene {
	out := make([]Scene, len(r.scenes))
	for i := range r.scenes {
		out[i] = r.scenes[i].clone()
	}
	return out
}

// IndexOf returns the index of the scene with the given id, or -1.
func (r *Registry) IndexOf(id string) int {
	for i := range r.scenes {
		if r.scenes[i].ID == id {
			return i
		}
	}
	return -1
}

// Extents returns the bounding box of all scene positions.
func (r *Registry) Extents() (min, max Vec2) {
	for i := range r.scenes {
		p := r.scenes[i].Pos()
		if i == 0 {
			min, max = p, p
			continue
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}
