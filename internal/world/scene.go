package world

import "slices"

// DetailPayload is the expanded content shown when an item is selected.
type DetailPayload struct {
	Title   string   `yaml:"title"`
	Desc    string   `yaml:"desc"`
	SubDesc string   `yaml:"subdesc,omitempty"`
	Points  []string `yaml:"points"`
}

// Item is a selectable tile inside a scene.
type Item struct {
	ID      string        `yaml:"id"`
	Label   string        `yaml:"label"`
	Icon    string        `yaml:"icon"` // icon identifier, resolved by the renderer
	Details DetailPayload `yaml:"details"`
}

// Member is a team card on the about scene.
type Member struct {
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	Social string `yaml:"social"`
}

// Scene is one full-viewport section of the experience.
type Scene struct {
	ID          string     `yaml:"id"`
	NavLabel    string     `yaml:"nav"`
	Title       []string   `yaml:"title"`
	Subtitle    string     `yaml:"subtitle"`
	Description []string   `yaml:"description,omitempty"`
	Accent      string     `yaml:"accent"`
	Position    [2]float64 `yaml:"position"`
	ButtonLabel string     `yaml:"button,omitempty"`
	Next        string     `yaml:"next,omitempty"`
	Items       []Item     `yaml:"items,omitempty"`
	Team        []Member   `yaml:"team,omitempty"`
	Contact     bool       `yaml:"contact,omitempty"` // hosts the contact form
	IsFinal     bool       `yaml:"final,omitempty"`
}

// Pos returns the scene's grid position.
func (s *Scene) Pos() Vec2 { return Vec2{s.Position[0], s.Position[1]} }

// ForwardLabel is the caption of the forward button.
func (s *Scene) ForwardLabel() string {
	if s.ButtonLabel != "" {
		return s.ButtonLabel
	}
	return s.Next
}

// clone copies s and every slice it holds.
func (s Scene) clone() Scene {
	s.Title = slices.Clone(s.Title)
	s.Description = slices.Clone(s.Description)
	s.Team = slices.Clone(s.Team)
	if s.Items != nil {
		items := make([]Item, len(s.Items))
		for i, it := range s.Items {
			it.Details.Points = slices.Clone(it.Details.Points)
			items[i] = it
		}
		s.Items = items
	}
	return s
}

// HasContent reports whether the scene has a body block (items, team or form).
func (s *Scene) HasContent() bool {
	return len(s.Items) > 0 || len(s.Team) > 0 || s.Contact
}
