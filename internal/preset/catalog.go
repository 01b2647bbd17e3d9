// Package preset holds the rehearsed board states and applies them to a
// board as single navigation steps.
package preset

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"atelier/internal/board"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Assignment is one parameter write made by a stage.
type Assignment struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Assignments keeps stage writes in document order.
type Assignments []Assignment

// UnmarshalYAML decodes a mapping without losing key order.
func (a *Assignments) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: stage writes must be a mapping", node.Line)
	}
	out := make(Assignments, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v any
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", node.Content[i+1].Line, err)
		}
		out = append(out, Assignment{Key: node.Content[i].Value, Value: v})
	}
	*a = out
	return nil
}

// Stage is one named board state within a preset.
type Stage struct {
	Name string `yaml:"name" json:"name"`
	// Reset clears the board before the writes are applied.
	Reset bool        `yaml:"reset" json:"reset,omitempty"`
	Set   Assignments `yaml:"set" json:"set"`
	// CountdownIn, when set, points the countdown that many minutes after
	// the current time rounded to five minutes.
	CountdownIn *int `yaml:"countdownIn" json:"countdown_in,omitempty"`
}

// Preset is an ordered sequence of stages.
type Preset struct {
	Name   string  `yaml:"name" json:"name"`
	Stages []Stage `yaml:"stages" json:"stages"`
}

// Stage looks up a stage by name and returns its position.
func (p *Preset) Stage(name string) (*Stage, int, bool) {
	for i := range p.Stages {
		if p.Stages[i].Name == name {
			return &p.Stages[i], i, true
		}
	}
	return nil, -1, false
}

// Catalog is the static list of presets.
type Catalog struct {
	Presets []Preset `yaml:"presets" json:"presets"`
}

// Preset looks up a preset by name.
func (c *Catalog) Preset(name string) (*Preset, bool) {
	for i := range c.Presets {
		if c.Presets[i].Name == name {
			return &c.Presets[i], true
		}
	}
	return nil, false
}

var errEmptyName = errors.New("name is required")

// ParseCatalog decodes and validates a YAML catalog. Every write must name a
// declared board parameter with a value its codec accepts.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse preset catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	presets := make(map[string]struct{}, len(c.Presets))
	for _, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("preset: %w", errEmptyName)
		}
		if _, dup := presets[p.Name]; dup {
			return fmt.Errorf("preset %q declared twice", p.Name)
		}
		presets[p.Name] = struct{}{}

		stages := make(map[string]struct{}, len(p.Stages))
		for _, st := range p.Stages {
			if st.Name == "" {
				return fmt.Errorf("preset %q stage: %w", p.Name, errEmptyName)
			}
			if _, dup := stages[st.Name]; dup {
				return fmt.Errorf("preset %q: stage %q declared twice", p.Name, st.Name)
			}
			stages[st.Name] = struct{}{}
			for _, a := range st.Set {
				if _, _, err := board.Table.Encode(a.Key, a.Value); err != nil {
					return fmt.Errorf("preset %q stage %q: %w", p.Name, st.Name, err)
				}
			}
		}
	}
	return nil
}
