package data

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// TerrainEntry is one weighted choice in the chunk generator's palette.
type TerrainEntry struct {
	Name     string `yaml:"name"`     // texture name handed to the renderer
	Weight   int    `yaml:"weight"`   // relative draw weight
	Walkable bool   `yaml:"walkable"` // gates movement and pathfinding
	Type     string `yaml:"type"`     // "empty" or "tree"
}

type terrainFile struct {
	Terrain []TerrainEntry `yaml:"terrain"`
}

// Palette is a validated, weighted terrain table.
type Palette struct {
	entries []TerrainEntry
	total   int
}

var errEmptyPalette = errors.New("terrain palette has no positive weights")

// DefaultPalette is the built-in table: 2 in 10 grass, 1 in 10 tree
// (blocking), the rest bare ground.
func DefaultPalette() *Palette {
	p, _ := NewPalette([]TerrainEntry{
		{Name: "grass", Weight: 2, Walkable: true, Type: "empty"},
		{Name: "tree", Weight: 1, Walkable: false, Type: "tree"},
		{Name: "dot", Weight: 7, Walkable: true, Type: "empty"},
	})
	return p
}

// NewPalette validates entries. Negative weights are rejected; zero-weight
// entries are kept but never drawn.
func NewPalette(entries []TerrainEntry) (*Palette, error) {
	p := &Palette{entries: make([]TerrainEntry, 0, len(entries))}
	for _, e := range entries {
		if e.Weight < 0 {
			return nil, fmt.Errorf("terrain %q: negative weight %d", e.Name, e.Weight)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("terrain entry with empty name")
		}
		p.entries = append(p.entries, e)
		p.total += e.Weight
	}
	if p.total == 0 {
		return nil, errEmptyPalette
	}
	return p, nil
}

// LoadTerrain loads a palette from a YAML file.
func LoadTerrain(path string) (*Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read terrain %s: %w", path, err)
	}
	var f terrainFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse terrain: %w", err)
	}
	p, err := NewPalette(f.Terrain)
	if err != nil {
		return nil, fmt.Errorf("terrain %s: %w", path, err)
	}
	return p, nil
}

// Pick draws one entry using r.
func (p *Palette) Pick(r *rand.Rand) TerrainEntry {
	n := r.Intn(p.total)
	for _, e := range p.entries {
		if n < e.Weight {
			return e
		}
		n -= e.Weight
	}
	return p.entries[len(p.entries)-1]
}

// Entries returns a copy of the table.
func (p *Palette) Entries() []TerrainEntry {
	out := make([]TerrainEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Count returns the number of entries.
func (p *Palette) Count() int { return len(p.entries) }
