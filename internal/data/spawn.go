package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roguegrid/sim/internal/entity"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/item"
)

// SpawnEntry defines one entity placed at world setup.
type SpawnEntry struct {
	Name         string      `yaml:"name"`
	Sprite       string      `yaml:"sprite"`
	X            int32       `yaml:"x"`
	Y            int32       `yaml:"y"`
	Health       uint16      `yaml:"health"`
	MaxHealth    uint16      `yaml:"max_health"`
	Speed        float32     `yaml:"speed"`
	Energy       float32     `yaml:"energy"`
	Player       bool        `yaml:"player"`
	Actor        bool        `yaml:"actor"`
	Invulnerable bool        `yaml:"invulnerable"`
	Items        []ItemEntry `yaml:"items"`
}

// ItemEntry is an inventory item in a spawn entry.
type ItemEntry struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// LoadSpawnList loads spawn entries from a YAML file.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	return f.Spawns, nil
}

// DefaultSpawns is the stock scene: the player at (5,5) and one creature at
// (10,10), both with 10 health and speed 1.
func DefaultSpawns() []SpawnEntry {
	return []SpawnEntry{
		{Name: "player", Sprite: "player", X: 5, Y: 5, Health: 10, Speed: 1, Player: true,
			Items: []ItemEntry{{Name: "rock", Kind: "rock"}}},
		{Name: "creature", Sprite: "creature", X: 10, Y: 10, Health: 10, Speed: 1, Actor: true},
	}
}

// Def converts the entry for entity.Store.Spawn.
func (e SpawnEntry) Def() entity.Def {
	d := entity.Def{
		Name:         e.Name,
		Sprite:       e.Sprite,
		Position:     grid.C(e.X, e.Y),
		Health:       e.Health,
		MaxHealth:    e.MaxHealth,
		Speed:        e.Speed,
		Energy:       e.Energy,
		Player:       e.Player,
		Actor:        e.Actor,
		Invulnerable: e.Invulnerable,
	}
	for _, it := range e.Items {
		d.Items = append(d.Items, item.Item{Name: it.Name, Kind: item.ParseKind(it.Kind)})
	}
	return d
}
