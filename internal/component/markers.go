package component

import "github.com/roguegrid/sim/internal/item"

// PlayerController marks the entity driven by player input.
type PlayerController struct{}

// Invulnerable zeroes incoming damage before health is touched.
type Invulnerable struct{}

// Name is the display name used in message log lines.
type Name struct {
	Value  string
	Sprite string
}

// Inventory is an ordered bag of items.
type Inventory struct {
	Items []item.Item
}
