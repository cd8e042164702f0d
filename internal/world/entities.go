package world

import (
	"github.com/roguegrid/sim/internal/component"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/entity"
	"github.com/roguegrid/sim/internal/query"
)

// EntitiesInChunk scans every Transform and returns, in id order, the
// entities whose position resolves to chunk id. The chunk need not exist.
func (m *Map) EntitiesInChunk(s *entity.Store, id ChunkID) []ecs.EntityID {
	var out []ecs.EntityID
	s.Transforms.Each(func(e ecs.EntityID, t *component.Transform) {
		if m.ChunkOf(t.GridPosition) == id {
			out = append(out, e)
		}
	})
	return out
}

// OtherEntitiesInSameChunk is EntitiesInChunk for self's chunk, minus self.
// self must have a Transform.
func (m *Map) OtherEntitiesInSameChunk(s *entity.Store, self ecs.EntityID) []ecs.EntityID {
	id := m.ChunkOf(query.GridPosition(s, self))
	var out []ecs.EntityID
	for _, e := range m.EntitiesInChunk(s, id) {
		if e != self {
			out = append(out, e)
		}
	}
	return out
}
