package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and a deferred destruction queue flushed by the cleanup system
// at the end of every tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	marked       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 16),
		marked:       make(map[EntityID]struct{}),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Marking the
// same entity twice in one tick is a no-op.
func (w *World) MarkForDestruction(id EntityID) {
	if _, ok := w.marked[id]; ok {
		return
	}
	w.marked[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// Marked reports whether id is queued for destruction this tick.
func (w *World) Marked(id EntityID) bool {
	_, ok := w.marked[id]
	return ok
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Returns how many entities were destroyed.
func (w *World) FlushDestroyQueue() int {
	n := len(w.destroyQueue)
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		delete(w.marked, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
