package system

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/roguegrid/sim/internal/action"
	"github.com/roguegrid/sim/internal/grid"
)

func TestPlayerMoveToOpenCell(t *testing.T) {
	d := newTestDeps(t)
	p := spawnPlayer(t, d, grid.C(5, 5))

	QueueAction(d, p, action.NewMoveTo(grid.C(6, 5), 1))
	NewTurnSystem(d).RunPass()

	tr := d.Store.Transforms.MustGet(p)
	if tr.GridPosition != grid.C(6, 5) {
		t.Fatalf("position = %v, want (6,5)", tr.GridPosition)
	}
	if tr.ScreenX != 96 || tr.ScreenY != 80 {
		t.Fatalf("screen = (%v,%v), want (96,80)", tr.ScreenX, tr.ScreenY)
	}
	if d.Messages.Len() != 0 {
		t.Fatalf("unexpected log lines: %+v", d.Messages.Entries())
	}
}

func TestPlayerMoveToBlockedCell(t *testing.T) {
	d := newTestDeps(t)
	p := spawnPlayer(t, d, grid.C(5, 5))
	block(t, d, grid.C(6, 5))

	QueueAction(d, p, action.NewMoveTo(grid.C(6, 5), 1))
	NewTurnSystem(d).RunPass()

	if pos := d.Store.Transforms.MustGet(p).GridPosition; pos != grid.C(5, 5) {
		t.Fatalf("position = %v, want (5,5)", pos)
	}
	if d.Messages.Len() != 1 {
		t.Fatalf("log lines = %d, want 1", d.Messages.Len())
	}
	if last, _ := d.Messages.Last(); last.Raw != "That path is blocked" {
		t.Fatalf("log line = %q", last.Raw)
	}
}

func TestEnergyCoversExactlyOneAction(t *testing.T) {
	d := newTestDeps(t)
	c := spawnCreature(t, d, grid.C(3, 3), 1)
	QueueAction(d, c, action.NewWait(1))

	if n := NewTurnSystem(d).RunPass(); n != 1 {
		t.Fatalf("dispatched %d actions, want 1", n)
	}
	if e := d.Store.Physics.MustGet(c).Energy; e != 0 {
		t.Fatalf("energy = %v, want 0", e)
	}
	if d.Store.Actors.MustGet(c).Queued != nil {
		t.Fatalf("queued action not consumed")
	}
}

func TestFastActorActsRepeatedly(t *testing.T) {
	d := newTestDeps(t)
	c := spawnCreature(t, d, grid.C(3, 3), 3)

	if n := NewTurnSystem(d).RunPass(); n != 3 {
		t.Fatalf("dispatched %d actions, want 3", n)
	}
	if e := d.Store.Physics.MustGet(c).Energy; e != 0 {
		t.Fatalf("energy = %v, want 0", e)
	}
	got := testutil.ToFloat64(d.Metrics.Actions.WithLabelValues(string(action.KindMoveTo)))
	if got != 3 {
		t.Fatalf("move_to actions = %v, want 3", got)
	}
}

func TestUnaffordableActionDiscarded(t *testing.T) {
	d := newTestDeps(t)
	c := spawnCreature(t, d, grid.C(3, 3), 1)
	QueueAction(d, c, action.NewMoveTo(grid.C(4, 3), 2))

	if n := NewTurnSystem(d).RunPass(); n != 0 {
		t.Fatalf("dispatched %d actions, want 0", n)
	}
	if pos := d.Store.Transforms.MustGet(c).GridPosition; pos != grid.C(3, 3) {
		t.Fatalf("discarded action moved the entity to %v", pos)
	}
	if e := d.Store.Physics.MustGet(c).Energy; e != 1 {
		t.Fatalf("energy = %v, want 1 (kept)", e)
	}
	if d.Store.Actors.MustGet(c).Queued != nil {
		t.Fatalf("discarded action still queued")
	}
	if got := testutil.ToFloat64(d.Metrics.ActionsDiscarded); got != 1 {
		t.Fatalf("discarded = %v, want 1", got)
	}
}

func TestFasterActorGoesFirst(t *testing.T) {
	d := newTestDeps(t)
	slow := spawnCreature(t, d, grid.C(1, 1), 1)
	fast := spawnCreature(t, d, grid.C(20, 20), 2)
	QueueAction(d, slow, action.NewWait(1))
	QueueAction(d, fast, action.NewWait(1))

	NewTurnSystem(d).RunPass()
	order := drainResolved(d)
	if len(order) != 3 {
		t.Fatalf("resolved %v, want 3 actions", order)
	}
	if order[0] != fast || order[1] != slow || order[2] != fast {
		t.Fatalf("order = %v, want [fast slow fast] = [%v %v %v]", order, fast, slow, fast)
	}
}

func TestEqualSpeedKeepsIDOrder(t *testing.T) {
	d := newTestDeps(t)
	a := spawnCreature(t, d, grid.C(1, 1), 1)
	b := spawnCreature(t, d, grid.C(20, 20), 1)

	NewTurnSystem(d).RunPass()
	order := drainResolved(d)
	if len(order) != 2 || order[0] != a || order[1] != b {
		t.Fatalf("order = %v, want [%v %v]", order, a, b)
	}
}

func TestZeroCostActionTerminates(t *testing.T) {
	d := newTestDeps(t)
	c := spawnCreature(t, d, grid.C(3, 3), 1)
	QueueAction(d, c, action.NewWait(0))

	if n := NewTurnSystem(d).RunPass(); n != 1 {
		t.Fatalf("dispatched %d actions, want 1", n)
	}
	if e := d.Store.Physics.MustGet(c).Energy; e != 1 {
		t.Fatalf("energy = %v, want 1", e)
	}
}

func TestMissingComponentPanics(t *testing.T) {
	d := newTestDeps(t)
	c := spawnCreature(t, d, grid.C(3, 3), 1)
	// Transform gone: the AI cannot locate the actor.
	d.Store.Transforms.Remove(c)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for actor without a Transform")
		}
	}()
	NewTurnSystem(d).RunPass()
}

func TestDeadActorSkipsTurn(t *testing.T) {
	d := newTestDeps(t)
	c := spawnCreature(t, d, grid.C(3, 3), 1)
	d.Store.Physics.MustGet(c).Health = 0

	if n := NewTurnSystem(d).RunPass(); n != 0 {
		t.Fatalf("dead actor dispatched %d actions", n)
	}
}
