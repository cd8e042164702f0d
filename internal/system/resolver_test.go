package system

import (
	"testing"

	"github.com/roguegrid/sim/internal/action"
	"github.com/roguegrid/sim/internal/component"
	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/core/event"
	"github.com/roguegrid/sim/internal/entity"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/item"
	"github.com/roguegrid/sim/internal/msglog"
)

func TestTakeDamageMarksAttackerHostile(t *testing.T) {
	d := newTestDeps(t)
	attacker := spawnPlayer(t, d, grid.C(5, 5))
	victim := spawnCreature(t, d, grid.C(6, 5), 1)

	Resolve(d, victim, action.TakeDamage{Attacker: attacker, Amount: 3})

	if h := d.Store.Physics.MustGet(victim).Health; h != 7 {
		t.Fatalf("health = %d, want 7", h)
	}
	rel := d.Store.Actors.MustGet(victim).Relationships
	if s, ok := rel.Score(attacker); !ok || s > component.HostileScore {
		t.Fatalf("score = %v/%v, want <= %v", s, ok, component.HostileScore)
	}
	if !rel.IsEnemy(attacker) {
		t.Fatalf("attacker not an enemy")
	}
}

func TestHostilityOnlyDeepens(t *testing.T) {
	d := newTestDeps(t)
	attacker := spawnPlayer(t, d, grid.C(5, 5))
	victim := spawnCreature(t, d, grid.C(6, 5), 1)
	rel := d.Store.Actors.MustGet(victim).Relationships

	rel[attacker] = -800
	Resolve(d, victim, action.TakeDamage{Attacker: attacker, Amount: 1})
	if rel[attacker] != -800 {
		t.Fatalf("score = %v, want -800 kept", rel[attacker])
	}

	rel[attacker] = 100
	MarkHostile(d.Store, victim, attacker)
	if rel[attacker] != component.HostileScore {
		t.Fatalf("score = %v, want %v", rel[attacker], component.HostileScore)
	}

	// friendly-looking interactions leave it alone
	Resolve(d, victim, action.Empty{})
	Resolve(d, victim, action.TakeDamage{Amount: 0})
	if rel[attacker] != component.HostileScore {
		t.Fatalf("score raised to %v", rel[attacker])
	}
}

func TestMarkHostileNeedsLedger(t *testing.T) {
	d := newTestDeps(t)
	statue := spawn(t, d, entity.Def{Name: "statue", Health: 5})
	p := spawnPlayer(t, d, grid.C(1, 1))

	if MarkHostile(d.Store, statue, p) {
		t.Fatalf("non-actor got a ledger entry")
	}
	if MarkHostile(d.Store, p, ecs.None) {
		t.Fatalf("unattributed hostility recorded")
	}
	if MarkHostile(d.Store, p, p) {
		t.Fatalf("self hostility recorded")
	}
}

func TestInvulnerableAbsorbsDamage(t *testing.T) {
	d := newTestDeps(t)
	attacker := spawnPlayer(t, d, grid.C(5, 5))
	golem := spawn(t, d, entity.Def{Name: "golem", Health: 10, Actor: true, Invulnerable: true})

	Resolve(d, golem, action.TakeDamage{Attacker: attacker, Amount: 9})
	if h := d.Store.Physics.MustGet(golem).Health; h != 10 {
		t.Fatalf("health = %d, want 10", h)
	}
	if !d.Store.Actors.MustGet(golem).Relationships.IsEnemy(attacker) {
		t.Fatalf("absorbed hit should still sour the relationship")
	}
}

func TestDamageSaturatesAtZero(t *testing.T) {
	d := newTestDeps(t)
	c := spawnCreature(t, d, grid.C(1, 1), 1)
	Resolve(d, c, action.TakeDamage{Amount: 50})
	if h := d.Store.Physics.MustGet(c).Health; h != 0 {
		t.Fatalf("health = %d, want 0", h)
	}
}

func TestAttackBecomesTakeDamage(t *testing.T) {
	d := newTestDeps(t)
	attacker := spawnCreature(t, d, grid.C(5, 5), 1)
	victim := spawnCreature(t, d, grid.C(5, 6), 1)

	var got []event.DamageTaken
	event.Subscribe(d.Bus, func(e event.DamageTaken) { got = append(got, e) })

	Resolve(d, attacker, action.Attack{Target: victim, Amount: 2})
	if h := d.Store.Physics.MustGet(victim).Health; h != 8 {
		t.Fatalf("victim health = %d, want 8", h)
	}
	if h := d.Store.Physics.MustGet(attacker).Health; h != 10 {
		t.Fatalf("attacker health = %d, want 10", h)
	}
	if !d.Store.Actors.MustGet(victim).Relationships.IsEnemy(attacker) {
		t.Fatalf("victim does not regard attacker as enemy")
	}

	d.Bus.SwapBuffers()
	d.Bus.DispatchAll()
	if len(got) != 1 || got[0].Victim != victim || got[0].Attacker != attacker || got[0].Health != 8 {
		t.Fatalf("DamageTaken events = %+v", got)
	}
}

func TestAttackOnDestroyedEntity(t *testing.T) {
	d := newTestDeps(t)
	attacker := spawnCreature(t, d, grid.C(5, 5), 1)
	victim := spawnCreature(t, d, grid.C(5, 6), 1)
	d.Store.World.MarkForDestruction(victim)
	d.Store.World.FlushDestroyQueue()

	Resolve(d, attacker, action.Attack{Target: victim, Amount: 2})
	if _, ok := d.Store.Physics.Get(victim); ok {
		t.Fatalf("destroyed entity regained components")
	}
}

func TestMoveDirectionIgnoresWalkability(t *testing.T) {
	d := newTestDeps(t)
	p := spawnPlayer(t, d, grid.C(5, 5))
	block(t, d, grid.C(6, 5))

	Resolve(d, p, action.MoveDirection{Delta: grid.C(1, 0)})
	if pos := d.Store.Transforms.MustGet(p).GridPosition; pos != grid.C(6, 5) {
		t.Fatalf("position = %v, want (6,5)", pos)
	}
	if d.Messages.Len() != 0 {
		t.Fatalf("MoveDirection posted %d lines", d.Messages.Len())
	}
}

func TestBlockedCreatureStaysSilent(t *testing.T) {
	d := newTestDeps(t)
	c := spawnCreature(t, d, grid.C(5, 5), 1)
	block(t, d, grid.C(5, 6))

	Resolve(d, c, action.MoveTo{Dest: grid.C(5, 6)})
	if pos := d.Store.Transforms.MustGet(c).GridPosition; pos != grid.C(5, 5) {
		t.Fatalf("position = %v, want (5,5)", pos)
	}
	if d.Messages.Len() != 0 {
		t.Fatalf("non-player move posted a line")
	}
}

func TestThrowItem(t *testing.T) {
	d := newTestDeps(t)
	p := spawnPlayer(t, d, grid.C(5, 5))
	c := spawnCreature(t, d, grid.C(10, 10), 1)

	Resolve(d, p, action.ThrowItem{Item: item.Item{Name: "rock", Kind: item.KindRock}, Target: c})

	if !d.Store.Actors.MustGet(c).Relationships.IsEnemy(p) {
		t.Fatalf("target does not regard thrower as enemy")
	}
	last, ok := d.Messages.Last()
	if !ok {
		t.Fatalf("no log line")
	}
	if last.Raw != "You threw a [BLUE rock ] at [RED Creature]" {
		t.Fatalf("log line = %q", last.Raw)
	}
	want := []msglog.Span{
		{Text: "You threw a ", Color: msglog.White},
		{Text: "rock ", Color: msglog.Blue},
		{Text: " at ", Color: msglog.White},
		{Text: "Creature", Color: msglog.Red},
	}
	if len(last.Spans) != len(want) {
		t.Fatalf("spans = %+v", last.Spans)
	}
	for i := range want {
		if last.Spans[i] != want[i] {
			t.Fatalf("span %d = %+v, want %+v", i, last.Spans[i], want[i])
		}
	}
}
