package action

import (
	"fmt"

	"github.com/roguegrid/sim/internal/core/ecs"
	"github.com/roguegrid/sim/internal/grid"
	"github.com/roguegrid/sim/internal/item"
)

// Action is one unit of work an actor performs: an Event plus the energy it
// costs. Actions are transient; the scheduler consumes each one once.
type Action struct {
	Cost  float32
	Event Event
}

// String renders the kind, its payload and the cost, e.g.
// "move_to(dest=(6,5) cost=1.00)".
func (a Action) String() string {
	var args string
	switch e := a.Event.(type) {
	case MoveTo:
		args = fmt.Sprintf("dest=%v ", e.Dest)
	case MoveDirection:
		args = fmt.Sprintf("delta=%v ", e.Delta)
	case Attack:
		args = fmt.Sprintf("target=%v amount=%d ", e.Target, e.Amount)
	case TakeDamage:
		args = fmt.Sprintf("attacker=%v amount=%d ", e.Attacker, e.Amount)
	case ThrowItem:
		args = fmt.Sprintf("item=%s target=%v ", e.Item.Name, e.Target)
	}
	return fmt.Sprintf("%s(%scost=%.2f)", KindOf(a.Event), args, a.Cost)
}

// Event is the closed set of things an action can do. Only types in this
// package implement it.
type Event interface {
	event()
}

// MoveTo commits a move to an absolute cell if that cell is walkable.
type MoveTo struct {
	Dest grid.Coord
}

// MoveDirection nudges the grid position by Delta without a walkability check.
type MoveDirection struct {
	Delta grid.Coord
}

// Attack becomes a TakeDamage on Target with the actor as attacker.
type Attack struct {
	Amount uint16
	Target ecs.EntityID
}

// TakeDamage is applied to the entity the event is dispatched against.
// Attacker is ecs.None for environmental damage.
type TakeDamage struct {
	Attacker ecs.EntityID
	Amount   uint16
}

// ThrowItem sours Target's view of the thrower and posts a log line.
type ThrowItem struct {
	Item   item.Item
	Target ecs.EntityID
}

// Empty does nothing; it still costs energy.
type Empty struct{}

func (MoveTo) event()        {}
func (MoveDirection) event() {}
func (Attack) event()        {}
func (TakeDamage) event()    {}
func (ThrowItem) event()     {}
func (Empty) event()         {}

// Kind names an event for logs and metric labels.
type Kind string

const (
	KindMoveTo        Kind = "move_to"
	KindMoveDirection Kind = "move_direction"
	KindAttack        Kind = "attack"
	KindTakeDamage    Kind = "take_damage"
	KindThrowItem     Kind = "throw_item"
	KindEmpty         Kind = "empty"
)

func KindOf(e Event) Kind {
	switch e.(type) {
	case MoveTo:
		return KindMoveTo
	case MoveDirection:
		return KindMoveDirection
	case Attack:
		return KindAttack
	case TakeDamage:
		return KindTakeDamage
	case ThrowItem:
		return KindThrowItem
	default:
		return KindEmpty
	}
}

// Constructors used by input and AI. Each returns a ready-to-queue Action.

func NewMoveTo(dest grid.Coord, cost float32) Action {
	return Action{Cost: cost, Event: MoveTo{Dest: dest}}
}

func NewAttack(target ecs.EntityID, amount uint16, cost float32) Action {
	return Action{Cost: cost, Event: Attack{Amount: amount, Target: target}}
}

func NewThrow(it item.Item, target ecs.EntityID, cost float32) Action {
	return Action{Cost: cost, Event: ThrowItem{Item: it, Target: target}}
}

func NewWait(cost float32) Action {
	return Action{Cost: cost, Event: Empty{}}
}
