package event

import "testing"

type ping struct{ N int }
type pong struct{ S string }

func TestBusDoubleBuffer(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(p ping) { got = append(got, p.N) })

	Emit(b, ping{N: 1})
	Emit(b, ping{N: 2})
	if b.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", b.Pending())
	}

	// Not visible until swapped.
	if n := b.DispatchAll(); n != 0 || len(got) != 0 {
		t.Fatalf("dispatched %d before swap", n)
	}

	b.SwapBuffers()
	if b.Pending() != 0 {
		t.Fatalf("Pending after swap = %d", b.Pending())
	}
	if n := b.DispatchAll(); n != 2 {
		t.Fatalf("DispatchAll = %d, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("handler saw %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 {
		t.Fatalf("events delivered twice: %v", got)
	}
}

func TestBusTypeOrder(t *testing.T) {
	b := NewBus()
	var seen []string
	Subscribe(b, func(p ping) { seen = append(seen, "ping") })
	Subscribe(b, func(p pong) { seen = append(seen, "pong:"+p.S) })

	Emit(b, pong{S: "a"})
	Emit(b, ping{N: 1})
	Emit(b, pong{S: "b"})
	b.SwapBuffers()
	b.DispatchAll()

	want := []string{"pong:a", "pong:b", "ping"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen = %v, want %v", seen, want)
		}
	}
}

func TestEmitNilBus(t *testing.T) {
	var b *Bus
	Emit(b, ping{N: 1})
}
