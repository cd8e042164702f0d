package msglog

import "testing"

func spansEqual(a, b []Span) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want []Span
	}{
		{
			in: "[BLUE Hello ]World, My [RED name is louis!]",
			want: []Span{
				{"Hello ", Blue},
				{"World, My ", White},
				{"name is louis!", Red},
			},
		},
		{
			in:   "Hello world my name is louis!",
			want: []Span{{"Hello world my name is louis!", White}},
		},
		{
			in: "You hit a [GREEN Tree!]. [RED The Tree isn't happy]",
			want: []Span{
				{"You hit a ", White},
				{"Tree!", Green},
				{". ", White},
				{"The Tree isn't happy", Red},
			},
		},
		{
			in:   "[BLACK void]",
			want: []Span{{"void", Black}},
		},
		{
			in:   "[PURPLE rain]",
			want: []Span{{"rain", White}},
		},
		{
			in:   "broken [RED tail",
			want: []Span{{"broken [RED tail", White}},
		},
		{
			in:   "a]b",
			want: []Span{{"ab", White}},
		},
		{
			in:   "[just words]",
			want: []Span{{"just words", White}},
		},
		{
			in:   "[RED ]",
			want: nil,
		},
	}
	for _, tc := range cases {
		if got := Parse(tc.in); !spansEqual(got, tc.want) {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEntryPlain(t *testing.T) {
	got := New(0).Post("You threw a [BLUE Rock ] at [RED Creature]").Plain()
	if got != "You threw a Rock  at Creature" {
		t.Fatalf("Plain = %q", got)
	}
}

func TestLogPostAndCapacity(t *testing.T) {
	l := New(2)
	l.Post("one")
	l.Post("[RED two]")
	l.Postf("%s", "three")

	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	es := l.Entries()
	if es[0].Raw != "[RED two]" || es[0].Spans[0].Color != Red {
		t.Fatalf("oldest entry = %+v", es[0])
	}
	last, ok := l.Last()
	if !ok || last.Plain() != "three" {
		t.Fatalf("Last = %+v/%v", last, ok)
	}
	if l.Posted() != 3 {
		t.Fatalf("Posted = %d, want 3", l.Posted())
	}
	if got := l.Since(2); len(got) != 1 || got[0].Raw != "three" {
		t.Fatalf("Since(2) = %+v", got)
	}
	// the first line was dropped; everything retained is newer
	if got := l.Since(0); len(got) != 2 {
		t.Fatalf("Since(0) = %+v", got)
	}
	if got := l.Since(5); got != nil {
		t.Fatalf("Since(5) = %+v, want nil", got)
	}
}

func TestNilLog(t *testing.T) {
	var l *Log
	e := l.Post("[GREEN ok]")
	if e.Plain() != "ok" {
		t.Fatalf("Post on nil log = %+v", e)
	}
	if l.Len() != 0 || l.Entries() != nil {
		t.Fatalf("nil log should be empty")
	}
}
