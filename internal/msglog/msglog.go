// Package msglog keeps the player-facing message history. Lines carry a
// small bracket markup for coloring, parsed once when posted.
package msglog

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is one posted line.
type Entry struct {
	Raw   string
	Spans []Span
}

// Plain returns the entry text without markup.
func (e Entry) Plain() string {
	var b strings.Builder
	for _, s := range e.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Log is an append-only message history, optionally bounded.
type Log struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
	posted   int // lines ever posted, including dropped ones
}

// New returns a Log keeping at most capacity entries; 0 keeps everything.
func New(capacity int) *Log {
	return &Log{capacity: capacity}
}

// Post parses text and appends it. A nil Log discards the line.
func (l *Log) Post(text string) Entry {
	e := Entry{Raw: text, Spans: Parse(text)}
	if l == nil {
		return e
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	l.posted++
	if l.capacity > 0 && len(l.entries) > l.capacity {
		drop := len(l.entries) - l.capacity
		copy(l.entries, l.entries[drop:])
		l.entries = l.entries[:l.capacity]
	}
	return e
}

func (l *Log) Postf(format string, args ...any) Entry {
	return l.Post(fmt.Sprintf(format, args...))
}

// Entries returns a copy of the history, oldest first.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	if l == nil {
		return Entry{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Posted returns how many lines were ever posted, dropped ones included.
func (l *Log) Posted() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.posted
}

// Since returns the retained entries posted after the first n lines ever
// posted. Hosts draining new lines keep n as a running Posted count.
func (l *Log) Since(n int) []Entry {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	off := n - (l.posted - len(l.entries))
	if off < 0 {
		off = 0
	}
	if off >= len(l.entries) {
		return nil
	}
	out := make([]Entry, len(l.entries)-off)
	copy(out, l.entries[off:])
	return out
}
