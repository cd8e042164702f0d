package msglog

import "strings"

// Color is the palette available to log markup.
type Color uint8

const (
	White Color = iota
	Red
	Green
	Blue
	Black
)

var colorNames = map[string]Color{
	"RED":   Red,
	"GREEN": Green,
	"BLUE":  Blue,
	"BLACK": Black,
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Black:
		return "black"
	default:
		return "white"
	}
}

// RGB returns the 8-bit channel values the renderer draws c with.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case Red:
		return 255, 10, 10
	case Green:
		return 10, 255, 10
	case Blue:
		return 10, 10, 255
	case Black:
		return 1, 1, 1
	default:
		return 255, 255, 255
	}
}

// Span is a run of text drawn in one color.
type Span struct {
	Text  string
	Color Color
}

// Parse splits text into colored spans. "[RED some text]" yields a Red span
// "some text"; anything outside brackets is White. Stray closing brackets
// are dropped and an unterminated "[" leaves the rest of the line as White
// text.
func Parse(text string) []Span {
	var (
		spans []Span
		plain strings.Builder
	)
	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String(), Color: White})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		switch text[i] {
		case '[':
			end := strings.IndexByte(text[i+1:], ']')
			if end < 0 {
				plain.WriteString(text[i:])
				i = len(text)
				continue
			}
			flush()
			if s, ok := parseBracket(text[i+1 : i+1+end]); ok {
				spans = append(spans, s)
			}
			i += end + 2
		case ']':
			i++
		default:
			next := strings.IndexAny(text[i:], "[]")
			if next < 0 {
				next = len(text) - i
			}
			plain.WriteString(text[i : i+next])
			i += next
		}
	}
	flush()
	return spans
}

// parseBracket handles the inside of one [...] group.
func parseBracket(inner string) (Span, bool) {
	n := 0
	for n < len(inner) && inner[n] >= 'A' && inner[n] <= 'Z' {
		n++
	}
	// No leading upper-case word: the group is plain text.
	if n == 0 || (n < len(inner) && !isSpace(inner[n])) {
		if inner == "" {
			return Span{}, false
		}
		return Span{Text: inner, Color: White}, true
	}

	color := colorNames[inner[:n]]
	rest := strings.TrimLeft(inner[n:], " \t")
	if rest == "" {
		return Span{}, false
	}
	return Span{Text: rest, Color: color}, true
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }
