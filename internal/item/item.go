package item

// Kind is the closed set of item behaviours. New behaviours are added here,
// not through open interfaces.
type Kind uint8

const (
	KindJunk Kind = iota
	KindRock
	KindPotion
	KindWeapon
)

var kindNames = map[Kind]string{
	KindJunk:   "junk",
	KindRock:   "rock",
	KindPotion: "potion",
	KindWeapon: "weapon",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a data-file name to a Kind. Unknown names are junk.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return KindJunk
}

// Item is a value type: inventories hold copies, throwing moves one out.
type Item struct {
	Name string
	Kind Kind
}
