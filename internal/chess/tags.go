package chess

import "slices"

// SevenTagRoster lists the mandatory PGN tags in their export order.
var SevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// Tags holds PGN tag pairs.
type Tags map[string]string

// Get returns the value of a tag, or "" when absent.
func (t Tags) Get(name string) string {
	return t[name]
}

// Set stores a tag value.
func (t Tags) Set(name, value string) {
	t[name] = value
}

// Has reports whether the tag is present.
func (t Tags) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Ordered returns tag names with the seven tag roster first, followed by the
// remaining names in lexical order.
func (t Tags) Ordered() []string {
	names := make([]string, 0, len(t))
	for _, n := range SevenTagRoster {
		if t.Has(n) {
			names = append(names, n)
		}
	}
	var rest []string
	for n := range t {
		if !slices.Contains(SevenTagRoster, n) {
			rest = append(rest, n)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}
