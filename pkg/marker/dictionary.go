package marker

import (
	"fmt"
	"sort"
	"strings"
)

// Dictionary maps a classification letter ("a" to "z") to a value,
// usually a colour name.
type Dictionary map[string]string

var defaultDictionary = Dictionary{
	"a": "amber",
	"b": "blue",
	"c": "cyan",
	"d": "brown",
	"e": "espresso",
	"f": "fuchsia",
	"g": "green",
	"h": "hotpink",
	"i": "indigo",
	"j": "jade",
	"k": "kiwi",
	"l": "lime",
	"m": "magenta",
	"n": "navyblue",
	"o": "orange",
	"p": "purple",
	"q": "pink",
	"r": "red",
	"s": "silver",
	"t": "teal",
	"u": "umber",
	"v": "violet",
	"w": "white",
	"x": "gray",
	"y": "yellow",
	"z": "black",
}

// DefaultDictionary returns a copy of the built-in dictionary.
func DefaultDictionary() Dictionary {
	return defaultDictionary.Clone()
}

// Clone returns a copy of d.
func (d Dictionary) Clone() Dictionary {
	out := make(Dictionary, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Lookup returns the value for classification. Absent letters, including
// the empty classification, resolve to "".
func (d Dictionary) Lookup(classification string) string {
	if classification == "" {
		return ""
	}
	return d[classification]
}

// Merge returns a copy of d with every entry of override applied on top.
func (d Dictionary) Merge(override Dictionary) Dictionary {
	out := d.Clone()
	for k, v := range override {
		out[k] = v
	}
	return out
}

// Validate checks that every key is a single lowercase ASCII letter.
func (d Dictionary) Validate() error {
	for k := range d {
		if len(k) != 1 || k[0] < 'a' || k[0] > 'z' {
			return fmt.Errorf("%w: %q", ErrInvalidClassification, k)
		}
	}
	return nil
}

// Letters returns the classification letters in alphabetical order.
func (d Dictionary) Letters() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the dictionary as sorted "k=v" pairs.
func (d Dictionary) String() string {
	keys := d.Letters()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + d[k]
	}
	return strings.Join(parts, ",")
}
