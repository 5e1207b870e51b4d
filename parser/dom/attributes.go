package dom

import "iter"

// Attributes is an attribute map that remembers insertion order. Keys are
// unique; setting an existing key overwrites its value but keeps the
// position the key was first seen at. The zero value is ready to use.
type Attributes struct {
	keys []string
	vals map[string]string
}

// Set stores a value for key, keeping first-seen ordering across
// overwrites.
func (a *Attributes) Set(key, value string) {
	if a.vals == nil {
		a.vals = make(map[string]string)
	}
	if _, ok := a.vals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.vals[key] = value
}

// Get returns the value for key and whether the key is present.
func (a *Attributes) Get(key string) (string, bool) {
	v, ok := a.vals[key]
	return v, ok
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.keys)
}

// Keys returns the attribute keys in first-seen order.
func (a *Attributes) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// All iterates key/value pairs in first-seen order.
func (a *Attributes) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range a.keys {
			if !yield(k, a.vals[k]) {
				return
			}
		}
	}
}

// Equal reports whether both maps hold the same entries in the same order.
func (a Attributes) Equal(b Attributes) bool {
	if len(a.keys) != len(b.keys) {
		return false
	}
	for i, k := range a.keys {
		if b.keys[i] != k || a.vals[k] != b.vals[k] {
			return false
		}
	}
	return true
}
