package favorites

import "encoding/json"

// Set is an ordered set of favorited product ids. Values are immutable:
// Toggle returns a new Set.
type Set []string

// Contains reports whether id is in the set.
func (s Set) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle returns a new set with id removed if present, else appended.
func (s Set) Toggle(id string) Set {
	out := make(Set, 0, len(s)+1)
	removed := false
	for _, v := range s {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	if !removed {
		out = append(out, id)
	}
	return out
}

// Equal reports whether s and other hold the same ids, ignoring order.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for _, v := range s {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// MarshalJSON always encodes an array, never null.
func (s Set) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
