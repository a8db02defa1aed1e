package character

import (
	"fmt"
	"sort"
)

// Registry owns every live character, addressed by ID. Handles are issued in
// spawn order and never reused, so a stale handle simply fails to resolve.
//
// A Registry is not safe for concurrent use; the turn engine is its only writer.
type Registry struct {
	chars map[ID]*Character
	next  ID
}

// NewRegistry creates an empty Registry whose first handle is PlayerID.
func NewRegistry() *Registry {
	return &Registry{chars: make(map[ID]*Character)}
}

// Spawn creates a level-0 character of class c on team and registers it.
//
// Precondition: c must be non-nil.
// Postcondition: Returns a detached character with a fresh handle.
func (r *Registry) Spawn(c *Class, team Team) *Character {
	ch := New(r.next, c, team)
	r.next++
	r.chars[ch.ID] = ch
	return ch
}

// Remove deletes a character by handle.
//
// Postcondition: Returns an error if the handle is not registered.
func (r *Registry) Remove(id ID) error {
	if _, ok := r.chars[id]; !ok {
		return fmt.Errorf("character %d not found", id)
	}
	delete(r.chars, id)
	return nil
}

// Get resolves a handle.
//
// Postcondition: Returns (character, true) if registered, or (nil, false) otherwise.
func (r *Registry) Get(id ID) (*Character, bool) {
	c, ok := r.chars[id]
	return c, ok
}

// Len returns the number of registered characters.
func (r *Registry) Len() int { return len(r.chars) }

// Snapshot returns every registered character in spawn order.
//
// Postcondition: Returns a non-nil slice the caller may keep across mutations.
func (r *Registry) Snapshot() []*Character {
	out := make([]*Character, 0, len(r.chars))
	for _, c := range r.chars {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve maps handles to characters, dropping handles that no longer resolve.
//
// Postcondition: Returns a non-nil slice in the order of ids.
func (r *Registry) Resolve(ids []ID) []*Character {
	out := make([]*Character, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.chars[id]; ok {
			out = append(out, c)
		}
	}
	return out
}
