// Package tables holds YAML helpers for per-level stat tables.
package tables

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Leveled is a per-level YAML value written either as a scalar, which applies to
// every level, or as a list with one entry per level.
type Leveled[T any] struct {
	Values []T
	Scalar bool
	Set    bool
}

// UnmarshalYAML accepts a scalar node or a sequence node.
func (l *Leveled[T]) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v T
		if err := node.Decode(&v); err != nil {
			return err
		}
		l.Values, l.Scalar, l.Set = []T{v}, true, true
		return nil
	case yaml.SequenceNode:
		var vs []T
		if err := node.Decode(&vs); err != nil {
			return err
		}
		l.Values, l.Scalar, l.Set = vs, false, true
		return nil
	default:
		return fmt.Errorf("line %d: expected a scalar or a list", node.Line)
	}
}

// Expand returns a table of exactly size entries. An unset value yields def for
// every level; a scalar is repeated; a short list is padded with def.
//
// Postcondition: len(result) == size; overflow reports how many list entries
// were dropped because the list was longer than size.
func (l Leveled[T]) Expand(size int, def T) (result []T, overflow int) {
	result = make([]T, size)
	for i := range result {
		result[i] = def
	}
	if !l.Set {
		return result, 0
	}
	if l.Scalar {
		for i := range result {
			result[i] = l.Values[0]
		}
		return result, 0
	}
	n := copy(result, l.Values)
	return result, len(l.Values) - n
}

// Of builds a list-valued Leveled, mostly for tests and programmatic content.
func Of[T any](values ...T) Leveled[T] {
	return Leveled[T]{Values: values, Set: true}
}

// Scalar builds a scalar-valued Leveled.
func Scalar[T any](v T) Leveled[T] {
	return Leveled[T]{Values: []T{v}, Scalar: true, Set: true}
}
