// Package ast holds ParsedExpressions, the arena-backed AST that the
// parser builds and the typechecker/codegen walk. Nodes refer to each
// other and to tokens by stable integer identifiers, never by pointer:
// this makes the "move out of the arena" operation the typechecker
// performs on ImportC/InlineC nodes a simple tombstone, and keeps
// traversal cache-friendly over plain slices.
package ast

// ID is a typed index into an Arena[T]. Two IDs over different T are
// different Go types, so a LValueID can never be mistaken for a
// BlockID even though both are plain ints underneath.
type ID[T any] int

// Arena owns every node of one variant. It never shrinks; nodes are
// retired by tombstoning their Expression header (see Moved/Invalid in
// nodes.go), never by removal from the arena.
type Arena[T any] struct {
	items []T
}

// Add appends v and returns its stable ID.
func (a *Arena[T]) Add(v T) ID[T] {
	a.items = append(a.items, v)
	return ID[T](len(a.items) - 1)
}

// Get returns the node at id.
func (a *Arena[T]) Get(id ID[T]) T {
	return a.items[id]
}

// Set overwrites the node at id.
func (a *Arena[T]) Set(id ID[T], v T) {
	a.items[id] = v
}

// Len returns the number of nodes in the arena.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// All returns every node in insertion order. Callers must not retain a
// reference across a subsequent Add.
func (a *Arena[T]) All() []T {
	return a.items
}
