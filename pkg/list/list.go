// Package list implements an ordered sequence backed by a slice. Elements keep
// their insertion positions; lookups are linear and driven by predicates.
package list

import "golang.org/x/exp/slices"

// Predicate reports whether an element matches.
type Predicate[T any] func(v T) bool

type List[T any] struct {
	items []T
}

func New[T any](initialSize int) *List[T] {
	return &List[T]{make([]T, 0, initialSize)}
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) IsEmpty() bool {
	return len(l.items) == 0
}

func (l *List[T]) InsertFirst(v T) {
	l.items = slices.Insert(l.items, 0, v)
}

func (l *List[T]) InsertLast(v T) {
	l.items = append(l.items, v)
}

// InsertAfter places v right after the first element matching pred.
// It reports false and leaves the list untouched when nothing matches.
func (l *List[T]) InsertAfter(pred Predicate[T], v T) bool {
	i := l.Index(pred)
	if i < 0 {
		return false
	}
	l.items = slices.Insert(l.items, i+1, v)
	return true
}

func (l *List[T]) Search(pred Predicate[T]) (v T, found bool) {
	i := l.Index(pred)
	if i < 0 {
		return v, false
	}
	return l.items[i], true
}

// Index returns the position of the first element matching pred or -1.
func (l *List[T]) Index(pred Predicate[T]) int {
	return slices.IndexFunc(l.items, pred)
}

// At returns a pointer to the i-th element. The pointer is only valid until
// the next insert or delete.
func (l *List[T]) At(i int) *T {
	return &l.items[i]
}

// Delete removes the first element matching pred.
func (l *List[T]) Delete(pred Predicate[T]) bool {
	i := l.Index(pred)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// DeleteAll removes every element matching pred and returns how many were removed.
func (l *List[T]) DeleteAll(pred Predicate[T]) int {
	n := len(l.items)
	l.items = slices.DeleteFunc(l.items, pred)
	return n - len(l.items)
}

func (l *List[T]) Front() (v T, ok bool) {
	if len(l.items) == 0 {
		return v, false
	}
	return l.items[0], true
}

func (l *List[T]) Back() (v T, ok bool) {
	if len(l.items) == 0 {
		return v, false
	}
	return l.items[len(l.items)-1], true
}

// Scan walks the list front to back. scanFn may modify the element in place
// and returns true to stop the walk.
func (l *List[T]) Scan(scanFn func(i int, v *T) bool) {
	for i := range l.items {
		if scanFn(i, &l.items[i]) {
			return
		}
	}
}

func (l *List[T]) Clone() *List[T] {
	return &List[T]{slices.Clone(l.items)}
}

// Items returns a copy of the elements in order.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}
