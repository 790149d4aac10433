package sanitize

import (
	"bytes"
	"container/list"
	"strings"
)

// Slice empties the slice for reuse. Elements are cleared so the backing
// array does not retain references, and capacity is kept.
func Slice[S ~[]E, E any](s S) (S, bool) {
	clear(s)
	return s[:0], true
}

// Map deletes all entries and keeps the map for reuse. Sets represented as
// map[K]struct{} are covered by the same rule.
func Map[M ~map[K]V, K comparable, V any](m M) (M, bool) {
	clear(m)
	return m, true
}

// Buffer resets the byte buffer for reuse. A nil buffer is discarded.
func Buffer(b *bytes.Buffer) (*bytes.Buffer, bool) {
	if b == nil {
		return nil, false
	}
	b.Reset()
	return b, true
}

// Builder resets the string builder for reuse. A nil builder is discarded.
func Builder(b *strings.Builder) (*strings.Builder, bool) {
	if b == nil {
		return nil, false
	}
	b.Reset()
	return b, true
}

// List reinitialises the linked list for reuse, dropping all elements. The
// same rule serves double-ended queue usage of list.List. A nil list is
// discarded.
func List(l *list.List) (*list.List, bool) {
	if l == nil {
		return nil, false
	}
	l.Init()
	return l, true
}
