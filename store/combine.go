package store

import (
	"reflect"
	"sort"

	"github.com/samber/lo"
)

// Tree is the root state produced by Combine: one entry per slice name.
type Tree map[string]any

// Slice adapts a typed reducer so it can be mounted in a Tree. A missing or
// mistyped slice is handed to r as the zero value of S.
func Slice[S any](r Reducer[S]) Reducer[any] {
	return func(prev any, action Action) any {
		s, _ := prev.(S)
		return r(s, action)
	}
}

// Combine mounts each reducer under its name. The returned reducer hands
// back prev itself when no slice changed identity.
func Combine(reducers map[string]Reducer[any]) Reducer[Tree] {
	names := lo.Keys(reducers)
	sort.Strings(names)

	return func(prev Tree, action Action) Tree {
		changed := prev == nil
		next := make(Tree, len(names))
		for _, name := range names {
			before := prev[name]
			after := reducers[name](before, action)
			next[name] = after
			if !same(before, after) {
				changed = true
			}
		}
		if !changed {
			return prev
		}
		return next
	}
}

// same reports identity for reference kinds and equality for values.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}
