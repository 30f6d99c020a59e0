// Package collection provides generic, functional-style helpers for slices.
//
//	titles := collection.Map(rows, func(p projector.ProductRow) string { return p.Title })
//	action, ok := collection.First(actions, func(a Action) bool { return a.Name == name })
package collection

// Map transforms each element of slice s using fn. The result is never nil.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Unique returns s without repeated elements, keeping first occurrences in
// order.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
