// Package iterutil provides small helpers over slices and maps: membership
// checks, predicate search, flattening of nested data and a multi-map view.
package iterutil

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrMixedTypes is returned by FlattenDeep when a leaf is neither an
// element of the requested type nor a nested slice.
var ErrMixedTypes = errors.New("mixed element types")

// AllIn reports whether every item of origin is present in destination.
func AllIn[T comparable](origin, destination []T) bool {
	for _, item := range origin {
		if !slices.Contains(destination, item) {
			return false
		}
	}
	return true
}

// AnyIn returns the first item of origin present in destination.
func AnyIn[T comparable](origin, destination []T) (T, bool) {
	for _, item := range origin {
		if slices.Contains(destination, item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FirstFound returns the first item for which apply returns true.
func FirstFound[T any](items []T, apply func(T) bool) (T, bool) {
	for _, item := range items {
		if apply(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Flatten concatenates one level of nesting.
func Flatten[T any](items [][]T) []T {
	var flat []T
	for _, inner := range items {
		flat = append(flat, inner...)
	}
	return flat
}

// FlattenDeep recursively flattens nested slices into a flat slice of T,
// preserving encounter order. Nesting may mix []any and []T at any depth.
// unique drops repeated values, keeping the first occurrence.
func FlattenDeep[T comparable](data []any, unique bool) ([]T, error) {
	var flat []T
	seen := map[T]struct{}{}

	var walk func(items []any) error
	walk = func(items []any) error {
		for _, item := range items {
			switch v := item.(type) {
			case nil:
			case T:
				if unique {
					if _, ok := seen[v]; ok {
						continue
					}
					seen[v] = struct{}{}
				}
				flat = append(flat, v)
			case []any:
				if err := walk(v); err != nil {
					return err
				}
			case []T:
				inner := make([]any, len(v))
				for i, e := range v {
					inner[i] = e
				}
				if err := walk(inner); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: %T", ErrMixedTypes, item)
			}
		}
		return nil
	}
	if err := walk(data); err != nil {
		return nil, err
	}
	return flat, nil
}

// SortedFlatten is FlattenDeep followed by an ascending sort.
func SortedFlatten[T cmp.Ordered](data []any, unique bool) ([]T, error) {
	flat, err := FlattenDeep[T](data, unique)
	if err != nil {
		return nil, err
	}
	slices.Sort(flat)
	return flat, nil
}

// FilterMap returns the entries of m for which keep returns true.
func FilterMap[K comparable, V any](m map[K]V, keep func(K, V) bool) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		if keep(k, v) {
			out[k] = v
		}
	}
	return out
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
