package listing

import (
	"slices"

	"github.com/jwalitptl/hospital-console/internal/repository"
)

// The mutation handlers only ever apply these by-id transforms, so the
// order in which overlapping requests finish does not matter.

func upsert[T repository.Entity](items []T, item T) []T {
	if i := indexOf(items, item.EntityID()); i >= 0 {
		return replaceAt(items, i, item)
	}
	return append(slices.Clip(items), item)
}

func replace[T repository.Entity](items []T, item T) []T {
	i := indexOf(items, item.EntityID())
	if i < 0 {
		return items
	}
	return replaceAt(items, i, item)
}

func replaceAt[T any](items []T, i int, item T) []T {
	out := slices.Clone(items)
	out[i] = item
	return out
}

func remove[T repository.Entity](items []T, id int64) []T {
	return slices.DeleteFunc(slices.Clone(items), func(item T) bool { return item.EntityID() == id })
}

func indexOf[T repository.Entity](items []T, id int64) int {
	return slices.IndexFunc(items, func(item T) bool { return item.EntityID() == id })
}
