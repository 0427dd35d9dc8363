package testutil

import (
	"cmp"
	"testing"
)

// AssertSortedAsc проверяет, что key(items[i]) не убывает.
func AssertSortedAsc[T any, K cmp.Ordered](t testing.TB, items []T, key func(T) K) {
	t.Helper()

	for i := 1; i < len(items); i++ {
		if key(items[i-1]) > key(items[i]) {
			t.Fatalf("not ascending at %d: %v > %v", i, key(items[i-1]), key(items[i]))
		}
	}
}

// AssertSortedDesc проверяет, что key(items[i]) не возрастает.
func AssertSortedDesc[T any, K cmp.Ordered](t testing.TB, items []T, key func(T) K) {
	t.Helper()

	for i := 1; i < len(items); i++ {
		if key(items[i-1]) < key(items[i]) {
			t.Fatalf("not descending at %d: %v < %v", i, key(items[i-1]), key(items[i]))
		}
	}
}
