package name

import "strconv"

// Sort is a predicative universe level. Sort(u) lives in Sort(u+1).
// Represented as an unsigned integer so a negative sort is unrepresentable.
type Sort uint

// PropSort is the distinguished impredicative-codomain sort used for
// Pi types (spec.md §4.7) and recursor elimination discipline (§4.7 step 4).
const PropSort Sort = 0

// SortOf returns the sort of Sort(u) itself, i.e. u+1.
func SortOf(u Sort) Sort {
	return u + 1
}

// MaxSort returns the larger of two sorts.
func MaxSort(a, b Sort) Sort {
	if a > b {
		return a
	}
	return b
}

// LE reports whether a <= b, the subtyping relation on sorts (spec.md §4.5).
func (a Sort) LE(b Sort) bool {
	return a <= b
}

func (a Sort) String() string {
	if a == PropSort {
		return "Prop"
	}
	return strconv.FormatUint(uint64(a), 10)
}
