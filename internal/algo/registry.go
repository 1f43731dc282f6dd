// Package algo is the closed registry of sorting algorithms the visualiser
// can animate.
//
// Every algorithm sorts one row of ranks in place and returns a trace.Trace.
// The trace shape is part of the registration: in-place algorithms record
// swaps, out-of-place algorithms record whole-row passes. Adding an
// algorithm means adding a registry entry; the engine does not change.
package algo

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/sortvis/internal/trace"
)

// ID enumerates the supported algorithms.
type ID int

const (
	Bubble ID = iota
	Cocktail
	Selection
	Insertion
	Quick
	Heap
	Merge
	RadixLSD
	Counting
)

// Func sorts row in place and returns the trace of how it got there.
// Rows hold non-negative ranks.
type Func func(row []int) trace.Trace

// Algorithm is one registry entry.
type Algorithm struct {
	ID   ID
	Name string
	Kind trace.Kind
	Sort Func
}

// registry is indexed by ID. Order here is the order All and Names report.
var registry = [...]Algorithm{
	Bubble:    {ID: Bubble, Name: "bubble_sort", Kind: trace.KindSwap, Sort: bubbleSort},
	Cocktail:  {ID: Cocktail, Name: "cocktail_sort", Kind: trace.KindSwap, Sort: cocktailSort},
	Selection: {ID: Selection, Name: "selection_sort", Kind: trace.KindSwap, Sort: selectionSort},
	Insertion: {ID: Insertion, Name: "insertion_sort", Kind: trace.KindSwap, Sort: insertionSort},
	Quick:     {ID: Quick, Name: "quick_sort", Kind: trace.KindSwap, Sort: quickSort},
	Heap:      {ID: Heap, Name: "heap_sort", Kind: trace.KindSwap, Sort: heapSort},
	Merge:     {ID: Merge, Name: "merge_sort", Kind: trace.KindSnapshot, Sort: mergeSort},
	RadixLSD:  {ID: RadixLSD, Name: "radix_sort_lsd", Kind: trace.KindSnapshot, Sort: radixSortLSD},
	Counting:  {ID: Counting, Name: "counting_sort", Kind: trace.KindSnapshot, Sort: countingSort},
}

// DefaultName is the algorithm used when none is configured.
const DefaultName = "bubble_sort"

// UnknownError reports an identifier that is not in the registry.
type UnknownError struct {
	Name string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown sorting algorithm %q: must be one of %v", e.Name, Names())
}

// String returns the registered name.
func (id ID) String() string {
	if id < 0 || int(id) >= len(registry) {
		return fmt.Sprintf("algo(%d)", int(id))
	}
	return registry[id].Name
}

// All returns every registered algorithm in registry order.
func All() []Algorithm {
	out := make([]Algorithm, len(registry))
	copy(out, registry[:])
	return out
}

// Names returns every registered identifier in registry order.
func Names() []string {
	names := make([]string, len(registry))
	for i, a := range registry {
		names[i] = a.Name
	}
	return names
}

// Get returns the algorithm registered under id.
func Get(id ID) (Algorithm, bool) {
	if id < 0 || int(id) >= len(registry) {
		return Algorithm{}, false
	}
	return registry[id], true
}

// Lookup resolves an identifier. Matching ignores case, surrounding space,
// and treats '-' like '_', so "Quick-Sort" resolves to quick_sort.
func Lookup(name string) (Algorithm, error) {
	key := Normalize(name)
	for _, a := range registry {
		if a.Name == key {
			return a, nil
		}
	}
	return Algorithm{}, &UnknownError{Name: name}
}

// Normalize folds an identifier to registry form.
func Normalize(name string) string {
	key := cases.Fold().String(strings.TrimSpace(name))
	return strings.ReplaceAll(key, "-", "_")
}
