package zeckendorf

import (
	"fmt"
	"math/big"
	"slices"
)

// Step is one greedy choice made while decoding n.
type Step struct {
	Index  int      // chosen Fibonacci index k
	Value  *big.Int // F[k]
	Before *big.Int // remainder before subtracting F[k]
	After  *big.Int // remainder after subtracting F[k]
}

// Sum returns Σ F[k] over indices. Order and adjacency are not checked.
//
// Errors:
//   - *IndexError wrapping ErrIndexOutOfRange for an index outside [0, maxIndex].
func (t *Table) Sum(indices []int) (*big.Int, error) {
	n := new(big.Int)
	for _, k := range indices {
		if k < 0 || k > t.max {
			return nil, &IndexError{Op: "sum", Index: k, Max: t.max, Err: ErrIndexOutOfRange}
		}
		n.Add(n, t.f[k])
	}
	return n, nil
}

// ValidSupport reports whether indices form a canonical Zeckendorf support:
// every index ≥ 2, strictly descending, consecutive members differing by ≥ 2.
//
// Errors:
//   - ErrBadSupport for an index < 2 or a non-descending pair.
//   - ErrAdjacentIndices for two consecutive indices.
func ValidSupport(indices []int) error {
	for i, k := range indices {
		if k < 2 {
			return fmt.Errorf("%w: index %d at position %d is below 2", ErrBadSupport, k, i)
		}
		if i == 0 {
			continue
		}
		prev := indices[i-1]
		switch {
		case k >= prev:
			return fmt.Errorf("%w: index %d at position %d does not descend from %d", ErrBadSupport, k, i, prev)
		case prev-k < 2:
			return fmt.Errorf("%w: %d and %d", ErrAdjacentIndices, prev, k)
		}
	}
	return nil
}

// Encode returns the number whose Zeckendorf support is the given set of
// indices. Indices may be supplied in any order; duplicates, indices below 2
// and consecutive pairs are rejected.
//
// Errors:
//   - ErrBadSupport, ErrAdjacentIndices from ValidSupport.
//   - *IndexError wrapping ErrIndexOutOfRange for an index above maxIndex.
func (t *Table) Encode(indices []int) (*big.Int, error) {
	sorted := slices.Clone(indices)
	slices.SortFunc(sorted, func(a, b int) int { return b - a })
	if err := ValidSupport(sorted); err != nil {
		return nil, err
	}
	return t.Sum(sorted)
}

// Trace decodes n greedily and records every choice, for display.
// The indices of the returned steps equal Decompose(n).
//
// Errors: as Decompose.
func (t *Table) Trace(n *big.Int) ([]Step, error) {
	support, err := t.Decompose(n)
	if err != nil {
		return nil, err
	}
	steps := make([]Step, 0, len(support))
	rem := new(big.Int).Set(n)
	for _, k := range support {
		before := new(big.Int).Set(rem)
		rem.Sub(rem, t.f[k])
		steps = append(steps, Step{
			Index:  k,
			Value:  new(big.Int).Set(t.f[k]),
			Before: before,
			After:  new(big.Int).Set(rem),
		})
	}
	return steps, nil
}

// String renders the step as "F_k = v; remainder = before - v = after".
func (s Step) String() string {
	return fmt.Sprintf("F_%d = %s; remainder = %s - %s = %s", s.Index, s.Value, s.Before, s.Value, s.After)
}

// Encode builds a number from a support using the default table.
func Encode(indices []int) (*big.Int, error) { return Default().Encode(indices) }

// Trace decodes n step by step using the default table.
func Trace(n *big.Int) ([]Step, error) { return Default().Trace(n) }
