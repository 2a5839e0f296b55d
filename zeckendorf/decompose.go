package zeckendorf

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/katalvlaran/zeckit/natural"
)

// Decompose returns the Zeckendorf support of n.
//
// Algorithm (canonical greedy):
//  1. ceiling = maxIndex, remainder = n.
//  2. While remainder > 0:
//     pick the largest k in [2, ceiling] with F[k] ≤ remainder,
//     remainder -= F[k], ceiling = k-2.
//  3. If remainder > 0 while ceiling < 2, n needs a larger table.
//
// Returns indices in strictly descending order, pairwise gaps ≥ 2, each ≥ 2.
// n = 0 yields an empty (non-nil) slice.
//
// Errors:
//   - natural.ErrInvalidInput for nil or negative n.
//   - *IndexError wrapping ErrDecompositionOverflow when n > MaxDecomposable().
//
// Complexity: O(m·log maxIndex) comparisons for a support of size m.
func (t *Table) Decompose(n *big.Int) ([]int, error) {
	if err := checkNatural(n); err != nil {
		return nil, err
	}
	support := make([]int, 0, 8)
	rem := new(big.Int).Set(n)
	ceiling := t.max
	for rem.Sign() > 0 {
		if ceiling < 2 {
			return nil, &IndexError{Op: "decompose", Index: ceiling, Max: t.max, Value: new(big.Int).Set(n), Err: ErrDecompositionOverflow}
		}
		k := t.largestAtMost(rem, ceiling)
		support = append(support, k)
		rem.Sub(rem, t.f[k])
		ceiling = k - 2
	}
	return support, nil
}

// largestAtMost returns the largest k in [2, ceiling] with F[k] ≤ v.
// Requires v ≥ 1 and ceiling ≥ 2, so k = 2 always qualifies.
func (t *Table) largestAtMost(v *big.Int, ceiling int) int {
	// First offset j in [0, ceiling-1) with F[j+2] > v; the answer precedes it.
	j := sort.Search(ceiling-1, func(j int) bool {
		return t.f[j+2].Cmp(v) > 0
	})
	return j + 1
}

// Rank returns the delimiter rank r(x) = min{ e ≥ 1 : F[e] > x }.
//
// For x ≥ 1 the result satisfies F[r-1] ≤ x < F[r]; Rank(0) = 1.
// Rank is non-decreasing in x.
//
// Errors:
//   - natural.ErrInvalidInput for nil or negative x.
//   - *IndexError wrapping ErrRankOverflow when x ≥ F[maxIndex].
//
// Complexity: O(log maxIndex) comparisons.
func (t *Table) Rank(x *big.Int) (int, error) {
	if err := checkNatural(x); err != nil {
		return 0, err
	}
	i := sort.Search(t.max, func(i int) bool {
		return t.f[i+1].Cmp(x) > 0
	})
	if i == t.max {
		return 0, &IndexError{Op: "rank", Index: t.max + 1, Max: t.max, Value: new(big.Int).Set(x), Err: ErrRankOverflow}
	}
	return i + 1, nil
}

func checkNatural(n *big.Int) error {
	if n == nil {
		return fmt.Errorf("%w: nil value", natural.ErrInvalidInput)
	}
	if n.Sign() < 0 {
		return fmt.Errorf("%w: negative value %s", natural.ErrInvalidInput, n.String())
	}
	return nil
}

// Decompose returns the Zeckendorf support of n using the default table.
func Decompose(n *big.Int) ([]int, error) { return Default().Decompose(n) }

// Rank returns the delimiter rank of x using the default table.
func Rank(x *big.Int) (int, error) { return Default().Rank(x) }
