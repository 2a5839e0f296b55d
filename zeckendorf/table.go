package zeckendorf

import (
	"fmt"
	"math/big"
	"sync"
)

// DefaultMaxIndex is the bound of the process-wide table.
const DefaultMaxIndex = 300

// Table holds F[0..maxIndex]. It is immutable once NewTable returns.
type Table struct {
	f   []*big.Int
	max int
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := NewTable(DefaultMaxIndex)
	if err != nil {
		// DefaultMaxIndex is a valid constant; this cannot happen.
		panic(err)
	}
	return t
})

// Default returns the shared table with DefaultMaxIndex, built on first use.
func Default() *Table { return defaultTable() }

// NewTable builds F[0..maxIndex] in increasing index order.
//
// Errors:
//   - ErrBadMaxIndex if maxIndex < 2.
//
// Complexity: O(maxIndex) big additions, O(maxIndex²) bits of memory.
func NewTable(maxIndex int) (*Table, error) {
	if maxIndex < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadMaxIndex, maxIndex)
	}
	f := make([]*big.Int, maxIndex+1)
	f[0] = big.NewInt(0)
	f[1] = big.NewInt(1)
	for i := 2; i <= maxIndex; i++ {
		f[i] = new(big.Int).Add(f[i-1], f[i-2])
	}
	return &Table{f: f, max: maxIndex}, nil
}

// MaxIndex returns the largest index held by t.
func (t *Table) MaxIndex() int { return t.max }

// Fib returns a copy of F[k].
func (t *Table) Fib(k int) (*big.Int, error) {
	if k < 0 || k > t.max {
		return nil, &IndexError{Op: "fib", Index: k, Max: t.max, Err: ErrIndexOutOfRange}
	}
	return new(big.Int).Set(t.f[k]), nil
}

// MaxDecomposable returns F[max]+F[max-1]-1, the largest n whose
// decomposition fits in t.
func (t *Table) MaxDecomposable() *big.Int {
	n := new(big.Int).Add(t.f[t.max], t.f[t.max-1])
	return n.Sub(n, big.NewInt(1))
}

// Fib returns F[k] from the default table.
func Fib(k int) (*big.Int, error) { return Default().Fib(k) }
