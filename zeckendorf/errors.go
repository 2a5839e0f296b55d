package zeckendorf

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors. Index-bound failures are returned as *IndexError whose
// Unwrap yields one of the first three.
var (
	// ErrIndexOutOfRange indicates a Fibonacci index below 0 or above maxIndex.
	ErrIndexOutOfRange = errors.New("zeckendorf: fibonacci index out of range")

	// ErrDecompositionOverflow indicates n needs an index above maxIndex.
	ErrDecompositionOverflow = errors.New("zeckendorf: decomposition overflow")

	// ErrRankOverflow indicates no e ≤ maxIndex satisfies F[e] > x.
	ErrRankOverflow = errors.New("zeckendorf: delimiter rank overflow")

	// ErrBadMaxIndex indicates a table bound below 2.
	ErrBadMaxIndex = errors.New("zeckendorf: maxIndex must be at least 2")

	// ErrBadSupport indicates a support that is not strictly descending or
	// contains an index below 2.
	ErrBadSupport = errors.New("zeckendorf: malformed support")

	// ErrAdjacentIndices indicates two consecutive indices in a support.
	ErrAdjacentIndices = errors.New("zeckendorf: consecutive indices in support")
)

// IndexError reports which index or value exceeded the table bound.
type IndexError struct {
	Op    string   // "fib", "sum", "decompose" or "rank"
	Index int      // offending index (for decompose: the exhausted ceiling)
	Max   int      // table maxIndex
	Value *big.Int // value being processed when the bound was hit, may be nil
	Err   error    // sentinel
}

func (e *IndexError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%v: %s index %d (maxIndex %d) at value %s", e.Err, e.Op, e.Index, e.Max, e.Value.String())
	}
	return fmt.Sprintf("%v: %s index %d (maxIndex %d)", e.Err, e.Op, e.Index, e.Max)
}

// Unwrap returns the sentinel error.
func (e *IndexError) Unwrap() error { return e.Err }
