package pairing

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/katalvlaran/zeckit/zeckendorf"
)

var (
	// ErrIndexOverflow indicates a band index above the table bound.
	ErrIndexOverflow = errors.New("pairing: index overflow")

	// ErrBandCollision indicates the even and odd bands did not merge into a
	// valid Zeckendorf support.
	ErrBandCollision = errors.New("pairing: even and odd bands collide")

	// ErrRoundTripMismatch indicates (x,y) ↦ n ↦ (x',y') ↦ n' did not stabilize.
	ErrRoundTripMismatch = errors.New("pairing: round-trip mismatch")
)

// OverflowError names the Fibonacci index a pairing needed.
type OverflowError struct {
	RequiredIndex int
	MaxIndex      int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("pairing: index overflow: require F_%d, but maxIndex = %d", e.RequiredIndex, e.MaxIndex)
}

// Unwrap returns ErrIndexOverflow.
func (e *OverflowError) Unwrap() error { return ErrIndexOverflow }

// PairResult is the full state of one pairing.
type PairResult struct {
	X, Y     *big.Int
	N        *big.Int // nil when the bands overflow the table
	Zx, Zy   []int
	R, B     int
	EvenBand []int
	OddBand  []int
}

// UnpairResult is the full state of one unpairing.
type UnpairResult struct {
	N        *big.Int
	X, Y     *big.Int
	Zn       []int
	XIndices []int // even members of Zn, halved
	YIndices []int // odd members of Zn at or above B+1, mapped back
	R, B     int
}

// Verification is the outcome of a round-trip check. Err is nil iff OK.
type Verification struct {
	OK      bool
	Reason  string
	First   PairResult
	Inverse UnpairResult
	Second  PairResult
	Err     error
}

// Option configures a Pairer.
type Option func(*Pairer)

// WithTable binds the Pairer to t. Panics on nil.
func WithTable(t *zeckendorf.Table) Option {
	if t == nil {
		panic("pairing: WithTable(nil)")
	}
	return func(p *Pairer) {
		p.table = t
	}
}
