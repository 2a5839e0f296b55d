package pairing

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/katalvlaran/zeckit/natural"
	"github.com/katalvlaran/zeckit/zeckendorf"
)

// Pairer computes π and its inverse over one Fibonacci table.
type Pairer struct {
	table *zeckendorf.Table
}

// New returns a Pairer using zeckendorf.Default() unless WithTable is given.
func New(opts ...Option) *Pairer {
	p := &Pairer{table: zeckendorf.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Table returns the table p is bound to.
func (p *Pairer) Table() *zeckendorf.Table { return p.table }

// Pair returns π(x, y).
func (p *Pairer) Pair(x, y *big.Int) (*big.Int, error) {
	res, err := p.PairDetail(x, y)
	if err != nil {
		return nil, err
	}
	return res.N, nil
}

// PairDetail returns π(x, y) together with every intermediate quantity.
//
// Errors:
//   - natural.ErrInvalidInput for nil or negative arguments.
//   - zeckendorf errors when x or y cannot be decomposed or ranked.
//   - *OverflowError when a band index exceeds maxIndex; the returned
//     PairResult then holds the bands (N is nil).
//   - ErrBandCollision if the merged bands are not a valid support.
//
// Complexity: O(|Z(x)| + |Z(y)|) big additions plus two decompositions.
func (p *Pairer) PairDetail(x, y *big.Int) (PairResult, error) {
	if err := checkNatural(x, "x"); err != nil {
		return PairResult{}, err
	}
	if err := checkNatural(y, "y"); err != nil {
		return PairResult{}, err
	}
	res := PairResult{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}

	var err error
	if res.Zx, err = p.table.Decompose(x); err != nil {
		return res, err
	}
	if res.Zy, err = p.table.Decompose(y); err != nil {
		return res, err
	}
	if res.R, err = p.table.Rank(x); err != nil {
		return res, err
	}
	res.B = 2 * res.R

	res.EvenBand = make([]int, len(res.Zx))
	for i, e := range res.Zx {
		res.EvenBand[i] = 2 * e
	}
	res.OddBand = make([]int, len(res.Zy))
	for i, j := range res.Zy {
		res.OddBand[i] = res.B + 2*j - 1
	}

	// Both bands are descending, so their heads are the largest members.
	maxUsed := 0
	if len(res.EvenBand) > 0 {
		maxUsed = res.EvenBand[0]
	}
	if len(res.OddBand) > 0 && res.OddBand[0] > maxUsed {
		maxUsed = res.OddBand[0]
	}
	if maxUsed > p.table.MaxIndex() {
		return res, &OverflowError{RequiredIndex: maxUsed, MaxIndex: p.table.MaxIndex()}
	}

	merged := slices.Concat(res.OddBand, res.EvenBand)
	if err := zeckendorf.ValidSupport(merged); err != nil {
		return res, fmt.Errorf("%w: %w", ErrBandCollision, err)
	}
	if res.N, err = p.table.Sum(merged); err != nil {
		return res, err
	}
	return res, nil
}

// Unpair returns (x, y) extracted from n.
func (p *Pairer) Unpair(n *big.Int) (x, y *big.Int, err error) {
	res, err := p.UnpairDetail(n)
	if err != nil {
		return nil, nil, err
	}
	return res.X, res.Y, nil
}

// UnpairDetail inverts π and records every intermediate quantity.
//
// Algorithm:
//  1. Zn = Decompose(n).
//  2. x = Σ F[k/2] over even k ∈ Zn.
//  3. B = 2·Rank(x), recomputed from the recovered x.
//  4. y = Σ F[(k−B+1)/2] over odd k ∈ Zn with k ≥ B+1.
//
// Odd indices below B+1 carry no information and are ignored, so an n that
// is not in the image of π still decodes; use VerifyUnpair to detect that.
//
// Errors:
//   - natural.ErrInvalidInput for nil or negative n.
//   - zeckendorf decomposition/rank errors.
func (p *Pairer) UnpairDetail(n *big.Int) (UnpairResult, error) {
	if err := checkNatural(n, "n"); err != nil {
		return UnpairResult{}, err
	}
	res := UnpairResult{N: new(big.Int).Set(n), XIndices: []int{}, YIndices: []int{}}

	var err error
	if res.Zn, err = p.table.Decompose(n); err != nil {
		return res, err
	}
	for _, k := range res.Zn {
		if k%2 == 0 {
			res.XIndices = append(res.XIndices, k/2)
		}
	}
	if res.X, err = p.table.Sum(res.XIndices); err != nil {
		return res, err
	}
	if res.R, err = p.table.Rank(res.X); err != nil {
		return res, err
	}
	res.B = 2 * res.R

	for _, k := range res.Zn {
		if k%2 == 1 && k >= res.B+1 {
			res.YIndices = append(res.YIndices, (k-res.B+1)/2)
		}
	}
	if res.Y, err = p.table.Sum(res.YIndices); err != nil {
		return res, err
	}
	return res, nil
}

func checkNatural(v *big.Int, name string) error {
	if v == nil {
		return fmt.Errorf("%w: %s is nil", natural.ErrInvalidInput, name)
	}
	if v.Sign() < 0 {
		return fmt.Errorf("%w: %s = %s is negative", natural.ErrInvalidInput, name, v.String())
	}
	return nil
}

var defaultPairer = New()

// Pair returns π(x, y) over the default table.
func Pair(x, y *big.Int) (*big.Int, error) { return defaultPairer.Pair(x, y) }

// PairDetail returns π(x, y) and its bands over the default table.
func PairDetail(x, y *big.Int) (PairResult, error) { return defaultPairer.PairDetail(x, y) }

// Unpair inverts π over the default table.
func Unpair(n *big.Int) (x, y *big.Int, err error) { return defaultPairer.Unpair(n) }

// UnpairDetail inverts π over the default table and returns its state.
func UnpairDetail(n *big.Int) (UnpairResult, error) { return defaultPairer.UnpairDetail(n) }
