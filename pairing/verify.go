package pairing

import (
	"context"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ReasonMismatch is the Verification.Reason of a failed fixed-point check.
const ReasonMismatch = "round-trip mismatch: (x,y) -> n -> (x',y') -> n' did not stabilize"

// Verify computes n = π(x,y), (x',y') = π⁻¹(n), n' = π(x',y') and reports OK
// only if x' = x, y' = y and n' = n. Failures carry every intermediate
// result; nothing is swallowed. Verify has no side effects, so repeated
// calls return identical results.
func (p *Pairer) Verify(x, y *big.Int) Verification {
	var v Verification
	var err error

	if v.First, err = p.PairDetail(x, y); err != nil {
		return v.fail(err)
	}
	if v.Inverse, err = p.UnpairDetail(v.First.N); err != nil {
		return v.fail(err)
	}
	if v.Second, err = p.PairDetail(v.Inverse.X, v.Inverse.Y); err != nil {
		return v.fail(err)
	}

	sameXY := v.Inverse.X.Cmp(x) == 0 && v.Inverse.Y.Cmp(y) == 0
	sameN := v.Second.N.Cmp(v.First.N) == 0
	if !sameXY || !sameN {
		v.Reason = ReasonMismatch
		v.Err = ErrRoundTripMismatch
		return v
	}
	v.OK = true
	return v
}

// VerifyUnpair checks whether n lies in the image of π: it unpairs n and
// pairs the result again. OK means π(π⁻¹(n)) = n. First is left empty
// except for First.N = n.
func (p *Pairer) VerifyUnpair(n *big.Int) Verification {
	var v Verification
	var err error

	if n != nil {
		v.First.N = new(big.Int).Set(n)
	}
	if v.Inverse, err = p.UnpairDetail(n); err != nil {
		return v.fail(err)
	}
	if v.Second, err = p.PairDetail(v.Inverse.X, v.Inverse.Y); err != nil {
		return v.fail(err)
	}
	if v.Second.N.Cmp(n) != 0 {
		v.Reason = "n does not realize a stable pair: " + ReasonMismatch
		v.Err = ErrRoundTripMismatch
		return v
	}
	v.OK = true
	return v
}

func (v Verification) fail(err error) Verification {
	v.OK = false
	v.Err = err
	v.Reason = err.Error()
	return v
}

// VerifyAll verifies every (x, y) pair concurrently, at most workers at a
// time (workers ≤ 0 means GOMAXPROCS). Results keep the input order.
//
// A failed verification is a result, not an error; the returned error is
// only ctx's error when the batch is cancelled, in which case unfinished
// entries are zero Verifications.
func (p *Pairer) VerifyAll(ctx context.Context, pairs [][2]*big.Int, workers int) ([]Verification, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Verification, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.Verify(pairs[i][0], pairs[i][1])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}

// Verify runs the round-trip check over the default table.
func Verify(x, y *big.Int) Verification { return defaultPairer.Verify(x, y) }

// VerifyUnpair checks n against the default table.
func VerifyUnpair(n *big.Int) Verification { return defaultPairer.VerifyUnpair(n) }
