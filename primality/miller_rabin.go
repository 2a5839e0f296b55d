package primality

import (
	"math/big"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

var defaultTester = NewTester()

// IsProbablePrime reports whether n is probably prime, using crypto/rand for
// bases above 2^64. rounds < 1 is treated as 1. A failing random source
// yields false.
func IsProbablePrime(n *big.Int, rounds int) bool {
	return defaultTester.IsProbablePrime(n, rounds)
}

// IsProbablePrime is Test reduced to a boolean; errors yield false.
func (t *Tester) IsProbablePrime(n *big.Int, rounds int) bool {
	res, err := t.Test(n, rounds)
	return err == nil && res.Prime
}

// Test runs trial division and Miller–Rabin on n.
//
// Errors:
//   - ErrRandomSource if drawing a random base fails (only for n ≥ 2^64).
//
// Complexity: O(k·log³ n) for k bases with schoolbook multiplication.
func (t *Tester) Test(n *big.Int, rounds int) (Result, error) {
	if n == nil || n.Cmp(two) < 0 {
		return Result{Deterministic: true, Stage: StageTrivial}, nil
	}
	if rounds < 1 {
		rounds = 1
	}

	rem := new(big.Int)
	for _, p := range t.small {
		if n.Cmp(p) == 0 {
			return Result{Prime: true, Deterministic: true, Stage: StageTrialDivision}, nil
		}
		if rem.Mod(n, p).Sign() == 0 {
			return Result{Deterministic: true, Stage: StageTrialDivision, Divisor: new(big.Int).Set(p)}, nil
		}
	}

	d, s := SplitPow2(n)
	nMinus1 := new(big.Int).Sub(n, one)

	if n.BitLen() <= deterministicLimitBits {
		res := Result{Prime: true, Deterministic: true, Stage: StageDeterministic}
		for _, a := range t.bases {
			res.Bases++
			if isWitness(a, d, s, n, nMinus1) {
				res.Prime = false
				res.Witness = new(big.Int).Set(a)
				return res, nil
			}
		}
		return res, nil
	}

	res := Result{Prime: true, Stage: StageRandom}
	span := new(big.Int).Sub(n, big.NewInt(3)) // bases in [2, n-2]
	for i := 0; i < rounds; i++ {
		a, err := randBelow(t.random, span)
		if err != nil {
			return Result{Stage: StageRandom, Bases: res.Bases}, err
		}
		a.Add(a, two)
		res.Bases++
		if isWitness(a, d, s, n, nMinus1) {
			res.Prime = false
			res.Witness = a
			return res, nil
		}
	}
	return res, nil
}

// isWitness reports whether base a proves n composite, given n−1 = d·2^s.
func isWitness(a, d *big.Int, s int, n, nMinus1 *big.Int) bool {
	if new(big.Int).Mod(a, n).Sign() == 0 {
		return false
	}
	x := ModPow(a, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
		return false
	}
	for r := 1; r < s; r++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinus1) == 0 {
			return false
		}
	}
	return true
}

// SplitPow2 returns d and s with n−1 = d·2^s and d odd. Requires n ≥ 2.
func SplitPow2(n *big.Int) (d *big.Int, s int) {
	d = new(big.Int).Sub(n, one)
	s = int(d.TrailingZeroBits())
	d.Rsh(d, uint(s))
	return d, s
}

// ModPow computes base^exp mod m by right-to-left binary exponentiation,
// reducing modulo m after every multiplication. Requires exp ≥ 0, m ≥ 1.
//
// Complexity: O(log exp) modular multiplications.
func ModPow(base, exp, m *big.Int) *big.Int {
	if m.Cmp(one) == 0 {
		return new(big.Int)
	}
	result := big.NewInt(1)
	b := new(big.Int).Mod(base, m)
	bits := exp.BitLen()
	for i := 0; i < bits; i++ {
		if exp.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, m)
		}
		if i+1 < bits {
			b.Mul(b, b)
			b.Mod(b, m)
		}
	}
	return result
}
