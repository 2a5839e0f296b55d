package diagonal

import (
	"math/big"
	"slices"

	"github.com/katalvlaran/zeckit/primality"
	"github.com/katalvlaran/zeckit/sequence"
)

var two = big.NewInt(2)

// Reason names the stage that discarded a candidate.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonGenerator     Reason = "generator"     // generator refused n
	ReasonBitCap        Reason = "bit_cap"       // zero length or above BitCap
	ReasonSeen          Reason = "seen"          // already tested or a sieve prime
	ReasonSieve         Reason = "sieve"         // divisible by a sieve prime
	ReasonTooSmall      Reason = "too_small"     // v ≤ 1
	ReasonEven          Reason = "even"          // v even and ≠ 2
	ReasonExponent      Reason = "exponent"      // Mersenne with composite n
	ReasonThabitZero    Reason = "thabit_zero"   // Thabit at n = 0
	ReasonFibonacciIdx  Reason = "fibonacci_idx" // Fibonacci with composite n ≠ 4
	ReasonCompositeTest Reason = "composite"     // Miller–Rabin found a witness
)

// Heuristic applies the structural rejections of family f to v = f(n).
// A candidate that passes returns ReasonNone.
//
// The rules are necessary conditions only:
//   - 2^n − 1 prime ⇒ n prime.
//   - F(n) prime ⇒ n prime or n = 4.
func Heuristic(f sequence.Family, n int, v *big.Int) Reason {
	if v.Cmp(big.NewInt(1)) <= 0 {
		return ReasonTooSmall
	}
	if v.Bit(0) == 0 && v.Cmp(two) != 0 {
		return ReasonEven
	}
	switch f {
	case sequence.FamilyMersenne:
		if !smallPrime(n) {
			return ReasonExponent
		}
	case sequence.FamilyThabit:
		if n == 0 {
			return ReasonThabitZero
		}
	case sequence.FamilyFibonacci:
		if n != 4 && !smallPrime(n) {
			return ReasonFibonacciIdx
		}
	}
	return ReasonNone
}

// smallPrime is exact: n < 2^63 always falls in the deterministic range.
func smallPrime(n int) bool {
	return n >= 2 && primality.IsProbablePrime(big.NewInt(int64(n)), 1)
}

// sieve is a sorted set of trial divisors that may grow during a run.
type sieve struct {
	primes []*big.Int
	rem    big.Int
}

func newSieve(ps []*big.Int) *sieve {
	return &sieve{primes: sortedSieve(ps)}
}

// catches reports whether a sieve entry properly divides v.
// Walking in ascending order, v equal to an entry stops the walk and passes.
func (s *sieve) catches(v *big.Int) bool {
	for _, p := range s.primes {
		if v.Cmp(p) == 0 {
			return false
		}
		if s.rem.Mod(v, p).Sign() == 0 {
			return true
		}
	}
	return false
}

// promote inserts p keeping the order; duplicates are ignored.
func (s *sieve) promote(p *big.Int) {
	i, found := slices.BinarySearchFunc(s.primes, p, (*big.Int).Cmp)
	if found {
		return
	}
	s.primes = slices.Insert(s.primes, i, new(big.Int).Set(p))
}

func (s *sieve) len() int { return len(s.primes) }

func (s *sieve) snapshot() []*big.Int {
	out := make([]*big.Int, len(s.primes))
	for i, p := range s.primes {
		out[i] = new(big.Int).Set(p)
	}
	return out
}
