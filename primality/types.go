package primality

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
)

// ErrRandomSource indicates the random reader failed while drawing a base.
var ErrRandomSource = errors.New("primality: random source failed")

// SmallPrimes are used for trial division before any Miller–Rabin round.
var SmallPrimes = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// DeterministicBases is a witness set with no strong liar below 2^64.
var DeterministicBases = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// deterministicLimitBits: n with BitLen ≤ 64 (n < 2^64) use DeterministicBases.
const deterministicLimitBits = 64

// Stage names the step of the test that produced the verdict.
type Stage int

const (
	// StageTrivial: n < 2.
	StageTrivial Stage = iota
	// StageTrialDivision: n equals or is divisible by a small prime.
	StageTrialDivision
	// StageDeterministic: Miller–Rabin with DeterministicBases (exact).
	StageDeterministic
	// StageRandom: Miller–Rabin with random bases (probabilistic).
	StageRandom
)

func (s Stage) String() string {
	switch s {
	case StageTrivial:
		return "trivial"
	case StageTrialDivision:
		return "trial-division"
	case StageDeterministic:
		return "deterministic"
	case StageRandom:
		return "random"
	default:
		return "unknown"
	}
}

// Result describes one primality verdict.
type Result struct {
	Prime bool
	// Deterministic is true when the verdict is exact (trial division or
	// deterministic bases).
	Deterministic bool
	Stage         Stage
	// Divisor is the small prime dividing a composite n, if any.
	Divisor *big.Int
	// Witness is the base that proved n composite, if any.
	Witness *big.Int
	// Bases is the number of Miller–Rabin bases evaluated.
	Bases int
}

// Option configures a Tester.
type Option func(*Tester)

// WithRandom sets the source of random bases. Panics on nil.
func WithRandom(r io.Reader) Option {
	if r == nil {
		panic("primality: WithRandom(nil)")
	}
	return func(t *Tester) {
		t.random = r
	}
}

// WithSeed draws random bases from a deterministic stream (see NewSeededReader).
func WithSeed(seed int64) Option {
	return func(t *Tester) {
		t.random = NewSeededReader(seed)
	}
}

// WithBases replaces the deterministic base set used below 2^64.
// Intended for experiments; a weaker set can misclassify composites.
// Panics if no base is given or a base is below 2.
func WithBases(bases ...int64) Option {
	if len(bases) == 0 {
		panic("primality: WithBases()")
	}
	for _, b := range bases {
		if b < 2 {
			panic("primality: WithBases(base<2)")
		}
	}
	return func(t *Tester) {
		t.bases = toBig(bases)
	}
}

// Tester runs Miller–Rabin with a configured randomness source.
type Tester struct {
	random io.Reader
	bases  []*big.Int
	small  []*big.Int
}

// NewTester returns a Tester drawing from crypto/rand unless configured.
func NewTester(opts ...Option) *Tester {
	t := &Tester{
		random: rand.Reader,
		bases:  toBig(DeterministicBases),
		small:  toBig(SmallPrimes),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func toBig(vs []int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}
