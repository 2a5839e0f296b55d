package diagonal_test

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/katalvlaran/zeckit/diagonal"
	"github.com/katalvlaran/zeckit/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_Format(t *testing.T) {
	sum := diagonal.Summary{
		Config:   diagonal.DefaultConfig().EnableOnly(sequence.FamilyMersenne),
		Counters: diagonal.Counters{Tested: 8, Survived: 4, Verified: 4, Found: 4},
		Elapsed:  1500 * time.Millisecond,
		Sieve:    []*big.Int{big.NewInt(2), big.NewInt(3)},
		Primes: map[sequence.Family][]*big.Int{
			sequence.FamilyMersenne: {big.NewInt(3), big.NewInt(7), big.NewInt(31)},
		},
	}
	var b strings.Builder
	require.NoError(t, sum.Format(&b, 2))

	want := `Summary
  max_t=250, bit_cap=1024, MR_rounds=10, |P|=2
  tested=8, survivors=4, verified=4, found=4
  elapsed=1.50s

Sieve primes P = { 2, 3 }

Mersenne: 3 prime survivors recorded.
  3
  7
  ...
`
	assert.Equal(t, want, b.String())
}

func TestSummary_FormatDefaultLimit(t *testing.T) {
	ps := make([]*big.Int, 12)
	for i := range ps {
		ps[i] = big.NewInt(int64(100 + i))
	}
	sum := diagonal.Summary{
		Config: diagonal.DefaultConfig(),
		Primes: map[sequence.Family][]*big.Int{sequence.FamilyEuler: ps},
	}
	var b strings.Builder
	require.NoError(t, sum.Format(&b, 0))
	out := b.String()

	assert.Contains(t, out, "Euler: 12 prime survivors recorded.\n")
	assert.Contains(t, out, "  109\n  ...\n")
	assert.NotContains(t, out, "110")
	assert.Contains(t, out, "Cullen: 0 prime survivors recorded.\n")
}

func TestProgress_String(t *testing.T) {
	p := diagonal.Progress{
		T: 12, MaxT: 250,
		Counters:  diagonal.Counters{Tested: 40, Survived: 20, Verified: 20, Found: 9},
		SieveSize: 5,
		Elapsed:   250 * time.Millisecond,
	}
	assert.Equal(t, "t=12/250 tested=40 survivors=20 verified=20 found=9 elapsed=0.25s |P|=5", p.String())
}
