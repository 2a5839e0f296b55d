package sequence_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/zeckit/sequence"
	"github.com/katalvlaran/zeckit/zeckendorf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFibonacci_MatchesTable compares fast doubling with the additive table.
func TestFibonacci_MatchesTable(t *testing.T) {
	for n := 0; n <= zeckendorf.DefaultMaxIndex; n++ {
		want, err := zeckendorf.Fib(n)
		require.NoError(t, err)
		got, err := sequence.Fibonacci(n)
		require.NoError(t, err)
		require.Zero(t, want.Cmp(got), "F(%d)", n)
	}
}

// TestFibonacci_LargeIdentities crosses the FFT threshold and checks the
// doubling identity and Cassini's identity with plain multiplication.
func TestFibonacci_LargeIdentities(t *testing.T) {
	const k = 100000
	fk, err := sequence.Fibonacci(k)
	require.NoError(t, err)
	fk1, err := sequence.Fibonacci(k + 1)
	require.NoError(t, err)
	f2k, err := sequence.Fibonacci(2 * k)
	require.NoError(t, err)

	want := new(big.Int).Lsh(fk1, 1)
	want.Sub(want, fk)
	want.Mul(want, fk)
	require.Zero(t, want.Cmp(f2k), "F(2k) = F(k)(2F(k+1) - F(k))")

	fkm1, err := sequence.Fibonacci(k - 1)
	require.NoError(t, err)
	cassini := new(big.Int).Mul(fkm1, fk1)
	cassini.Sub(cassini, new(big.Int).Mul(fk, fk))
	assert.Equal(t, int64(1), cassini.Int64(), "k even gives +1")
}

func TestClosedForms(t *testing.T) {
	cases := []struct {
		name string
		fn   func(int) (*big.Int, error)
		n    int
		want string
	}{
		{"mersenne0", sequence.Mersenne, 0, "0"},
		{"mersenne2", sequence.Mersenne, 2, "3"},
		{"mersenne3", sequence.Mersenne, 3, "7"},
		{"mersenne61", sequence.Mersenne, 61, "2305843009213693951"},
		{"thabit0", sequence.Thabit, 0, "2"},
		{"thabit1", sequence.Thabit, 1, "5"},
		{"thabit2", sequence.Thabit, 2, "11"},
		{"thabit10", sequence.Thabit, 10, "3071"},
		{"cullen0", sequence.Cullen, 0, "1"},
		{"cullen1", sequence.Cullen, 1, "3"},
		{"cullen3", sequence.Cullen, 3, "25"},
		{"cullen141", sequence.Cullen, 141, "393050634124102232869567034555427371542904833"},
		{"euler0", sequence.Euler, 0, "41"},
		{"euler1", sequence.Euler, 1, "43"},
		{"euler40", sequence.Euler, 40, "1681"},
		{"fib10", sequence.Fibonacci, 10, "55"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn(tc.n)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

// TestNegativeIndex maps n < 0 to zero for every family.
func TestNegativeIndex(t *testing.T) {
	for _, f := range sequence.Families() {
		v, err := f.Generate(-3)
		require.NoError(t, err)
		assert.Zero(t, v.Sign(), "%s(-3)", f)
	}
}

func TestExponentTooLarge(t *testing.T) {
	for _, f := range []sequence.Family{sequence.FamilyFibonacci, sequence.FamilyMersenne, sequence.FamilyThabit, sequence.FamilyCullen} {
		_, err := f.Generate(sequence.MaxExponent + 1)
		assert.ErrorIs(t, err, sequence.ErrExponentTooLarge, "%s", f)
	}
	_, err := sequence.Euler(sequence.MaxExponent + 1)
	assert.NoError(t, err, "Euler is polynomial and has no bound")
}

func TestFamily(t *testing.T) {
	assert.Equal(t, []sequence.Family{1, 2, 3, 4, 5}, sequence.Families())
	assert.Len(t, sequence.Families(), sequence.NumFamilies)
	assert.Equal(t, "Thabit", sequence.FamilyThabit.String())
	assert.Equal(t, "Family(9)", sequence.Family(9).String())
	assert.False(t, sequence.Family(0).Valid())
	assert.True(t, sequence.FamilyEuler.Valid())

	f, err := sequence.ParseFamily("mersenne")
	require.NoError(t, err)
	assert.Equal(t, sequence.FamilyMersenne, f)

	_, err = sequence.ParseFamily("lucas")
	assert.ErrorIs(t, err, sequence.ErrUnknownFamily)

	_, err = sequence.Family(0).Generate(1)
	assert.ErrorIs(t, err, sequence.ErrUnknownFamily)
}

func TestAll(t *testing.T) {
	gens := sequence.All()
	require.Len(t, gens, sequence.NumFamilies)
	for i, g := range gens {
		assert.Equal(t, sequence.Family(i+1), g.Family)
		assert.Equal(t, g.Family.String(), g.Name)
		got, err := g.Fn(5)
		require.NoError(t, err)
		want, err := g.Family.Generate(5)
		require.NoError(t, err)
		assert.Zero(t, want.Cmp(got))
	}
}
