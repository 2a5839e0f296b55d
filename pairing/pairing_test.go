package pairing_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/zeckit/natural"
	"github.com/katalvlaran/zeckit/pairing"
	"github.com/katalvlaran/zeckit/zeckendorf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPair_Concrete checks hand-computed pairings and their bands.
func TestPair_Concrete(t *testing.T) {
	cases := []struct {
		x, y     int64
		n        string
		even     []int
		odd      []int
		rank, bb int
	}{
		{0, 0, "0", []int{}, []int{}, 1, 2},
		{1, 0, "3", []int{4}, []int{}, 3, 6},
		{0, 1, "5", []int{}, []int{5}, 1, 2},
		{1, 1, "37", []int{4}, []int{9}, 3, 6},
		{2, 3, "618", []int{6}, []int{15}, 4, 8},
		{12, 7, "33006", []int{12, 8, 4}, []int{23, 19}, 7, 14},
		{100, 200, "3404923804", []int{22, 12, 8}, []int{47, 43, 27}, 12, 24},
	}
	for _, tc := range cases {
		res, err := pairing.PairDetail(big.NewInt(tc.x), big.NewInt(tc.y))
		require.NoError(t, err, "pair(%d,%d)", tc.x, tc.y)
		assert.Equal(t, tc.n, res.N.String(), "pair(%d,%d)", tc.x, tc.y)
		assert.Equal(t, tc.rank, res.R)
		assert.Equal(t, tc.bb, res.B)
		if diff := cmp.Diff(tc.even, res.EvenBand); diff != "" {
			t.Errorf("even band of (%d,%d) (-want +got):\n%s", tc.x, tc.y, diff)
		}
		if diff := cmp.Diff(tc.odd, res.OddBand); diff != "" {
			t.Errorf("odd band of (%d,%d) (-want +got):\n%s", tc.x, tc.y, diff)
		}
	}
}

// TestPair_ZeroZero is the base case π(0,0) = 0.
func TestPair_ZeroZero(t *testing.T) {
	n, err := pairing.Pair(big.NewInt(0), big.NewInt(0))
	require.NoError(t, err)
	assert.Zero(t, n.Sign())
}

// TestPair_SupportIsUnion checks Z(π(x,y)) = odd band ∪ even band.
func TestPair_SupportIsUnion(t *testing.T) {
	for x := int64(0); x < 40; x++ {
		for y := int64(0); y < 40; y++ {
			res, err := pairing.PairDetail(big.NewInt(x), big.NewInt(y))
			require.NoError(t, err)

			zn, err := zeckendorf.Decompose(res.N)
			require.NoError(t, err)
			want := append(append([]int{}, res.OddBand...), res.EvenBand...)
			require.Equal(t, want, append([]int{}, zn...), "x=%d y=%d", x, y)
		}
	}
}

// TestPair_Injective checks that distinct pairs never share an image.
func TestPair_Injective(t *testing.T) {
	seen := make(map[string][2]int64)
	for x := int64(0); x < 150; x++ {
		for y := int64(0); y < 150; y++ {
			n, err := pairing.Pair(big.NewInt(x), big.NewInt(y))
			require.NoError(t, err)
			if prev, dup := seen[n.String()]; dup {
				t.Fatalf("pair(%d,%d) = pair(%d,%d) = %s", x, y, prev[0], prev[1], n)
			}
			seen[n.String()] = [2]int64{x, y}
		}
	}
}

// TestPair_Overflow reports the index the table would need.
func TestPair_Overflow(t *testing.T) {
	x, _ := new(big.Int).SetString("1000000000000000000000000000000", 10)
	res, err := pairing.PairDetail(x, x)
	require.ErrorIs(t, err, pairing.ErrIndexOverflow)

	var oe *pairing.OverflowError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, 581, oe.RequiredIndex)
	assert.Equal(t, zeckendorf.DefaultMaxIndex, oe.MaxIndex)
	assert.Nil(t, res.N)
	assert.Equal(t, 292, res.B)
	assert.NotEmpty(t, res.OddBand)
}

// TestPair_OverflowSmallTable exercises WithTable.
func TestPair_OverflowSmallTable(t *testing.T) {
	tb, err := zeckendorf.NewTable(20)
	require.NoError(t, err)
	p := pairing.New(pairing.WithTable(tb))
	assert.Same(t, tb, p.Table())

	_, err = p.Pair(big.NewInt(100), big.NewInt(100))
	var oe *pairing.OverflowError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, 45, oe.RequiredIndex)
	assert.Equal(t, 20, oe.MaxIndex)

	n, err := p.Pair(big.NewInt(3), big.NewInt(2))
	require.NoError(t, err)
	x, y, err := p.Unpair(n)
	require.NoError(t, err)
	assert.Equal(t, "3", x.String())
	assert.Equal(t, "2", y.String())
}

// TestPair_InputValidation rejects non-natural arguments.
func TestPair_InputValidation(t *testing.T) {
	_, err := pairing.Pair(big.NewInt(-1), big.NewInt(0))
	assert.ErrorIs(t, err, natural.ErrInvalidInput)
	_, err = pairing.Pair(big.NewInt(0), nil)
	assert.ErrorIs(t, err, natural.ErrInvalidInput)
	_, _, err = pairing.Unpair(big.NewInt(-7))
	assert.ErrorIs(t, err, natural.ErrInvalidInput)
}

func TestWithTable_NilPanics(t *testing.T) {
	assert.Panics(t, func() { pairing.WithTable(nil) })
}

// TestUnpair_Detail walks the inverse of π(12, 7).
func TestUnpair_Detail(t *testing.T) {
	res, err := pairing.UnpairDetail(big.NewInt(33006))
	require.NoError(t, err)
	assert.Equal(t, []int{23, 19, 12, 8, 4}, res.Zn)
	assert.Equal(t, []int{6, 4, 2}, res.XIndices)
	assert.Equal(t, "12", res.X.String())
	assert.Equal(t, 14, res.B)
	assert.Equal(t, []int{5, 3}, res.YIndices)
	assert.Equal(t, "7", res.Y.String())
}

// TestUnpair_OutsideImage decodes numbers π never produces without error.
func TestUnpair_OutsideImage(t *testing.T) {
	x, y, err := pairing.Unpair(big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "0", x.String())
	assert.Equal(t, "1", y.String())

	n, err := pairing.Pair(x, y)
	require.NoError(t, err)
	assert.NotEqual(t, "2", n.String())
}

// TestRoundTrip_Grid checks unpair(pair(x,y)) = (x,y) on a dense grid.
func TestRoundTrip_Grid(t *testing.T) {
	for x := int64(0); x < 120; x++ {
		for y := int64(0); y < 120; y++ {
			n, err := pairing.Pair(big.NewInt(x), big.NewInt(y))
			require.NoError(t, err)
			gx, gy, err := pairing.Unpair(n)
			require.NoError(t, err)
			require.Equal(t, x, gx.Int64(), "x of pair(%d,%d)", x, y)
			require.Equal(t, y, gy.Int64(), "y of pair(%d,%d)", x, y)
		}
	}
}
