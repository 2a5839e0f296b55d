package diagonal_test

import (
	"bytes"
	"context"
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/zeckit/diagonal"
	"github.com/katalvlaran/zeckit/internal/logging"
	"github.com/katalvlaran/zeckit/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallConfig is the maxT=10 scan over every family with an empty sieve.
func smallConfig() diagonal.Config {
	cfg := diagonal.DefaultConfig()
	cfg.MaxT = 10
	cfg.SievePrimes = nil
	return cfg
}

func ints(vs []*big.Int) []int64 {
	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = v.Int64()
	}
	return out
}

// blockOnFirstYield parks the first caller until release is closed;
// later calls return at once.
func blockOnFirstYield() (yield func(), entered, release chan struct{}) {
	entered = make(chan struct{})
	release = make(chan struct{})
	var blocked atomic.Bool
	yield = func() {
		if blocked.CompareAndSwap(false, true) {
			close(entered)
			<-release
		}
	}
	return yield, entered, release
}

func runOK(t *testing.T, s *diagonal.Scanner, cfg diagonal.Config) diagonal.Summary {
	t.Helper()
	sum, started, err := s.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, started)
	return sum
}

func TestRun_SmallDiagonal(t *testing.T) {
	sum := runOK(t, diagonal.NewScanner(), smallConfig())

	assert.Equal(t, diagonal.Counters{Tested: 35, Survived: 22, Verified: 22, Found: 16}, sum.Counters)
	want := map[sequence.Family][]int64{
		sequence.FamilyFibonacci: {2, 13},
		sequence.FamilyMersenne:  {3, 7, 31, 127},
		sequence.FamilyThabit:    {5, 11, 23, 47, 191, 383},
		sequence.FamilyCullen:    {},
		sequence.FamilyEuler:     {43, 53, 61, 71},
	}
	got := make(map[sequence.Family][]int64, len(sum.Primes))
	for f, ps := range sum.Primes {
		got[f] = ints(ps)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("primes mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, sum.Sieve)
	assert.NotEmpty(t, sum.RunID)
}

func TestRun_DefaultSieve(t *testing.T) {
	cfg := smallConfig()
	cfg.SievePrimes = diagonal.DefaultConfig().SievePrimes
	sum := runOK(t, diagonal.NewScanner(), cfg)

	assert.Equal(t, 35, sum.Tested)
	assert.Equal(t, 11, sum.Found)
	// 3 and 7 are sieve primes and therefore already seen.
	assert.Equal(t, []int64{31, 127}, ints(sum.Primes[sequence.FamilyMersenne]))
	assert.Equal(t, []int64{2, 3, 5, 7, 11}, ints(sum.Sieve))
}

func TestRun_AutoPromote(t *testing.T) {
	cfg := smallConfig()
	cfg.AutoPromote = true
	sum := runOK(t, diagonal.NewScanner(), cfg)

	assert.Equal(t, diagonal.Counters{Tested: 35, Survived: 16, Verified: 16, Found: 16}, sum.Counters)
	assert.Equal(t,
		[]int64{2, 3, 5, 7, 11, 13, 23, 31, 43, 47, 53, 61, 71, 127, 191, 383},
		ints(sum.Sieve))
	assert.Equal(t, []int64{3, 7, 31, 127}, ints(sum.Primes[sequence.FamilyMersenne]))
}

func TestRun_FamilyMask(t *testing.T) {
	cfg := smallConfig().EnableOnly(sequence.FamilyMersenne)
	sum := runOK(t, diagonal.NewScanner(), cfg)

	assert.Equal(t, diagonal.Counters{Tested: 8, Survived: 4, Verified: 4, Found: 4}, sum.Counters)
	assert.Equal(t, []int64{3, 7, 31, 127}, ints(sum.Primes[sequence.FamilyMersenne]))
	_, ok := sum.Primes[sequence.FamilyFibonacci]
	assert.False(t, ok, "disabled families have no entry")
}

func TestRun_BitCap(t *testing.T) {
	cfg := smallConfig().EnableOnly(sequence.FamilyMersenne)
	cfg.BitCap = 3
	sum := runOK(t, diagonal.NewScanner(), cfg)

	// Only 2^n − 1 with n ≤ 3 fit in three bits.
	assert.Equal(t, 3, sum.Tested)
	assert.Equal(t, []int64{3, 7}, ints(sum.Primes[sequence.FamilyMersenne]))
}

func TestRun_ProgressEveryChunk(t *testing.T) {
	for _, chunk := range []int{1, 7, 250} {
		var reports []diagonal.Progress
		s := diagonal.NewScanner(diagonal.WithProgress(func(p diagonal.Progress) {
			reports = append(reports, p)
		}))
		cfg := smallConfig()
		cfg.MaxT = 60
		cfg.ChunkSize = chunk
		sum := runOK(t, s, cfg)

		require.Equal(t, 196, sum.Verified)
		require.Len(t, reports, sum.Verified/chunk, "chunk=%d", chunk)
		for i, p := range reports {
			assert.Equal(t, (i+1)*chunk, p.Verified)
			assert.Equal(t, 60, p.MaxT)
			assert.Equal(t, sum.RunID, p.RunID)
			if i > 0 {
				assert.GreaterOrEqual(t, p.T, reports[i-1].T)
			}
		}
	}
}

func TestRun_Reproducible(t *testing.T) {
	cfg := diagonal.DefaultConfig()
	cfg.MaxT = 120
	cfg.Seed = 2024
	a := runOK(t, diagonal.NewScanner(), cfg)
	b := runOK(t, diagonal.NewScanner(), cfg)

	assert.Equal(t, a.Counters, b.Counters)
	for f, ps := range a.Primes {
		require.Len(t, b.Primes[f], len(ps))
		for i := range ps {
			assert.Zero(t, ps[i].Cmp(b.Primes[f][i]))
		}
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	s := diagonal.NewScanner()
	cfg := smallConfig()
	cfg.ChunkSize = 0
	_, started, err := s.Run(context.Background(), cfg)
	assert.ErrorIs(t, err, diagonal.ErrInvalidConfig)
	assert.False(t, started)
	assert.False(t, s.Running())
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := smallConfig()
	cfg.ChunkSize = 1

	sum, started, err := diagonal.NewScanner().Run(ctx, cfg)
	require.True(t, started)
	require.ErrorIs(t, err, context.Canceled)
	// The first Miller–Rabin test completes before the first yield point.
	assert.Equal(t, 1, sum.Verified)
	assert.Equal(t, []int64{2}, ints(sum.Primes[sequence.FamilyFibonacci]))
}

func TestScanner_OverlappingRunIsNoop(t *testing.T) {
	yield, entered, release := blockOnFirstYield()
	s := diagonal.NewScanner(diagonal.WithYield(yield))
	cfg := smallConfig()
	cfg.ChunkSize = 1

	job, started, err := s.Start(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, started)
	<-entered
	assert.True(t, s.Running())

	sum, started, err := s.Run(context.Background(), cfg)
	assert.NoError(t, err)
	assert.False(t, started)
	assert.Zero(t, sum.Found)

	again, started, err := s.Start(context.Background(), cfg)
	assert.NoError(t, err)
	assert.False(t, started)
	assert.Nil(t, again)

	close(release)
	sum, err = job.Wait()
	require.NoError(t, err)
	assert.Equal(t, 16, sum.Found)
	assert.Equal(t, job.RunID, sum.RunID)
	assert.False(t, s.Running())
}

func TestScanner_ResetStopsReporting(t *testing.T) {
	var (
		s       *diagonal.Scanner
		reports int
	)
	s = diagonal.NewScanner(
		diagonal.WithProgress(func(diagonal.Progress) { reports++ }),
		diagonal.WithYield(func() { s.Reset() }),
	)
	cfg := smallConfig()
	cfg.ChunkSize = 1

	sum, started, err := s.Run(context.Background(), cfg)
	require.True(t, started)
	require.ErrorIs(t, err, diagonal.ErrReset)
	assert.Equal(t, 1, reports)
	assert.Empty(t, sum.RunID)
	assert.False(t, s.Running())
}

func TestScanner_ResetAllowsNewRun(t *testing.T) {
	yield, entered, release := blockOnFirstYield()
	s := diagonal.NewScanner(diagonal.WithYield(yield))
	cfg := smallConfig()
	cfg.ChunkSize = 1

	first, started, err := s.Start(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, started)
	<-entered

	s.Reset()
	assert.False(t, s.Running())

	second, started, err := s.Start(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, started)
	sum, err := second.Wait()
	require.NoError(t, err)
	assert.Equal(t, 16, sum.Found)

	close(release)
	_, err = first.Wait()
	assert.ErrorIs(t, err, diagonal.ErrReset)
	assert.False(t, s.Running())
}

func TestJob_ProgressChannel(t *testing.T) {
	cfg := smallConfig()
	cfg.ChunkSize = 1
	job, started, err := diagonal.NewScanner().Start(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, started)

	var last diagonal.Progress
	n := 0
	for p := range job.Progress() {
		last = p
		n++
	}
	sum, err := job.Wait()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	assert.Equal(t, sum.Verified, last.Verified)
	<-job.Done()
}

func TestZeroScanner(t *testing.T) {
	var s diagonal.Scanner
	sum := runOK(t, &s, smallConfig().EnableOnly(sequence.FamilyEuler))
	// n starts at 1, so Euler's 41 is never generated.
	assert.Equal(t, []int64{43, 47, 53, 61, 71}, ints(sum.Primes[sequence.FamilyEuler]))
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Writer: &buf})
	s := diagonal.NewScanner(diagonal.WithLogger(logger))
	_ = runOK(t, s, smallConfig().EnableOnly(sequence.FamilyMersenne))
	assert.Contains(t, buf.String(), "scan finished")
}

func TestOptions_PanicOnNil(t *testing.T) {
	assert.Panics(t, func() { diagonal.WithProgress(nil) })
	assert.Panics(t, func() { diagonal.WithYield(nil) })
	assert.Panics(t, func() { diagonal.WithLogger(nil) })
	assert.Panics(t, func() { diagonal.WithMetrics(nil) })
}
