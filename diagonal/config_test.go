package diagonal_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/zeckit/diagonal"
	"github.com/katalvlaran/zeckit/sequence"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := diagonal.DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 250, cfg.MaxT)
	assert.Equal(t, 1024, cfg.BitCap)
	assert.Equal(t, 10, cfg.Rounds)
	assert.Equal(t, 250, cfg.ChunkSize)
	assert.False(t, cfg.AutoPromote)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, []int64{2, 3, 5, 7, 11}, ints(cfg.SievePrimes))
	for _, f := range sequence.Families() {
		assert.True(t, cfg.Enabled(f), "%s", f)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*diagonal.Config)
	}{
		{"maxT below 2", func(c *diagonal.Config) { c.MaxT = 1 }},
		{"zero bit cap", func(c *diagonal.Config) { c.BitCap = 0 }},
		{"zero rounds", func(c *diagonal.Config) { c.Rounds = 0 }},
		{"zero chunk", func(c *diagonal.Config) { c.ChunkSize = 0 }},
		{"sieve entry 1", func(c *diagonal.Config) { c.SievePrimes = []*big.Int{big.NewInt(1)} }},
		{"negative sieve entry", func(c *diagonal.Config) { c.SievePrimes = []*big.Int{big.NewInt(-5)} }},
		{"nil sieve entry", func(c *diagonal.Config) { c.SievePrimes = []*big.Int{big.NewInt(3), nil} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := diagonal.DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), diagonal.ErrInvalidConfig)
		})
	}
}

func TestConfig_EmptySieveAndMask(t *testing.T) {
	cfg := diagonal.DefaultConfig()
	cfg.SievePrimes = nil
	cfg.Families = [sequence.NumFamilies]bool{}
	assert.NoError(t, cfg.Validate())
	for _, f := range sequence.Families() {
		assert.False(t, cfg.Enabled(f))
	}
	assert.False(t, cfg.Enabled(sequence.Family(0)))
}

func TestConfig_EnableOnly(t *testing.T) {
	cfg := diagonal.DefaultConfig().EnableOnly(sequence.FamilyThabit, sequence.FamilyEuler, sequence.Family(42))
	assert.Equal(t, [sequence.NumFamilies]bool{false, false, true, false, true}, cfg.Families)
}
