package diagonal

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/zeckit/sequence"
)

// Defaults mirror the interactive scanner's initial selection.
const (
	DefaultMaxT      = 250
	DefaultBitCap    = 1024
	DefaultRounds    = 10
	DefaultChunkSize = 250
)

// ErrInvalidConfig wraps every validation failure reported by Config.Validate.
var ErrInvalidConfig = errors.New("diagonal: invalid config")

// configValidate checks Config struct tags; "sieve" is registered in init.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	if err := configValidate.RegisterValidation("sieve", validateSieve); err != nil {
		panic("diagonal: register sieve validation: " + err.Error())
	}
}

// validateSieve accepts a []*big.Int whose entries are all non-nil and ≥ 2.
func validateSieve(fl validator.FieldLevel) bool {
	ps, ok := fl.Field().Interface().([]*big.Int)
	if !ok {
		return false
	}
	for _, p := range ps {
		if p == nil || p.Cmp(two) < 0 {
			return false
		}
	}
	return true
}

// Config describes one diagonal scan.
type Config struct {
	// MaxT is the last diagonal visited; t runs over 2..MaxT.
	MaxT int `validate:"min=2"`
	// BitCap skips candidates longer than this many bits.
	BitCap int `validate:"min=1"`
	// Rounds is the Miller–Rabin round count for candidates ≥ 2^64.
	Rounds int `validate:"min=1"`
	// SievePrimes are cheap trial divisors applied before Miller–Rabin.
	SievePrimes []*big.Int `validate:"sieve"`
	// Families enables generators; index is Family-1.
	Families [sequence.NumFamilies]bool
	// AutoPromote appends each newly found prime to the live sieve.
	AutoPromote bool
	// ChunkSize is the number of Miller–Rabin tests between yield points.
	ChunkSize int `validate:"min=1"`
	// Seed fixes the Miller–Rabin random bases; 0 draws from crypto/rand.
	Seed int64
}

// DefaultConfig returns the stock scan: every family, sieve {2,3,5,7,11}.
func DefaultConfig() Config {
	return Config{
		MaxT:        DefaultMaxT,
		BitCap:      DefaultBitCap,
		Rounds:      DefaultRounds,
		SievePrimes: []*big.Int{big.NewInt(2), big.NewInt(3), big.NewInt(5), big.NewInt(7), big.NewInt(11)},
		Families:    [sequence.NumFamilies]bool{true, true, true, true, true},
		ChunkSize:   DefaultChunkSize,
	}
}

// Validate reports the first violated constraint wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Enabled reports whether family f takes part in the scan.
func (c Config) Enabled(f sequence.Family) bool {
	return f.Valid() && c.Families[f-1]
}

// EnableOnly returns a copy of c with exactly the given families enabled.
func (c Config) EnableOnly(fams ...sequence.Family) Config {
	c.Families = [sequence.NumFamilies]bool{}
	for _, f := range fams {
		if f.Valid() {
			c.Families[f-1] = true
		}
	}
	return c
}

// clone deep-copies the sieve so a run never aliases the caller's slice.
func (c Config) clone() Config {
	out := c
	out.SievePrimes = make([]*big.Int, len(c.SievePrimes))
	for i, p := range c.SievePrimes {
		out.SievePrimes[i] = new(big.Int).Set(p)
	}
	return out
}

// sortedSieve returns the distinct sieve entries in ascending order.
func sortedSieve(ps []*big.Int) []*big.Int {
	out := make([]*big.Int, 0, len(ps))
	for _, p := range ps {
		out = append(out, new(big.Int).Set(p))
	}
	slices.SortFunc(out, (*big.Int).Cmp)
	return slices.CompactFunc(out, func(a, b *big.Int) bool { return a.Cmp(b) == 0 })
}
