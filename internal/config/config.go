// Package config loads YAML scan profiles for the zeckit CLI and overlays
// them on diagonal.DefaultConfig.
//
// A profile names only the settings it changes:
//
//	max_t: 400
//	bit_cap: 2048
//	rounds: 16
//	sieve: [2, 3, 5, 7, 11, 13]
//	families: [mersenne, thabit]
//	auto_promote: true
//	chunk_size: 500
//	seed: 2024
//
// Unknown keys are rejected so that a typo cannot silently fall back to a
// default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/zeckit/diagonal"
	"github.com/katalvlaran/zeckit/natural"
	"github.com/katalvlaran/zeckit/sequence"
	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile wraps every decoding or validation failure.
var ErrInvalidProfile = errors.New("config: invalid profile")

var profileValidate = validator.New()

// Natural is a YAML scalar holding a non-negative integer of any size.
type Natural struct {
	*big.Int
}

// UnmarshalYAML accepts plain or quoted decimal digits.
func (n *Natural) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	v, err := natural.Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	n.Int = v
	return nil
}

// MarshalYAML writes the value as a decimal scalar.
func (n Natural) MarshalYAML() (any, error) {
	v := "0"
	if n.Int != nil {
		v = n.String()
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v}, nil
}

// Profile is the on-disk form of a scan configuration. Zero fields keep
// the default.
type Profile struct {
	MaxT        int       `yaml:"max_t,omitempty" validate:"omitempty,min=2"`
	BitCap      int       `yaml:"bit_cap,omitempty" validate:"omitempty,min=1"`
	Rounds      int       `yaml:"rounds,omitempty" validate:"omitempty,min=1"`
	Sieve       []Natural `yaml:"sieve,omitempty"`
	Families    []string  `yaml:"families,omitempty" validate:"omitempty,unique"`
	AutoPromote *bool     `yaml:"auto_promote,omitempty"`
	ChunkSize   int       `yaml:"chunk_size,omitempty" validate:"omitempty,min=1"`
	Seed        int64     `yaml:"seed,omitempty"`
}

// Load reads and validates the profile at path.
func Load(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Parse decodes and validates an in-memory profile.
func Parse(data []byte) (Profile, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one YAML document from r. An empty document yields the
// zero Profile.
func Decode(r io.Reader) (Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks field ranges and family names.
func (p Profile) Validate() error {
	if err := profileValidate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if _, err := p.families(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	for _, n := range p.Sieve {
		if n.Int == nil || n.Cmp(big.NewInt(2)) < 0 {
			return fmt.Errorf("%w: sieve entry %v is below 2", ErrInvalidProfile, n.Int)
		}
	}
	return nil
}

func (p Profile) families() ([]sequence.Family, error) {
	out := make([]sequence.Family, 0, len(p.Families))
	for _, name := range p.Families {
		f, err := sequence.ParseFamily(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Apply overlays the set fields of p on base and validates the result.
func (p Profile) Apply(base diagonal.Config) (diagonal.Config, error) {
	cfg := base
	if p.MaxT != 0 {
		cfg.MaxT = p.MaxT
	}
	if p.BitCap != 0 {
		cfg.BitCap = p.BitCap
	}
	if p.Rounds != 0 {
		cfg.Rounds = p.Rounds
	}
	if p.Sieve != nil {
		cfg.SievePrimes = make([]*big.Int, len(p.Sieve))
		for i, n := range p.Sieve {
			cfg.SievePrimes[i] = new(big.Int).Set(n.Int)
		}
	}
	if p.Families != nil {
		fams, err := p.families()
		if err != nil {
			return base, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
		cfg = cfg.EnableOnly(fams...)
	}
	if p.AutoPromote != nil {
		cfg.AutoPromote = *p.AutoPromote
	}
	if p.ChunkSize != 0 {
		cfg.ChunkSize = p.ChunkSize
	}
	if p.Seed != 0 {
		cfg.Seed = p.Seed
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}
