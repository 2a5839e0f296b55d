package sequence

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"strings"

	"github.com/remyoudompheng/bigfft"
)

// MaxExponent bounds the index accepted by every generator.
const MaxExponent = 1 << 22

// fftThresholdBits is the operand size above which bigfft beats math/big.
const fftThresholdBits = 1 << 16

var (
	// ErrExponentTooLarge indicates n > MaxExponent.
	ErrExponentTooLarge = errors.New("sequence: exponent too large")

	// ErrUnknownFamily indicates an unrecognised family name.
	ErrUnknownFamily = errors.New("sequence: unknown family")
)

// Family identifies one generator. Values start at 1 and follow the order
// in which the scanner enumerates them.
type Family int

const (
	FamilyFibonacci Family = iota + 1
	FamilyMersenne
	FamilyThabit
	FamilyCullen
	FamilyEuler
)

// NumFamilies is the number of generator families.
const NumFamilies = 5

var familyNames = [...]string{"", "Fibonacci", "Mersenne", "Thabit", "Cullen", "Euler"}

func (f Family) String() string {
	if f < FamilyFibonacci || f > FamilyEuler {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// Valid reports whether f is one of the five families.
func (f Family) Valid() bool { return f >= FamilyFibonacci && f <= FamilyEuler }

// ParseFamily maps a case-insensitive name to its Family.
func ParseFamily(s string) (Family, error) {
	for f := FamilyFibonacci; f <= FamilyEuler; f++ {
		if strings.EqualFold(s, familyNames[f]) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// Families returns all families in enumeration order.
func Families() []Family {
	return []Family{FamilyFibonacci, FamilyMersenne, FamilyThabit, FamilyCullen, FamilyEuler}
}

// Generate evaluates the family's sequence at n.
func (f Family) Generate(n int) (*big.Int, error) {
	switch f {
	case FamilyFibonacci:
		return Fibonacci(n)
	case FamilyMersenne:
		return Mersenne(n)
	case FamilyThabit:
		return Thabit(n)
	case FamilyCullen:
		return Cullen(n)
	case FamilyEuler:
		return Euler(n)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
	}
}

// Fibonacci returns F(n) by fast doubling over the bits of n.
//
// Complexity: O(log n) multiplications of up to 0.7·n bits.
func Fibonacci(n int) (*big.Int, error) {
	if n <= 0 {
		return new(big.Int), nil
	}
	if n > MaxExponent {
		return nil, tooLarge(n)
	}
	a, b := big.NewInt(0), big.NewInt(1) // F(k), F(k+1) with k = 0
	for bit := bits.Len(uint(n)) - 1; bit >= 0; bit-- {
		// c = F(2k) = F(k)·(2F(k+1) − F(k))
		t := new(big.Int).Lsh(b, 1)
		t.Sub(t, a)
		c := mul(a, t)
		// d = F(2k+1) = F(k)² + F(k+1)²
		d := mul(a, a)
		d.Add(d, mul(b, b))

		if n>>uint(bit)&1 == 1 {
			a, b = d, c.Add(c, d)
		} else {
			a, b = c, d
		}
	}
	return a, nil
}

// Mersenne returns 2^n − 1.
func Mersenne(n int) (*big.Int, error) {
	if n < 0 {
		return new(big.Int), nil
	}
	if n > MaxExponent {
		return nil, tooLarge(n)
	}
	v := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return v.Sub(v, big.NewInt(1)), nil
}

// Thabit returns 3·2^n − 1.
func Thabit(n int) (*big.Int, error) {
	if n < 0 {
		return new(big.Int), nil
	}
	if n > MaxExponent {
		return nil, tooLarge(n)
	}
	v := new(big.Int).Lsh(big.NewInt(3), uint(n))
	return v.Sub(v, big.NewInt(1)), nil
}

// Cullen returns n·2^n + 1.
func Cullen(n int) (*big.Int, error) {
	if n < 0 {
		return new(big.Int), nil
	}
	if n > MaxExponent {
		return nil, tooLarge(n)
	}
	v := new(big.Int).Lsh(big.NewInt(int64(n)), uint(n))
	return v.Add(v, big.NewInt(1)), nil
}

// Euler returns n² + n + 41.
func Euler(n int) (*big.Int, error) {
	if n < 0 {
		return new(big.Int), nil
	}
	bn := big.NewInt(int64(n))
	v := new(big.Int).Mul(bn, bn)
	v.Add(v, bn)
	return v.Add(v, big.NewInt(41)), nil
}

func mul(x, y *big.Int) *big.Int {
	if x.BitLen() >= fftThresholdBits && y.BitLen() >= fftThresholdBits {
		return bigfft.Mul(x, y)
	}
	return new(big.Int).Mul(x, y)
}

func tooLarge(n int) error {
	return fmt.Errorf("%w: %d > %d", ErrExponentTooLarge, n, MaxExponent)
}

// Generator pairs a family with its evaluation function.
type Generator struct {
	Family Family
	Name   string
	Fn     func(n int) (*big.Int, error)
}

// All returns one Generator per family in enumeration order.
func All() []Generator {
	fams := Families()
	gens := make([]Generator, len(fams))
	for i, f := range fams {
		gens[i] = Generator{Family: f, Name: f.String(), Fn: f.Generate}
	}
	return gens
}
