// Deterministic witness streams.
//
// Seeds are expanded to a 32-byte ChaCha8 key by SplitMix64 mixing, so that
// nearby seeds (1, 2, 3, ...) still yield unrelated streams.
//
// Policy: seed == 0 ⇒ defaultSeed, mirroring the "zero means default" rule
// used by options throughout the module.

package primality

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"math/rand/v2"
)

// defaultSeed is used when a caller asks for seed 0.
const defaultSeed int64 = 1

// deriveSeed produces word number stream of the ChaCha8 key for parent.
// Each word offsets the seed by the golden-ratio increment and runs it
// through the SplitMix64 finalizer, so adjacent seeds share no key bytes.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) uint64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// NewSeededReader returns a deterministic byte stream for seed.
// The reader is not safe for concurrent use.
func NewSeededReader(seed int64) io.Reader {
	if seed == 0 {
		seed = defaultSeed
	}
	var key [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], deriveSeed(seed, uint64(i)))
	}
	return rand.NewChaCha8(key)
}

// randBelow draws a uniform integer in [0, n) from r by rejection sampling
// over the smallest byte string covering n's bit length.
//
// Complexity: expected O(1) draws of ⌈bits/8⌉ bytes.
func randBelow(r io.Reader, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return new(big.Int), nil
	}
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	excess := uint(len(buf)*8 - bits)
	x := new(big.Int)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
		}
		x.SetBytes(buf)
		if excess > 0 {
			x.Rsh(x, excess)
		}
		if x.Cmp(n) < 0 {
			return x, nil
		}
	}
}
