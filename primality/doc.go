// Package primality implements the Miller–Rabin primality test over
// arbitrary-precision integers.
//
// 🚀 Algorithm
//
//  1. n < 2 is not prime. Trial division by SmallPrimes (2..47) settles
//     small n and rejects most composites, every even n > 2 included.
//  2. Write n−1 = d·2^s with d odd.
//  3. Pick witness bases:
//     n < 2^64  → DeterministicBases (the primes 2..37). This set has no
//     strong liar for any n < 3.3·10^24, so the verdict is exact.
//     n ≥ 2^64 → `rounds` bases drawn uniformly from [2, n−2].
//  4. For each base a: x = a^d mod n. If x ∈ {1, n−1} the base passes;
//     otherwise square up to s−1 times looking for n−1. If it never
//     appears, a is a witness and n is composite.
//  5. All bases passed → probably prime. With random bases a composite
//     survives with probability at most 4^−rounds.
//
// ⚙️ Randomness
//
//	By default random bases come from crypto/rand. WithSeed switches to a
//	deterministic ChaCha8 stream so that runs can be reproduced; WithRandom
//	accepts any io.Reader. A Tester built with WithSeed or a non-thread-safe
//	reader must not be shared between goroutines.
//
// Usage:
//
//	ok := primality.IsProbablePrime(big.NewInt(97), 10) // true
//
//	t := primality.NewTester(primality.WithSeed(42))
//	res, err := t.Test(n, 20)
package primality
