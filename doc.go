// Package zeckit works with Zeckendorf representations of arbitrary-precision
// natural numbers and with the primes that hide in classic integer sequences.
//
// 🚀 What is inside?
//
//	natural/     — normalization of external input into non-negative *big.Int
//	zeckendorf/  — Fibonacci table, greedy decomposition, delimiter rank
//	pairing/     — carryless pairing π(x, y), its inverse and round-trip checks
//	primality/   — Miller–Rabin, exact below 2^64, seeded or crypto random above
//	sequence/    — Fibonacci, Mersenne, Thabit, Cullen and Euler generators
//	diagonal/    — cooperative diagonal scanner feeding sequences to Miller–Rabin
//	cmd/zeckit   — command-line front end for all of the above
//
// ✨ Ground rules
//
//   - Exact arithmetic only: every value is a *big.Int, nothing is rounded.
//   - Pure functions: apart from the read-only Fibonacci table and the
//     scanner's run flag there is no shared state.
//   - Bounds are errors, not truncation: exceeding the table reports the
//     index that would have been needed.
//
// Quick example:
//
//	n, _ := pairing.Pair(big.NewInt(12), big.NewInt(7)) // 33006
//	x, y, _ := pairing.Unpair(n)                        // 12, 7
//
//	12 = F_6 + F_4 + F_2  →  even band {12, 8, 4}
//	 7 = F_5 + F_3        →  odd band  {B+2j−1} = {23, 19}, B = 2·r(12) = 14
//
//	go install github.com/katalvlaran/zeckit/cmd/zeckit@latest
package zeckit
