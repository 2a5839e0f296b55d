// Package zeckendorf provides an immutable arbitrary-precision Fibonacci
// table together with Zeckendorf decomposition and the delimiter rank.
//
// 🚀 What is a Zeckendorf decomposition?
//
//	Every natural number n has exactly one representation as a sum of
//	Fibonacci numbers F[k] (k ≥ 2) in which no two indices are consecutive:
//
//	  12 = F[6] + F[4] + F[2] = 8 + 3 + 1      →  support {6, 4, 2}
//	  0  = (empty sum)                         →  support {}
//
//	The support is computed by the canonical greedy rule: take the largest
//	F[k] not exceeding the remainder, then forbid index k-1. The greedy
//	choice is what makes the result the unique Zeckendorf support.
//
// ✨ Contents:
//   - Table        — F[0..maxIndex] built once, read-only afterwards
//   - Decompose    — n ↦ descending, non-consecutive indices
//   - Rank         — r(x) = min{ e ≥ 1 : F[e] > x }, the delimiter rank
//   - Encode / Sum — indices ↦ n (with or without support validation)
//   - Trace        — step-by-step greedy decoding for display
//
// ⚙️ Bounds:
//
//	maxIndex bounds every computation. Values needing a larger index are
//	reported as *IndexError wrapping ErrIndexOutOfRange,
//	ErrDecompositionOverflow or ErrRankOverflow, carrying the index and value
//	involved. Nothing is silently truncated. DefaultMaxIndex (300) covers
//	every n < F[301] ≈ 3.6·10^62.
//
// Usage:
//
//	idx, err := zeckendorf.Decompose(big.NewInt(12)) // [6 4 2]
//	r, err := zeckendorf.Rank(big.NewInt(12))         // 7, since F[7]=13 > 12 ≥ F[6]
//
// Concurrency:
//
//	A *Table is immutable after NewTable returns and may be shared freely.
//	Default() is constructed exactly once, before its first use.
package zeckendorf
