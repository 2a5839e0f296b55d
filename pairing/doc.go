// Package pairing implements the carryless pairing function π(x, y) built on
// Zeckendorf supports, its inverse, and a round-trip verifier.
//
// 🚀 How it works
//
//	Let Z(x) be the Zeckendorf support of x and r(x) its delimiter rank
//	(smallest e with F[e] > x). With B = 2·r(x):
//
//	  even band = { 2k         : k ∈ Z(x) }      encodes x
//	  odd band  = { B + 2j − 1 : j ∈ Z(y) }      encodes y
//	  π(x, y)   = Σ F[i] over both bands
//
//	Every even-band index is ≤ 2(r−1) = B−2 and every odd-band index is
//	≥ B+3, so the union is again a Zeckendorf support: no carries occur,
//	and Z(π(x,y)) is exactly the union.
//
//	Unpairing reads the support of n, halves the even indices to rebuild x,
//	recomputes B from the recovered x (not from n), and maps odd indices
//	k ≥ B+1 back through (k − B + 1)/2 to rebuild y.
//
// ✨ Contents:
//   - Pair / PairDetail       — (x, y) ↦ n, with the intermediate bands
//   - Unpair / UnpairDetail   — n ↦ (x, y)
//   - Verify                  — (x,y) ↦ n ↦ (x',y') ↦ n' fixed-point check
//   - VerifyUnpair            — is n in the image of π?
//   - VerifyAll               — concurrent batch verification
//
// ⚙️ Bounds:
//
//	A Pairer is bound to a *zeckendorf.Table. When a band index exceeds the
//	table bound, Pair returns *OverflowError (errors.Is ErrIndexOverflow)
//	naming the index the table would need. Unpair never fails for numbers in
//	range; an n outside the image of π decodes to some (x, y) whose re-pair
//	differs from n, which Verify and VerifyUnpair report.
//
// Concurrency:
//
//	Every call is pure; a Pairer may be shared between goroutines.
package pairing
