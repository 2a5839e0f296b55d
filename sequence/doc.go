// Package sequence provides exact integer sequences used as candidate
// sources by the diagonalization scanner.
//
//	Fibonacci  F(n)         fast doubling: F(2k) = F(k)·(2F(k+1) − F(k)),
//	                                       F(2k+1) = F(k)² + F(k+1)²
//	Mersenne   2^n − 1
//	Thabit     3·2^n − 1
//	Cullen     n·2^n + 1
//	Euler      n² + n + 41
//
// Every generator maps n ≥ 0 to a non-negative *big.Int; negative n maps to
// 0. Exponents above MaxExponent are refused with ErrExponentTooLarge so
// that a misconfigured scan cannot allocate unbounded memory.
//
// Products of very large operands inside the Fibonacci doubling are handed
// to an FFT multiplier (github.com/remyoudompheng/bigfft).
package sequence
