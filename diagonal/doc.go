// Package diagonal searches integer sequences for probable primes by
// walking a diagonal index space.
//
// 🚀 Walk
//
//	for t = 2..MaxT, for each enabled family k = 1..5 with k < t:
//	    n = t − k,  v = family_k(n)
//
//	Each v passes through a pipeline of increasingly expensive filters:
//
//	  generator error / bit length 0 / bit length > BitCap → skipped
//	  Tested++
//	  already seen (found earlier or a sieve prime)         → skipped
//	  divisible by a sieve prime p ≠ v                      → skipped
//	  family heuristic (see Heuristic)                      → skipped
//	  Survived++, Verified++, Miller–Rabin
//	  probable prime → Found++, recorded, optionally promoted into the sieve
//
//	Promotion makes the result order dependent: a prime found early can
//	hide a later multiple from Miller–Rabin. Fix Config.Seed to reproduce a
//	run whose candidates reach the random-base range (≥ 2^64).
//
// ⚙️ Scheduling
//
//	A Scanner owns a run-in-progress flag. Run and Start return
//	started == false without doing anything while a scan is active.
//	Every ChunkSize Miller–Rabin tests the scan reaches a yield point: it
//	checks for Reset and ctx cancellation, reports Progress, and calls the
//	host yield function. Reset clears the flag immediately; the old scan
//	notices at its next yield point and returns ErrReset without further
//	reports.
//
// ✨ Observability
//
//	WithLogger attaches an *slog.Logger (silent by default), WithMetrics
//	records Prometheus counters, and each run is wrapped in an
//	OpenTelemetry span named "Scanner.Run" carrying the run ID.
//
// Usage:
//
//	cfg := diagonal.DefaultConfig()
//	cfg.MaxT = 100
//	sum, started, err := diagonal.NewScanner().Run(ctx, cfg)
//	if err == nil && started {
//	    _ = sum.Format(os.Stdout, 10)
//	}
package diagonal
