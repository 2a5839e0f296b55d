package diagonal

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/zeckit/internal/logging"
	"github.com/katalvlaran/zeckit/primality"
	"github.com/katalvlaran/zeckit/sequence"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/katalvlaran/zeckit/diagonal")

// ErrReset is returned by a run that observed Reset at a yield point.
var ErrReset = errors.New("diagonal: scan reset")

// Option configures a Scanner.
type Option func(*Scanner)

// WithProgress installs a callback invoked at every yield point from the
// scanning goroutine. Panics on nil.
func WithProgress(fn func(Progress)) Option {
	if fn == nil {
		panic("diagonal: WithProgress(nil)")
	}
	return func(s *Scanner) { s.onProgress = fn }
}

// WithYield replaces the host yield primitive (default runtime.Gosched).
// Panics on nil.
func WithYield(fn func()) Option {
	if fn == nil {
		panic("diagonal: WithYield(nil)")
	}
	return func(s *Scanner) { s.yield = fn }
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("diagonal: WithLogger(nil)")
	}
	return func(s *Scanner) { s.logger = l }
}

// WithMetrics records scan activity on m. Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("diagonal: WithMetrics(nil)")
	}
	return func(s *Scanner) { s.metrics = m }
}

// Scanner runs diagonal scans, at most one at a time.
// The zero value is ready to use with default options.
type Scanner struct {
	mu      sync.Mutex
	running bool
	gen     atomic.Uint64

	onProgress func(Progress)
	yield      func()
	logger     *slog.Logger
	metrics    *Metrics
}

// NewScanner returns a Scanner configured by opts.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Running reports whether a scan holds the run-in-progress flag.
func (s *Scanner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Reset clears the run-in-progress flag so a new scan may start. A scan
// already in flight stops at its next yield point with ErrReset and
// reports nothing further.
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.gen.Add(1)
}

// Run scans synchronously. If another scan is active it returns at once
// with started == false and a nil error.
//
// Errors:
//   - ErrInvalidConfig if cfg fails validation (started == false).
//   - ErrReset if Reset was called during the run; the Summary is empty.
//   - ctx.Err() if ctx ended; the Summary holds the partial tallies.
func (s *Scanner) Run(ctx context.Context, cfg Config) (Summary, bool, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, false, err
	}
	gen, ok := s.acquire()
	if !ok {
		return Summary{}, false, nil
	}
	defer s.release(gen)

	sum, err := s.scan(ctx, cfg.clone(), uuid.NewString(), gen, nil)
	return sum, true, err
}

// Start launches the scan on a new goroutine and returns its Job. The
// started result and the error follow Run.
func (s *Scanner) Start(ctx context.Context, cfg Config) (*Job, bool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	gen, ok := s.acquire()
	if !ok {
		return nil, false, nil
	}

	job := &Job{
		RunID:    uuid.NewString(),
		progress: make(chan Progress, 1),
		done:     make(chan struct{}),
	}
	cfg = cfg.clone()
	go func() {
		defer close(job.done)
		defer close(job.progress)
		defer s.release(gen)
		job.summary, job.err = s.scan(ctx, cfg, job.RunID, gen, job.publish)
	}()
	return job, true, nil
}

func (s *Scanner) acquire() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.metrics.run(OutcomeSkipped, 0)
		s.log().Debug("scan already running; request ignored")
		return 0, false
	}
	s.running = true
	return s.gen.Add(1), true
}

// release drops the flag only if no Reset happened since acquire.
func (s *Scanner) release(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen.Load() == gen {
		s.running = false
	}
}

func (s *Scanner) log() *slog.Logger {
	if s.logger == nil {
		return logging.Discard()
	}
	return s.logger
}

// scan is the enumeration loop. cfg is owned by the caller's goroutine.
func (s *Scanner) scan(ctx context.Context, cfg Config, runID string, gen uint64, publish func(Progress)) (Summary, error) {
	start := time.Now()
	log := s.log().With("run_id", runID)
	ctx, span := tracer.Start(ctx, "Scanner.Run", trace.WithAttributes(
		attribute.String("scan.run_id", runID),
		attribute.Int("scan.max_t", cfg.MaxT),
		attribute.Int("scan.bit_cap", cfg.BitCap),
		attribute.Int("scan.rounds", cfg.Rounds),
		attribute.Bool("scan.auto_promote", cfg.AutoPromote),
	))
	defer span.End()

	tester := primality.NewTester()
	if cfg.Seed != 0 {
		tester = primality.NewTester(primality.WithSeed(cfg.Seed))
	}

	sv := newSieve(cfg.SievePrimes)
	seen := make(map[string]struct{}, sv.len())
	for _, p := range sv.primes {
		seen[key(p)] = struct{}{}
	}
	primes := make(map[sequence.Family][]*big.Int, sequence.NumFamilies)
	for _, f := range sequence.Families() {
		if cfg.Enabled(f) {
			primes[f] = []*big.Int{}
		}
	}

	var (
		c    Counters
		iter int
		t    int
	)
	s.metrics.sieve(sv.len())
	log.Info("scan started",
		"max_t", cfg.MaxT, "bit_cap", cfg.BitCap, "rounds", cfg.Rounds,
		"sieve_size", sv.len(), "auto_promote", cfg.AutoPromote)

	summary := func() Summary {
		for _, ps := range primes {
			slices.SortFunc(ps, (*big.Int).Cmp)
		}
		return Summary{
			RunID:    runID,
			Config:   cfg,
			Counters: c,
			Elapsed:  time.Since(start),
			Sieve:    sv.snapshot(),
			Primes:   primes,
		}
	}
	fail := func(err error) (Summary, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		switch {
		case errors.Is(err, ErrReset):
			s.metrics.run(OutcomeReset, time.Since(start))
			log.Info("scan reset", "t", t)
			return Summary{}, err
		case ctx.Err() != nil:
			s.metrics.run(OutcomeCanceled, time.Since(start))
			log.Warn("scan canceled", "t", t, "error", err)
			return summary(), err
		default:
			s.metrics.run(OutcomeFailed, time.Since(start))
			log.Error("scan failed", "t", t, "error", err)
			return Summary{}, err
		}
	}

	for t = 2; t <= cfg.MaxT; t++ {
		for _, f := range sequence.Families() {
			k := int(f)
			if k >= t {
				break
			}
			if !cfg.Enabled(f) {
				continue
			}

			n := t - k
			v, err := f.Generate(n)
			if err != nil {
				s.metrics.reject(ReasonGenerator)
				continue
			}
			if bl := v.BitLen(); bl == 0 || bl > cfg.BitCap {
				s.metrics.reject(ReasonBitCap)
				continue
			}
			c.Tested++
			s.metrics.stage("tested")

			kv := key(v)
			if _, dup := seen[kv]; dup {
				s.metrics.reject(ReasonSeen)
				continue
			}
			if sv.catches(v) {
				s.metrics.reject(ReasonSieve)
				continue
			}
			if r := Heuristic(f, n, v); r != ReasonNone {
				s.metrics.reject(r)
				continue
			}
			c.Survived++
			c.Verified++
			s.metrics.stage("survived")
			s.metrics.stage("verified")

			res, err := tester.Test(v, cfg.Rounds)
			if err != nil {
				return fail(err)
			}
			if res.Prime {
				c.Found++
				seen[kv] = struct{}{}
				primes[f] = append(primes[f], v)
				s.metrics.found(f.String())
				if cfg.AutoPromote {
					sv.promote(v)
					s.metrics.sieve(sv.len())
					log.Debug("sieve promoted", "family", f.String(), "n", n, "bits", v.BitLen(), "sieve_size", sv.len())
				}
			} else {
				s.metrics.reject(ReasonCompositeTest)
			}

			iter++
			if iter%cfg.ChunkSize != 0 {
				continue
			}
			if err := s.checkpoint(ctx, gen); err != nil {
				return fail(err)
			}
			s.report(Progress{
				RunID:     runID,
				T:         t,
				MaxT:      cfg.MaxT,
				Counters:  c,
				SieveSize: sv.len(),
				Elapsed:   time.Since(start),
			}, publish)
			s.doYield()
		}
	}
	t = cfg.MaxT
	if err := s.checkpoint(ctx, gen); err != nil {
		return fail(err)
	}

	sum := summary()
	span.SetAttributes(
		attribute.Int("scan.tested", c.Tested),
		attribute.Int("scan.verified", c.Verified),
		attribute.Int("scan.found", c.Found),
	)
	s.metrics.run(OutcomeCompleted, sum.Elapsed)
	log.Info("scan finished",
		"tested", c.Tested, "survived", c.Survived, "verified", c.Verified,
		"found", c.Found, "elapsed", sum.Elapsed)
	return sum, nil
}

// checkpoint is evaluated at every yield point, before anything is reported.
func (s *Scanner) checkpoint(ctx context.Context, gen uint64) error {
	if s.gen.Load() != gen {
		return ErrReset
	}
	return ctx.Err()
}

func (s *Scanner) report(p Progress, publish func(Progress)) {
	if s.onProgress != nil {
		s.onProgress(p)
	}
	if publish != nil {
		publish(p)
	}
}

func (s *Scanner) doYield() {
	if s.yield != nil {
		s.yield()
		return
	}
	runtime.Gosched()
}

// key identifies a positive value in the seen set.
func key(v *big.Int) string { return string(v.Bytes()) }

// Job is a scan running in the background.
type Job struct {
	RunID string

	progress chan Progress
	done     chan struct{}
	summary  Summary
	err      error
}

// Progress delivers the latest report; older unread reports are dropped.
// The channel is closed when the scan ends.
func (j *Job) Progress() <-chan Progress { return j.progress }

// Done is closed when the scan has ended and the flag is released.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the scan ends and returns its result as Run would.
func (j *Job) Wait() (Summary, error) {
	<-j.done
	return j.summary, j.err
}

func (j *Job) publish(p Progress) {
	select {
	case j.progress <- p:
		return
	default:
	}
	select {
	case <-j.progress:
	default:
	}
	select {
	case j.progress <- p:
	default:
	}
}
