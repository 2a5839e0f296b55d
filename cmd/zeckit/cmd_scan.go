package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net"
	"net/http"
	"time"

	"github.com/katalvlaran/zeckit/diagonal"
	"github.com/katalvlaran/zeckit/internal/config"
	"github.com/katalvlaran/zeckit/sequence"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

type scanFlags struct {
	configPath  string
	maxT        int
	bitCap      int
	rounds      int
	sieve       []string
	families    []string
	autoPromote bool
	chunk       int
	seed        int64
	metricsAddr string
	progress    bool
	limit       int
}

// =============================================================================
// OUTPUT TYPES
// =============================================================================

type scanOutput struct {
	RunID       string              `json:"run_id" yaml:"run_id"`
	MaxT        int                 `json:"max_t" yaml:"max_t"`
	BitCap      int                 `json:"bit_cap" yaml:"bit_cap"`
	Rounds      int                 `json:"rounds" yaml:"rounds"`
	AutoPromote bool                `json:"auto_promote" yaml:"auto_promote"`
	Seed        int64               `json:"seed,omitempty" yaml:"seed,omitempty"`
	Counters    diagonal.Counters   `json:"counters" yaml:"counters"`
	Elapsed     float64             `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Sieve       []string            `json:"sieve" yaml:"sieve"`
	Primes      map[string][]string `json:"primes" yaml:"primes"`
}

func newScanOutput(s diagonal.Summary) scanOutput {
	out := scanOutput{
		RunID:       s.RunID,
		MaxT:        s.Config.MaxT,
		BitCap:      s.Config.BitCap,
		Rounds:      s.Config.Rounds,
		AutoPromote: s.Config.AutoPromote,
		Seed:        s.Config.Seed,
		Counters:    s.Counters,
		Elapsed:     s.Elapsed.Seconds(),
		Sieve:       decimals(s.Sieve),
		Primes:      make(map[string][]string, len(s.Primes)),
	}
	for f, ps := range s.Primes {
		out.Primes[f.String()] = decimals(ps)
	}
	return out
}

func decimals(vs []*big.Int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

func (a *app) newScanCmd() *cobra.Command {
	f := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Search the sequence diagonal for probable primes",
		Long: `Walk t = 2..max-t and, for each enabled family k < t, test
family_k(t − k) for primality after cheap sieve and structural filters.

Settings come from the defaults, then --config (a YAML profile), then
any flag given explicitly.

Examples:
  zeckit scan --max-t 100
  zeckit scan --families mersenne,thabit --sieve 2,3,5 --auto-promote
  zeckit scan --config scan.yaml --metrics-addr :9090 --progress
  zeckit scan --max-t 400 --seed 7 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return a.runScan(cmd.Context(), f, cfg)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML scan profile")
	fl.IntVar(&f.maxT, "max-t", diagonal.DefaultMaxT, "Last diagonal t")
	fl.IntVar(&f.bitCap, "bit-cap", diagonal.DefaultBitCap, "Skip candidates above this many bits")
	fl.IntVar(&f.rounds, "rounds", diagonal.DefaultRounds, "Miller–Rabin rounds for candidates ≥ 2^64")
	fl.StringSliceVar(&f.sieve, "sieve", []string{"2", "3", "5", "7", "11"}, "Sieve primes")
	fl.StringSliceVar(&f.families, "families", nil, "Enabled families (default all)")
	fl.BoolVar(&f.autoPromote, "auto-promote", false, "Add found primes to the sieve")
	fl.IntVar(&f.chunk, "chunk", diagonal.DefaultChunkSize, "Miller–Rabin tests between progress reports")
	fl.Int64Var(&f.seed, "seed", 0, "Seed for random bases (0 = crypto/rand)")
	fl.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the scan")
	fl.BoolVar(&f.progress, "progress", false, "Print progress reports to stderr")
	fl.IntVar(&f.limit, "limit", diagonal.DefaultFormatLimit, "Primes listed per family in text output")
	return cmd
}

// resolve layers defaults, the profile and explicitly set flags.
func (f *scanFlags) resolve(cmd *cobra.Command) (diagonal.Config, error) {
	cfg := diagonal.DefaultConfig()
	if f.configPath != "" {
		p, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		if cfg, err = p.Apply(cfg); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("max-t") {
		cfg.MaxT = f.maxT
	}
	if changed("bit-cap") {
		cfg.BitCap = f.bitCap
	}
	if changed("rounds") {
		cfg.Rounds = f.rounds
	}
	if changed("sieve") {
		cfg.SievePrimes = make([]*big.Int, 0, len(f.sieve))
		for _, s := range f.sieve {
			p, err := parseNatural("sieve", s)
			if err != nil {
				return cfg, err
			}
			cfg.SievePrimes = append(cfg.SievePrimes, p)
		}
	}
	if changed("families") {
		fams := make([]sequence.Family, 0, len(f.families))
		for _, name := range f.families {
			fam, err := sequence.ParseFamily(name)
			if err != nil {
				return cfg, err
			}
			fams = append(fams, fam)
		}
		cfg = cfg.EnableOnly(fams...)
	}
	if changed("auto-promote") {
		cfg.AutoPromote = f.autoPromote
	}
	if changed("chunk") {
		cfg.ChunkSize = f.chunk
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	return cfg, cfg.Validate()
}

// =============================================================================
// EXECUTION
// =============================================================================

// runScan runs the scan and, when requested, a metrics endpoint that lives
// exactly as long as the scan.
func (a *app) runScan(ctx context.Context, f *scanFlags, cfg diagonal.Config) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := diagonal.NewMetrics(reg)

	opts := []diagonal.Option{
		diagonal.WithLogger(a.logger),
		diagonal.WithMetrics(metrics),
	}
	if f.progress {
		opts = append(opts, diagonal.WithProgress(func(p diagonal.Progress) {
			fmt.Fprintf(a.stderr, "Running: %s\n", p)
		}))
	}
	scanner := diagonal.NewScanner(opts...)

	g, gctx := errgroup.WithContext(ctx)
	var srv *http.Server
	if f.metricsAddr != "" {
		ln, err := net.Listen("tcp", f.metricsAddr)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		a.logger.Info("serving metrics", "addr", ln.Addr().String())
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics: %w", err)
			}
			return nil
		})
	}

	var sum diagonal.Summary
	g.Go(func() error {
		if srv != nil {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()
		}
		var (
			started bool
			err     error
		)
		sum, started, err = scanner.Run(gctx, cfg)
		if err != nil {
			return err
		}
		if !started {
			return errors.New("scan already running")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return a.emit(newScanOutput(sum), func(w io.Writer) {
		_ = sum.Format(w, f.limit)
	})
}
