package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"

	"github.com/katalvlaran/zeckit/internal/logging"
	"github.com/katalvlaran/zeckit/natural"
	"github.com/katalvlaran/zeckit/pairing"
	"github.com/katalvlaran/zeckit/zeckendorf"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// app carries the global flags and the objects built from them.
type app struct {
	stdout io.Writer
	stderr io.Writer

	maxIndex  int
	logLevel  string
	logFormat string
	output    string

	logger *slog.Logger
	table  *zeckendorf.Table
	pairer *pairing.Pairer
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "zeckit",
		Short: "Zeckendorf pairing, primality testing and diagonal prime scans",
		Long: `zeckit works with arbitrary-precision natural numbers.

Zeckendorf:
  fib, decompose, rank, encode   Fibonacci table and unique decompositions

Pairing:
  pair, unpair, verify           carryless pairing over even/odd index bands

Primes:
  prime                          Miller–Rabin (exact below 2^64)
  scan                           diagonal search over five sequence families`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.IntVar(&a.maxIndex, "max-index", zeckendorf.DefaultMaxIndex,
		"Largest Fibonacci index in the table")
	pf.StringVar(&a.logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "text",
		"Log format: text or json")
	pf.StringVarP(&a.output, "output", "o", "text",
		"Output format: text, json or yaml")

	root.AddCommand(
		a.newFibCmd(),
		a.newDecomposeCmd(),
		a.newRankCmd(),
		a.newEncodeCmd(),
		a.newPairCmd(),
		a.newUnpairCmd(),
		a.newVerifyCmd(),
		a.newPrimeCmd(),
		a.newScanCmd(),
	)
	return root
}

// setup validates the global flags and builds the logger and table.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	asJSON, err := logging.ParseFormat(a.logFormat)
	if err != nil {
		return err
	}
	switch a.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}
	a.logger = logging.New(logging.Config{
		Level:   level,
		JSON:    asJSON,
		Service: "zeckit",
		Writer:  a.stderr,
	})

	if a.maxIndex == zeckendorf.DefaultMaxIndex {
		a.table = zeckendorf.Default()
	} else if a.table, err = zeckendorf.NewTable(a.maxIndex); err != nil {
		return err
	}
	a.pairer = pairing.New(pairing.WithTable(a.table))
	a.logger.Debug("command setup", "command", cmd.Name(), "max_index", a.table.MaxIndex())
	return nil
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// emit writes v as JSON or YAML, or calls text for the default format.
func (a *app) emit(v any, text func(w io.Writer)) error {
	switch a.output {
	case "json":
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(a.stdout)
		return nil
	}
}

// parseNatural reads a command argument as a natural number.
func parseNatural(name, s string) (*big.Int, error) {
	n, err := natural.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func decimal(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
