package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/zeckit/zeckendorf"
	"github.com/spf13/cobra"
)

// =============================================================================
// OUTPUT TYPES
// =============================================================================

type fibOutput struct {
	Index int    `json:"index" yaml:"index"`
	Value string `json:"value" yaml:"value"`
}

type stepOutput struct {
	Index  int    `json:"index" yaml:"index"`
	Value  string `json:"value" yaml:"value"`
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`
}

type decomposeOutput struct {
	N       string       `json:"n" yaml:"n"`
	Indices []int        `json:"indices" yaml:"indices"`
	Steps   []stepOutput `json:"steps,omitempty" yaml:"steps,omitempty"`
}

type rankOutput struct {
	X    string `json:"x" yaml:"x"`
	Rank int    `json:"rank" yaml:"rank"`
}

type encodeOutput struct {
	Indices []int  `json:"indices" yaml:"indices"`
	N       string `json:"n" yaml:"n"`
}

// =============================================================================
// COMMANDS
// =============================================================================

func (a *app) newFibCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fib K",
		Short: "Print F_K from the table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			v, err := a.table.Fib(k)
			if err != nil {
				return err
			}
			return a.emit(fibOutput{Index: k, Value: v.String()}, func(w io.Writer) {
				fmt.Fprintf(w, "F_%d = %s\n", k, v)
			})
		},
	}
}

func (a *app) newDecomposeCmd() *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "decompose N",
		Short: "Print the Zeckendorf support of N",
		Long: `Print the descending, non-consecutive Fibonacci indices summing to N.

With --trace every greedy step is shown together with the remainder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNatural("n", args[0])
			if err != nil {
				return err
			}
			idx, err := a.table.Decompose(n)
			if err != nil {
				return err
			}
			out := decomposeOutput{N: n.String(), Indices: idx}
			var steps []zeckendorf.Step
			if trace {
				if steps, err = a.table.Trace(n); err != nil {
					return err
				}
				for _, s := range steps {
					out.Steps = append(out.Steps, stepOutput{
						Index:  s.Index,
						Value:  s.Value.String(),
						Before: s.Before.String(),
						After:  s.After.String(),
					})
				}
			}
			return a.emit(out, func(w io.Writer) {
				fmt.Fprintf(w, "Z(%s) = %s\n", n, joinInts(idx))
				for _, s := range steps {
					fmt.Fprintf(w, "  %s\n", s)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "Show each greedy step")
	return cmd
}

func (a *app) newRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank X",
		Short: "Print the smallest e ≥ 1 with F_e > X",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseNatural("x", args[0])
			if err != nil {
				return err
			}
			r, err := a.table.Rank(x)
			if err != nil {
				return err
			}
			return a.emit(rankOutput{X: x.String(), Rank: r}, func(w io.Writer) {
				fmt.Fprintf(w, "r(%s) = %d\n", x, r)
			})
		},
	}
}

func (a *app) newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode K...",
		Short: "Sum F_k over a valid Zeckendorf support",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := make([]int, len(args))
			for i, s := range args {
				k, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("index %q: %w", s, err)
				}
				idx[i] = k
			}
			n, err := a.table.Encode(idx)
			if err != nil {
				return err
			}
			return a.emit(encodeOutput{Indices: idx, N: n.String()}, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n", n)
			})
		},
	}
}
