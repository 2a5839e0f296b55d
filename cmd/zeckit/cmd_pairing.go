package main

import (
	"fmt"
	"io"

	"github.com/katalvlaran/zeckit/pairing"
	"github.com/spf13/cobra"
)

// =============================================================================
// OUTPUT TYPES
// =============================================================================

type pairOutput struct {
	X        string `json:"x" yaml:"x"`
	Y        string `json:"y" yaml:"y"`
	N        string `json:"n" yaml:"n"`
	Zx       []int  `json:"zx" yaml:"zx"`
	Zy       []int  `json:"zy" yaml:"zy"`
	R        int    `json:"r" yaml:"r"`
	B        int    `json:"b" yaml:"b"`
	EvenBand []int  `json:"even_band" yaml:"even_band"`
	OddBand  []int  `json:"odd_band" yaml:"odd_band"`
}

func newPairOutput(p pairing.PairResult) pairOutput {
	return pairOutput{
		X: decimal(p.X), Y: decimal(p.Y), N: decimal(p.N),
		Zx: p.Zx, Zy: p.Zy, R: p.R, B: p.B,
		EvenBand: p.EvenBand, OddBand: p.OddBand,
	}
}

type unpairOutput struct {
	N        string `json:"n" yaml:"n"`
	X        string `json:"x" yaml:"x"`
	Y        string `json:"y" yaml:"y"`
	Zn       []int  `json:"zn" yaml:"zn"`
	XIndices []int  `json:"x_indices" yaml:"x_indices"`
	YIndices []int  `json:"y_indices" yaml:"y_indices"`
	R        int    `json:"r" yaml:"r"`
	B        int    `json:"b" yaml:"b"`
}

func newUnpairOutput(u pairing.UnpairResult) unpairOutput {
	return unpairOutput{
		N: decimal(u.N), X: decimal(u.X), Y: decimal(u.Y),
		Zn: u.Zn, XIndices: u.XIndices, YIndices: u.YIndices, R: u.R, B: u.B,
	}
}

type verifyOutput struct {
	OK      bool         `json:"ok" yaml:"ok"`
	Reason  string       `json:"reason,omitempty" yaml:"reason,omitempty"`
	First   pairOutput   `json:"first" yaml:"first"`
	Inverse unpairOutput `json:"inverse" yaml:"inverse"`
	Second  pairOutput   `json:"second" yaml:"second"`
}

// =============================================================================
// COMMANDS
// =============================================================================

func (a *app) newPairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair X Y",
		Short: "Carryless pairing of two naturals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseNatural("x", args[0])
			if err != nil {
				return err
			}
			y, err := parseNatural("y", args[1])
			if err != nil {
				return err
			}
			res, err := a.pairer.PairDetail(x, y)
			if err != nil {
				return err
			}
			return a.emit(newPairOutput(res), func(w io.Writer) {
				fmt.Fprintf(w, "Z(x) = %s, Z(y) = %s\n", joinInts(res.Zx), joinInts(res.Zy))
				fmt.Fprintf(w, "r(x) = %d, B = %d\n", res.R, res.B)
				fmt.Fprintf(w, "even band = %s, odd band = %s\n", joinInts(res.EvenBand), joinInts(res.OddBand))
				fmt.Fprintf(w, "π(%s, %s) = %s\n", res.X, res.Y, res.N)
			})
		},
	}
}

func (a *app) newUnpairCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "unpair N",
		Short: "Invert the carryless pairing",
		Long: `Recover (x, y) from N.

N outside the image of the pairing still decodes. With --check the
result is paired again and the command fails unless that reproduces N.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNatural("n", args[0])
			if err != nil {
				return err
			}
			if check {
				v := a.pairer.VerifyUnpair(n)
				if err := a.emitVerification(v); err != nil {
					return err
				}
				return v.Err
			}
			res, err := a.pairer.UnpairDetail(n)
			if err != nil {
				return err
			}
			return a.emit(newUnpairOutput(res), func(w io.Writer) {
				fmt.Fprintf(w, "Z(n) = %s, r(x) = %d, B = %d\n", joinInts(res.Zn), res.R, res.B)
				fmt.Fprintf(w, "π⁻¹(%s) = (%s, %s)\n", res.N, res.X, res.Y)
			})
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Fail unless N is in the image of the pairing")
	return cmd
}

func (a *app) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify X Y",
		Short: "Check the round trip (x,y) → n → (x',y') → n'",
		Long: `Pair X and Y, unpair the result and pair again.

Exits with status 1 and prints every intermediate value when the round
trip does not reproduce the inputs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseNatural("x", args[0])
			if err != nil {
				return err
			}
			y, err := parseNatural("y", args[1])
			if err != nil {
				return err
			}
			v := a.pairer.Verify(x, y)
			if err := a.emitVerification(v); err != nil {
				return err
			}
			return v.Err
		},
	}
}

func (a *app) emitVerification(v pairing.Verification) error {
	out := verifyOutput{
		OK:      v.OK,
		Reason:  v.Reason,
		First:   newPairOutput(v.First),
		Inverse: newUnpairOutput(v.Inverse),
		Second:  newPairOutput(v.Second),
	}
	return a.emit(out, func(w io.Writer) {
		if v.OK {
			fmt.Fprintf(w, "OK: π(%s, %s) = %s round-trips\n", out.Inverse.X, out.Inverse.Y, out.Second.N)
			return
		}
		fmt.Fprintf(w, "FAIL: %s\n", v.Reason)
		fmt.Fprintf(w, "  first:   x=%s y=%s n=%s\n", out.First.X, out.First.Y, out.First.N)
		fmt.Fprintf(w, "  inverse: n=%s x'=%s y'=%s\n", out.Inverse.N, out.Inverse.X, out.Inverse.Y)
		fmt.Fprintf(w, "  second:  x'=%s y'=%s n'=%s\n", out.Second.X, out.Second.Y, out.Second.N)
	})
}
