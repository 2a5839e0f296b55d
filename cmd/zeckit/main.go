// Command zeckit exposes Zeckendorf pairing, Miller–Rabin testing and the
// diagonal prime scanner on the command line.
//
//	zeckit decompose 100 --trace
//	zeckit pair 12 7
//	zeckit unpair 33006
//	zeckit prime 2305843009213693951
//	zeckit scan --max-t 100 --families mersenne,thabit --progress
//
// Every command prints text by default; -o json and -o yaml select
// machine-readable output. Errors are printed as one line on stderr and
// exit with status 1.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "zeckit: %v\n", err)
		return 1
	}
	return 0
}
