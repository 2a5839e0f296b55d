package diagonal

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/katalvlaran/zeckit/sequence"
)

// DefaultFormatLimit is the number of primes Format lists per family.
const DefaultFormatLimit = 10

// Counters are the running tallies of a scan.
//
//	Tested   candidates inside the bit cap (seen values included)
//	Survived candidates passing the seen set, sieve and heuristics
//	Verified candidates handed to Miller–Rabin
//	Found    probable primes recorded
type Counters struct {
	Tested   int `json:"tested" yaml:"tested"`
	Survived int `json:"survived" yaml:"survived"`
	Verified int `json:"verified" yaml:"verified"`
	Found    int `json:"found" yaml:"found"`
}

// Progress is reported at every yield point.
type Progress struct {
	RunID string
	T     int
	MaxT  int
	Counters
	SieveSize int
	Elapsed   time.Duration
}

func (p Progress) String() string {
	return fmt.Sprintf("t=%d/%d tested=%d survivors=%d verified=%d found=%d elapsed=%.2fs |P|=%d",
		p.T, p.MaxT, p.Tested, p.Survived, p.Verified, p.Found, p.Elapsed.Seconds(), p.SieveSize)
}

// Summary is the result of a scan.
type Summary struct {
	RunID  string
	Config Config
	Counters
	Elapsed time.Duration
	// Sieve is the final sieve, promotions included, ascending.
	Sieve []*big.Int
	// Primes holds the probable primes per enabled family, ascending.
	Primes map[sequence.Family][]*big.Int
}

// Format writes a plain-text report listing at most limit primes per
// enabled family followed by "..." when truncated. limit ≤ 0 selects
// DefaultFormatLimit.
func (s Summary) Format(w io.Writer, limit int) error {
	if limit <= 0 {
		limit = DefaultFormatLimit
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Summary")
	fmt.Fprintf(bw, "  max_t=%d, bit_cap=%d, MR_rounds=%d, |P|=%d\n",
		s.Config.MaxT, s.Config.BitCap, s.Config.Rounds, len(s.Sieve))
	fmt.Fprintf(bw, "  tested=%d, survivors=%d, verified=%d, found=%d\n",
		s.Tested, s.Survived, s.Verified, s.Found)
	fmt.Fprintf(bw, "  elapsed=%.2fs\n\n", s.Elapsed.Seconds())

	ps := make([]string, len(s.Sieve))
	for i, p := range s.Sieve {
		ps[i] = p.String()
	}
	fmt.Fprintf(bw, "Sieve primes P = { %s }\n", strings.Join(ps, ", "))

	for _, f := range sequence.Families() {
		if !s.Config.Enabled(f) {
			continue
		}
		primes := s.Primes[f]
		fmt.Fprintf(bw, "\n%s: %d prime survivors recorded.\n", f, len(primes))
		for i, v := range primes {
			if i == limit {
				fmt.Fprintln(bw, "  ...")
				break
			}
			fmt.Fprintf(bw, "  %s\n", v)
		}
	}
	return bw.Flush()
}
