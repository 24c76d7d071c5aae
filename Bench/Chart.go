package Bench

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/ansel1/merry"
)

// Summary of the measurements of one engine and operation.
type Summary struct {
	Engine    string
	Operation string
	Runs      int
	// Total and PerOp are the means of Measurement.Total and Measurement.Avg.
	Total, PerOp time.Duration
	// Height and Nodes are the largest seen.
	Height, Nodes int
}

// Summarize groups ms by engine and operation, keeping the order in which
// each pair first appears.
func Summarize(ms []Measurement) []Summary {
	type key struct{ engine, op string }
	idx := make(map[key]int)
	var ss []Summary
	for _, m := range ms {
		k := key{m.Engine, m.Operation}
		i, ok := idx[k]
		if !ok {
			i = len(ss)
			idx[k] = i
			ss = append(ss, Summary{Engine: m.Engine, Operation: m.Operation})
		}
		s := &ss[i]
		s.Runs++
		s.Total += m.Total
		s.PerOp += m.Avg
		s.Height = max(s.Height, m.Height)
		s.Nodes = max(s.Nodes, m.Nodes)
	}
	for i := range ss {
		ss[i].Total /= time.Duration(ss[i].Runs)
		ss[i].PerOp /= time.Duration(ss[i].Runs)
	}
	return ss
}

// chartWidth is the length of the longest bar.
const chartWidth = 50

// Chart draws a horizontal bar per engine of the mean time per operation of
// op, scaled so that the slowest engine gets the full width.
func Chart(w io.Writer, ms []Measurement, op string) error {
	var ss []Summary
	for _, s := range Summarize(ms) {
		if s.Operation == op {
			ss = append(ss, s)
		}
	}
	if len(ss) == 0 {
		_, err := fmt.Fprintf(w, "no %s measurements\n", op)
		return merry.Wrap(err)
	}
	slowest := slices.MaxFunc(ss, func(a, b Summary) int { return cmp.Compare(a.PerOp, b.PerOp) }).PerOp
	pad := 0
	for _, s := range ss {
		pad = max(pad, len(s.Engine))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s, mean time per operation\n", op)
	for _, s := range ss {
		n := 0
		if slowest > 0 {
			n = int(int64(s.PerOp) * chartWidth / int64(slowest))
		}
		fmt.Fprintf(&sb, "%-*s |%s %v\n", pad, s.Engine, strings.Repeat("#", n), s.PerOp)
	}
	_, err := io.WriteString(w, sb.String())
	return merry.Wrap(err)
}
