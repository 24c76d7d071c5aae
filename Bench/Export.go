package Bench

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/ansel1/merry"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/g-m-twostay/treebench/Trees"
)

var csvHeader = []string{"TreeType", "Operation", "DataSize", "DataOrder", "Iteration",
	"TotalTimeNs", "AvgTimeNs", "MinTimeNs", "MaxTimeNs", "FinalHeight", "FinalNodes", "Failed",
	"Rotations", "Skews", "Splits", "Merges", "Borrows"}

func csvWriter(w io.Writer, sep string) (*csv.Writer, error) {
	r, n := utf8.DecodeRuneInString(sep)
	if n == 0 || n != len(sep) {
		return nil, merry.Errorf("csv separator %q must be a single character", sep)
	}
	cw := csv.NewWriter(w)
	cw.Comma = r
	return cw, nil
}

func itoa[I ~int | ~int64 | ~uint](i I) string {
	return strconv.FormatInt(int64(i), 10)
}

// WriteCSV writes one row per measurement, fields separated by sep.
func WriteCSV(w io.Writer, ms []Measurement, sep string) error {
	cw, err := csvWriter(w, sep)
	if err != nil {
		return err
	}
	_ = cw.Write(csvHeader)
	for _, m := range ms {
		_ = cw.Write([]string{m.Engine, m.Operation, itoa(m.Size), m.Order.String(), itoa(m.Iteration),
			itoa(m.Total), itoa(m.Avg), itoa(m.Min), itoa(m.Max), itoa(m.Height), itoa(m.Nodes), itoa(m.Failed),
			itoa(m.Stats.Rotations), itoa(m.Stats.Skews), itoa(m.Stats.Splits), itoa(m.Stats.Merges), itoa(m.Stats.Borrows)})
	}
	cw.Flush()
	return merry.Wrap(cw.Error())
}

// WriteJSON writes the measurements as an indented JSON array.
func WriteJSON(w io.Writer, ms []Measurement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if ms == nil {
		ms = []Measurement{}
	}
	return merry.Wrap(enc.Encode(ms))
}

// NamedStats is the statistics snapshot of one tree.
type NamedStats struct {
	Name string
	Trees.Stats
}

// WriteStatsCSV writes one row per statistics snapshot.
func WriteStatsCSV(w io.Writer, stats []NamedStats, sep string) error {
	cw, err := csvWriter(w, sep)
	if err != nil {
		return err
	}
	_ = cw.Write([]string{"TreeType", "Inserts", "Removes", "Searches", "Traversals",
		"Rotations", "Skews", "Splits", "Merges", "Borrows"})
	for _, s := range stats {
		_ = cw.Write([]string{s.Name, itoa(s.Inserts), itoa(s.Removes), itoa(s.Searches), itoa(s.Traversals),
			itoa(s.Rotations), itoa(s.Skews), itoa(s.Splits), itoa(s.Merges), itoa(s.Borrows)})
	}
	cw.Flush()
	return merry.Wrap(cw.Error())
}

// WriteMarkdown writes a report with one table row per engine and operation,
// averaged over sizes and iterations.
func WriteMarkdown(w io.Writer, ms []Measurement, title string, at time.Time) error {
	cell := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		StyleFunc(func(row, col int) lipgloss.Style { return cell }).
		Headers("Tree", "Operation", "Runs", "Avg total", "Avg per op", "Max height", "Max nodes")
	for _, s := range Summarize(ms) {
		tbl.Row(s.Engine, s.Operation, itoa(s.Runs), s.Total.String(), s.PerOp.String(), itoa(s.Height), itoa(s.Nodes))
	}
	_, err := fmt.Fprintf(w, "# %s\n\nGenerated %s\n\n%s\n", title, at.Format("2006-01-02 15:04:05"), tbl)
	return merry.Wrap(err)
}

// WriteStructure writes the header and structural dump of t.
func WriteStructure(w io.Writer, t Trees.Tree[int]) error {
	_, err := fmt.Fprintf(w, "Tree structure\nType: %s\nHeight: %d\nNodes: %d\n\nStructure:\n%s\n",
		t.Kind(), t.Height(), t.NodeCount(), t.Structure())
	return merry.Wrap(err)
}

// WriteTraversal writes the keys of t in order o, ten per line.
func WriteTraversal(w io.Writer, t Trees.Tree[int], o Trees.Order) error {
	keys := Trees.Collect(t.Traverse(o))
	if _, err := fmt.Fprintf(w, "%s\nElements: %d\n\n", o, len(keys)); err != nil {
		return merry.Wrap(err)
	}
	for i, k := range keys {
		sep := ", "
		if (i+1)%10 == 0 || i == len(keys)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%d%s", k, sep); err != nil {
			return merry.Wrap(err)
		}
	}
	return nil
}

// Export writes the measurements in every format of cfg.Output.Formats into
// cfg.Output.Directory, naming the files results.<ext>. It returns the paths
// written.
func Export(cfg OutputConfig, ms []Measurement, at time.Time) ([]string, error) {
	if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
		return nil, merry.Prependf(err, "creating %s", cfg.Directory)
	}
	var paths []string
	for _, f := range cfg.Formats {
		var name string
		var write func(io.Writer) error
		switch f {
		case "csv":
			name, write = "results.csv", func(w io.Writer) error { return WriteCSV(w, ms, cfg.Separator) }
		case "json":
			name, write = "results.json", func(w io.Writer) error { return WriteJSON(w, ms) }
		case "markdown":
			name, write = "results.md", func(w io.Writer) error { return WriteMarkdown(w, ms, "Tree benchmark", at) }
		default:
			return paths, merry.Errorf("unknown export format %q", f)
		}
		path := filepath.Join(cfg.Directory, name)
		if err := writeFile(path, write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return merry.Prependf(err, "creating %s", path)
	}
	if err = write(f); err != nil {
		f.Close()
		return merry.Prependf(err, "writing %s", path)
	}
	return merry.Wrap(f.Close())
}
