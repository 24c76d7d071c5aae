package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/ansel1/merry"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/g-m-twostay/treebench/Bench"
	"github.com/g-m-twostay/treebench/Trees"
	"github.com/g-m-twostay/treebench/Trees/Treap"
	"github.com/g-m-twostay/treebench/Trees/engine"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// parseKeys parses a comma separated list of integers. Blank entries are
// skipped.
func parseKeys(s string) ([]int, error) {
	var ks []int
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f == "" {
			continue
		}
		k, err := strconv.Atoi(f)
		if err != nil {
			return nil, merry.Prependf(err, "bad key %q", f)
		}
		ks = append(ks, k)
	}
	return ks, nil
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	var verbose bool
	var jsonLogs bool
	root := &cobra.Command{
		Use:           "treebench",
		Short:         "Self-balancing search tree engines and their benchmark",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			if jsonLogs {
				log.SetFormatter(&logrus.JSONFormatter{})
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "log in JSON")
	root.AddCommand(newTreeCmd(log), newCompareCmd(log), newRunCmd(log), newConfigCmd(log))
	return root
}

func newTreeCmd(log logrus.FieldLogger) *cobra.Command {
	var kind, order string
	var inserts, removes, searches, priorities []int
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Apply insertions, removals and searches to one engine and print the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []engine.Option
			if len(priorities) > 0 {
				opts = append(opts, engine.WithPriorities(Treap.Sequence(priorities...)))
			}
			t, err := engine.Named[int](kind, append(opts, engine.WithTiming())...)
			if err != nil {
				log.WithError(err).WithField("kind", kind).Error("can't build tree")
				return err
			}
			o, err := Trees.ParseOrder(order)
			if err != nil {
				return merry.Wrap(err)
			}
			w := cmd.OutOrStdout()
			steps := []struct {
				name string
				keys []int
				op   func(int) Trees.Result
			}{{"insert", inserts, t.Insert}, {"remove", removes, t.Remove}, {"search", searches, t.Search}}
			for _, s := range steps {
				for _, k := range s.keys {
					printResult(w, s.name, k, s.op(k))
				}
			}
			fmt.Fprintf(w, "\n%s: %v\n", o, Trees.Collect(t.Traverse(o)))
			fmt.Fprintf(w, "height=%d nodes=%d\n%s\n\n%s", t.Height(), t.NodeCount(), t.Stats(), t.Structure())
			log.WithFields(logrus.Fields{"kind": t.Kind().String(), "nodes": t.NodeCount()}).Debug("tree session done")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&kind, "kind", "k", "avl", "engine: avl, aa, treap or 23")
	f.IntSliceVarP(&inserts, "insert", "i", nil, "comma separated keys to insert")
	f.IntSliceVarP(&removes, "remove", "r", nil, "comma separated keys to remove, after the insertions")
	f.IntSliceVarP(&searches, "search", "s", nil, "comma separated keys to search, after the removals")
	f.StringVarP(&order, "order", "o", "inorder", "traversal to print: preorder, inorder, postorder or levelorder")
	f.IntSliceVar(&priorities, "priorities", nil, "comma separated priorities a treap replays instead of random ones")
	return cmd
}

func itoa[I ~int | ~uint](i I) string {
	return strconv.FormatUint(uint64(i), 10)
}

func printResult(w io.Writer, op string, k int, r Trees.Result) {
	status := "ok"
	if !r.Success {
		status = "failed"
	}
	fmt.Fprintf(w, "%s %d: %s (%s) height=%d nodes=%d in %v\n", op, k, status, r.Message, r.Height, r.Nodes, r.Elapsed)
}

func newCompareCmd(log logrus.FieldLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "compare KEYS",
		Short: "Insert the same comma separated keys into every engine and compare the shapes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := parseKeys(args[0])
			if err != nil {
				return err
			}
			cell := lipgloss.NewStyle().PaddingRight(2)
			tbl := table.New().
				BorderTop(false).
				BorderBottom(false).
				BorderLeft(false).
				BorderRight(false).
				BorderHeader(false).
				BorderColumn(false).
				StyleFunc(func(row, col int) lipgloss.Style { return cell }).
				Headers("TREE", "HEIGHT", "NODES", "ROTATIONS", "SKEWS", "SPLITS", "MERGES", "BORROWS", "DUPLICATES")
			for _, t := range engine.All[int]() {
				dups := 0
				for _, k := range ks {
					if t.Put(k) != nil {
						dups++
					}
				}
				s := t.Stats()
				tbl.Row(t.Kind().String(), itoa(t.Height()), itoa(t.NodeCount()), itoa(s.Rotations), itoa(s.Skews),
					itoa(s.Splits), itoa(s.Merges), itoa(s.Borrows), itoa(dups))
				log.WithFields(logrus.Fields{"kind": t.Kind().String(), "stats": s.String()}).Debug("compared")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}
}

func newRunCmd(log logrus.FieldLogger) *cobra.Command {
	var path, order, out string
	var kinds, formats []string
	var chart, noProgress bool
	cfg := Bench.Default()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark and export the measurements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path != "" {
				loaded, err := Bench.Load(path)
				if err != nil {
					log.WithError(err).WithField("path", path).Error("can't load config")
					return err
				}
				// flags given explicitly win over the file.
				flags := cfg
				cfg = loaded
				mergeFlags(cmd, &cfg, flags)
			}
			f := cmd.Flags()
			if f.Changed("order") {
				o, err := Bench.ParseDataOrder(order)
				if err != nil {
					return merry.Wrap(err)
				}
				cfg.Test.Order = o
			}
			if f.Changed("kinds") {
				cfg.Trees.Kinds = kinds
			}
			if f.Changed("out") {
				cfg.Output.Directory = out
			}
			if f.Changed("formats") {
				cfg.Output.Formats = formats
			}
			if noProgress {
				cfg.Test.Progress = false
			}
			if f.Changed("chart") {
				cfg.Output.Chart = chart
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			r, err := Bench.NewRunner(cfg, log)
			if err != nil {
				log.WithError(err).WithField("field", Bench.Field(err)).Error("invalid configuration")
				return err
			}
			r.Progress = cmd.ErrOrStderr()
			ms, err := r.Run(ctx)
			if err != nil {
				return err
			}
			paths, err := Bench.Export(cfg.Output, ms, time.Now())
			if err != nil {
				log.WithError(err).Error("export failed")
				return err
			}
			for _, p := range paths {
				log.WithField("path", p).Info("exported")
			}
			if cfg.Output.Chart {
				for _, op := range []string{Bench.OpInsert, Bench.OpSearch, Bench.OpDelete} {
					if err = Bench.Chart(cmd.OutOrStdout(), ms, op); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&path, "config", "c", "", "YAML configuration file")
	f.IntVar(&cfg.Test.MinSize, "min", cfg.Test.MinSize, "smallest data size")
	f.IntVar(&cfg.Test.MaxSize, "max", cfg.Test.MaxSize, "largest data size")
	f.IntVar(&cfg.Test.Step, "step", cfg.Test.Step, "data size step")
	f.IntVarP(&cfg.Test.Iterations, "iterations", "n", cfg.Test.Iterations, "iterations per data size")
	f.IntVarP(&cfg.Test.Parallel, "parallel", "p", cfg.Test.Parallel, "engines measured at once")
	f.Int64Var(&cfg.Test.Seed, "seed", cfg.Test.Seed, "base seed of the generated data")
	f.BoolVar(&cfg.Test.Unique, "unique", cfg.Test.Unique, "drop repeated keys from the generated data")
	f.BoolVar(&cfg.Trees.Baselines, "baselines", cfg.Trees.Baselines, "also measure the third-party baselines")
	f.StringVar(&order, "order", cfg.Test.Order.String(), "data order: random, ascending, descending, almost_sorted, sorted_with_duplicates, reverse_almost_sorted")
	f.StringSliceVar(&kinds, "kinds", cfg.Trees.Kinds, "comma separated engines to measure")
	f.StringVarP(&out, "out", "o", cfg.Output.Directory, "output directory")
	f.StringSliceVar(&formats, "formats", cfg.Output.Formats, "comma separated export formats: csv, json, markdown")
	f.BoolVar(&chart, "chart", cfg.Output.Chart, "print a bar chart per operation")
	f.BoolVar(&noProgress, "no-progress", false, "hide the progress bar")
	return cmd
}

// mergeFlags copies into cfg the fields of flags whose flag was set on cmd.
func mergeFlags(cmd *cobra.Command, cfg *Bench.Config, flags Bench.Config) {
	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("min", func() { cfg.Test.MinSize = flags.Test.MinSize })
	set("max", func() { cfg.Test.MaxSize = flags.Test.MaxSize })
	set("step", func() { cfg.Test.Step = flags.Test.Step })
	set("iterations", func() { cfg.Test.Iterations = flags.Test.Iterations })
	set("parallel", func() { cfg.Test.Parallel = flags.Test.Parallel })
	set("seed", func() { cfg.Test.Seed = flags.Test.Seed })
	set("unique", func() { cfg.Test.Unique = flags.Test.Unique })
	set("baselines", func() { cfg.Trees.Baselines = flags.Trees.Baselines })
}

func newConfigCmd(log logrus.FieldLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage benchmark configuration files",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the default configuration, to treebench.yaml unless PATH is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "treebench.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				err = merry.Errorf("%s already exists, use --force to overwrite it", path)
				log.WithError(err).Error("config init")
				return err
			}
			if err := Bench.Default().Save(path); err != nil {
				return err
			}
			log.WithField("path", path).Info("wrote default configuration")
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
