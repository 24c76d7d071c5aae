// Package Bench measures the tree engines, and optionally a few third-party
// ordered containers, over generated key sequences and exports the results.
package Bench

import (
	"context"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/ansel1/merry"
	"github.com/cornelk/hashmap"
	"github.com/g-m-twostay/treebench/Trees"
	"github.com/g-m-twostay/treebench/Trees/Treap"
	"github.com/g-m-twostay/treebench/Trees/engine"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Operations measured for every subject, in order.
const (
	OpInsert = "insert"
	OpSearch = "search"
	OpDelete = "delete"
)

// Measurement of one operation over a whole key sequence. Size is the
// requested length of the sequence and Keys its actual length, which is
// smaller when repeated keys were dropped. Height and Nodes describe the
// subject after the phase; Stats holds the counter deltas of the phase.
// Failed counts the calls that reported a duplicate or a miss.
type Measurement struct {
	Engine    string        `json:"engine"`
	Operation string        `json:"operation"`
	Size      int           `json:"size"`
	Keys      int           `json:"keys"`
	Order     DataOrder     `json:"order"`
	Iteration int           `json:"iteration"`
	Total     time.Duration `json:"total_ns"`
	Avg       time.Duration `json:"avg_ns"`
	Min       time.Duration `json:"min_ns"`
	Max       time.Duration `json:"max_ns"`
	Height    int           `json:"height"`
	Nodes     int           `json:"nodes"`
	Failed    int           `json:"failed"`
	Stats     Trees.Stats   `json:"stats"`
}

// job is one subject measured over one key sequence.
type job struct {
	subject   string
	kind      Trees.Kind
	baseline  bool
	size      int
	iteration int
}

// Runner executes the measurements described by a Config.
type Runner struct {
	cfg Config
	log logrus.FieldLogger
	// Progress is where the progress bar is drawn when enabled.
	Progress io.Writer
	// datasets caches the generated sequences by seed, since every subject
	// of a (size, iteration) pair runs on the same keys.
	datasets *hashmap.Map[int64, []int]
}

// NewRunner validates cfg and returns a Runner logging to log.
func NewRunner(cfg Config, log logrus.FieldLogger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, log: log, Progress: os.Stderr, datasets: hashmap.New[int64, []int]()}, nil
}

// Run is NewRunner followed by Runner.Run.
func Run(ctx context.Context, cfg Config, log logrus.FieldLogger) ([]Measurement, error) {
	r, err := NewRunner(cfg, log)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

func (u *Runner) jobs() ([]job, error) {
	kinds, err := u.cfg.Kinds()
	if err != nil {
		return nil, err
	}
	var js []job
	for _, size := range u.cfg.Sizes() {
		for it := range u.cfg.Test.Iterations {
			for _, k := range kinds {
				js = append(js, job{subject: k.String(), kind: k, size: size, iteration: it})
			}
			if u.cfg.Trees.Baselines {
				for _, b := range Baselines {
					js = append(js, job{subject: b, baseline: true, size: size, iteration: it})
				}
			}
		}
	}
	return js, nil
}

// dataset returns the key sequence of a (size, iteration) pair, generating
// it on first use.
func (u *Runner) dataset(size, iteration int) []int {
	t := u.cfg.Test
	seed := Seed(t.Seed, t.Order, size, iteration)
	if data, ok := u.datasets.Get(seed); ok {
		return data
	}
	data := Generate(size, t.Order, t.MinKey, t.MaxKey, seed)
	if t.Unique {
		data, _ = Unique(data, Trees.AVL)
	}
	data, _ = u.datasets.GetOrInsert(seed, data)
	return data
}

func (u *Runner) subject(j job) (Subject, error) {
	if j.baseline {
		return NewBaseline(j.subject), nil
	}
	seed := Seed(u.cfg.Test.Seed, u.cfg.Test.Order, j.size, j.iteration)
	t, err := engine.New[int](j.kind, engine.WithPriorities(Treap.Uniform(rand.New(rand.NewSource(seed)))))
	if err != nil {
		return nil, err
	}
	return engineSubject{Trees.Timed(t)}, nil
}

// Run every job and return the measurements ordered by size, iteration and
// subject, with the insert, search and delete phases of a job in a row.
// Jobs run on up to Test.Parallel goroutines, each on its own subject. The
// first error, or the cancellation of ctx, stops the run.
func (u *Runner) Run(ctx context.Context) ([]Measurement, error) {
	js, err := u.jobs()
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{
		"jobs":     len(js),
		"order":    u.cfg.Test.Order.String(),
		"parallel": u.cfg.Test.Parallel,
	}).Info("starting benchmark")

	var bar *progressbar.ProgressBar
	if u.cfg.Test.Progress {
		bar = progressbar.NewOptions(len(js),
			progressbar.OptionSetWriter(u.Progress),
			progressbar.OptionSetDescription("measuring"),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	results := haxmap.New[int, []Measurement](uintptr(len(js)))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.cfg.Test.Parallel)
	for i, j := range js {
		g.Go(func() error {
			ms, err := u.measure(gctx, j)
			if err != nil {
				return err
			}
			results.Set(i, ms)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		u.log.WithError(err).Error("benchmark aborted")
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	out := make([]Measurement, 0, 3*len(js))
	for i := range js {
		ms, _ := results.Get(i)
		out = append(out, ms...)
	}
	u.log.WithField("measurements", len(out)).Info("benchmark finished")
	return out, nil
}

// sample accumulates the durations of one phase.
type sample struct {
	total, min, max time.Duration
	n, failed       int
}

func (s *sample) add(d time.Duration, err error) {
	if s.n == 0 || d < s.min {
		s.min = d
	}
	s.max = max(s.max, d)
	s.total += d
	s.n++
	if err != nil {
		s.failed++
	}
}

// measure the insert, search and delete phases of j.
func (u *Runner) measure(ctx context.Context, j job) ([]Measurement, error) {
	s, err := u.subject(j)
	if err != nil {
		return nil, err
	}
	data := u.dataset(j.size, j.iteration)
	phases := []struct {
		op string
		f  func(int) (time.Duration, error)
	}{{OpInsert, s.TimePut}, {OpSearch, s.TimeFind}, {OpDelete, s.TimeDelete}}

	ms := make([]Measurement, 0, len(phases))
	for _, p := range phases {
		if err = ctx.Err(); err != nil {
			return nil, merry.Prependf(err, "measuring %s", j.subject)
		}
		before := s.Stats()
		var sm sample
		for _, v := range data {
			sm.add(p.f(v))
		}
		m := Measurement{
			Engine:    s.Name(),
			Operation: p.op,
			Size:      j.size,
			Keys:      len(data),
			Order:     u.cfg.Test.Order,
			Iteration: j.iteration,
			Total:     sm.total,
			Min:       sm.min,
			Max:       sm.max,
			Height:    s.Height(),
			Nodes:     s.NodeCount(),
			Failed:    sm.failed,
			Stats:     s.Stats().Sub(before),
		}
		if sm.n > 0 {
			m.Avg = sm.total / time.Duration(sm.n)
		}
		ms = append(ms, m)
	}
	u.log.WithFields(logrus.Fields{
		"engine":    j.subject,
		"size":      j.size,
		"iteration": j.iteration,
	}).Debug("measured")
	return ms, nil
}
