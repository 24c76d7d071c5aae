package Bench

import (
	"math"
	"os"
	"slices"

	"github.com/ansel1/merry"
	"github.com/g-m-twostay/treebench/Trees"
	"gopkg.in/yaml.v3"
)

// ErrBadConfig is the root of every validation error returned by
// Config.Validate.
var ErrBadConfig = merry.New("invalid benchmark configuration")

type TestConfig struct {
	MinSize    int       `yaml:"min_data_size"`
	MaxSize    int       `yaml:"max_data_size"`
	Step       int       `yaml:"step_size"`
	Iterations int       `yaml:"iterations_per_step"`
	Order      DataOrder `yaml:"data_order"`
	MinKey     int       `yaml:"min_key"`
	MaxKey     int       `yaml:"max_key"`
	// Seed is the base seed every generated sequence is derived from.
	Seed int64 `yaml:"seed"`
	// Unique drops repeated keys from each generated sequence.
	Unique   bool `yaml:"unique_keys"`
	Progress bool `yaml:"enable_progress_bar"`
	// Parallel is the number of engines measured at the same time, each on
	// its own tree.
	Parallel int `yaml:"parallel"`
}

type OutputConfig struct {
	Directory string `yaml:"output_directory"`
	Separator string `yaml:"csv_separator"`
	// Formats lists the exporters to run: csv, json, markdown.
	Formats []string `yaml:"formats"`
	Chart   bool     `yaml:"chart"`
}

type TreeConfig struct {
	// Kinds are engine names as accepted by Trees.ParseKind.
	Kinds     []string `yaml:"kinds"`
	Baselines bool     `yaml:"baselines"`
}

// Config of a benchmark run.
type Config struct {
	Test   TestConfig   `yaml:"test"`
	Output OutputConfig `yaml:"output"`
	Trees  TreeConfig   `yaml:"trees"`
}

var formats = []string{"csv", "json", "markdown"}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Test: TestConfig{
			MinSize:    100,
			MaxSize:    10000,
			Step:       100,
			Iterations: 10,
			Order:      Random,
			MinKey:     1,
			MaxKey:     1000000,
			Seed:       1,
			Progress:   true,
			Parallel:   4,
		},
		Output: OutputConfig{
			Directory: "results",
			Separator: ";",
			Formats:   []string{"csv"},
			Chart:     true,
		},
		Trees: TreeConfig{
			Kinds: []string{"avl", "aa", "treap", "23"},
		},
	}
}

// Load reads a YAML configuration from path. Fields missing from the file
// keep their Default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, merry.Prependf(err, "reading config %s", path)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, merry.Prependf(err, "parsing config %s", path)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path as YAML.
func (u Config) Save(path string) error {
	data, err := yaml.Marshal(&u)
	if err != nil {
		return merry.Wrap(err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return merry.Prependf(err, "writing config %s", path)
	}
	return nil
}

// Kinds resolves the configured engine names.
func (u Config) Kinds() ([]Trees.Kind, error) {
	ks := make([]Trees.Kind, 0, len(u.Trees.Kinds))
	for _, n := range u.Trees.Kinds {
		k, err := Trees.ParseKind(n)
		if err != nil {
			return nil, merry.WithValue(merry.Prepend(ErrBadConfig, err.Error()), "field", "trees.kinds")
		}
		if !slices.Contains(ks, k) {
			ks = append(ks, k)
		}
	}
	return ks, nil
}

// Sizes lists the data sizes from MinSize to MaxSize in steps of Step.
func (u Config) Sizes() []int {
	var s []int
	for n := u.Test.MinSize; n <= u.Test.MaxSize; n += u.Test.Step {
		s = append(s, n)
	}
	return s
}

// MaxKeySpan bounds MaxKey-MinKey so that drawing and spreading keys can't
// overflow.
const MaxKeySpan = math.MaxInt32

func invalid(field, format string, args ...interface{}) error {
	return merry.WithValue(merry.Prependf(ErrBadConfig, format, args...), "field", field)
}

// Validate checks the ranges of every field. The returned error carries the
// offending field under the "field" key, see Field.
func (u Config) Validate() error {
	t := u.Test
	switch {
	case t.MinSize < 1:
		return invalid("test.min_data_size", "min_data_size %d must be positive", t.MinSize)
	case t.MaxSize < t.MinSize:
		return invalid("test.max_data_size", "max_data_size %d is below min_data_size %d", t.MaxSize, t.MinSize)
	case t.Step < 1:
		return invalid("test.step_size", "step_size %d must be positive", t.Step)
	case t.Iterations < 1:
		return invalid("test.iterations_per_step", "iterations_per_step %d must be positive", t.Iterations)
	case t.MaxKey < t.MinKey:
		return invalid("test.max_key", "max_key %d is below min_key %d", t.MaxKey, t.MinKey)
	case uint(t.MaxKey-t.MinKey) >= MaxKeySpan:
		return invalid("test.max_key", "key range [%d, %d] is wider than %d", t.MinKey, t.MaxKey, MaxKeySpan)
	case t.Parallel < 1:
		return invalid("test.parallel", "parallel %d must be positive", t.Parallel)
	case len(u.Output.Separator) == 0:
		return invalid("output.csv_separator", "csv_separator is empty")
	}
	for _, f := range u.Output.Formats {
		if !slices.Contains(formats, f) {
			return invalid("output.formats", "unknown format %q", f)
		}
	}
	if len(u.Trees.Kinds) == 0 && !u.Trees.Baselines {
		return invalid("trees.kinds", "nothing to measure")
	}
	_, err := u.Kinds()
	return err
}

// Field returns the configuration field a validation error is about.
func Field(err error) string {
	f, _ := merry.Value(err, "field").(string)
	return f
}
