package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ansel1/merry"
	"github.com/g-m-twostay/treebench/Bench"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	log, _ := test.NewNullLogger()
	cmd := newRootCmd(log)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseKeys(t *testing.T) {
	ks, err := parseKeys(" 3, 1,,2 ")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ks)
	_, err = parseKeys("1,x")
	assert.Error(t, err)
}

func TestTreeCmd(t *testing.T) {
	out, err := execute(t, "tree", "-k", "avl", "-i", "10,20,30,20", "-r", "999", "-s", "30", "-o", "preorder")
	require.NoError(t, err)
	assert.Contains(t, out, "insert 30: ok (inserted) height=2 nodes=3")
	assert.Contains(t, out, "insert 20: failed (key already exists)")
	assert.Contains(t, out, "remove 999: failed (key not found)")
	assert.Contains(t, out, "search 30: ok (found)")
	assert.Contains(t, out, "preorder: [20 10 30]")
	assert.Contains(t, out, "rotations=1")
	assert.Contains(t, out, "20 (h=2, bf=0)")
}

func TestTreeCmd_Treap(t *testing.T) {
	out, err := execute(t, "tree", "-k", "treap", "-i", "10,20,30,40", "--priorities", "5,3,8,1", "-o", "level")
	require.NoError(t, err)
	assert.Contains(t, out, "levelorder: [30 10 40 20]")
	assert.Contains(t, out, "30 (prio=8)")
}

func TestTreeCmd_Errors(t *testing.T) {
	_, err := execute(t, "tree", "-k", "splay")
	assert.Error(t, err)
	_, err = execute(t, "tree", "-o", "zigzag")
	assert.Error(t, err)
	_, err = execute(t, "tree", "-i", "1,a")
	assert.Error(t, err)
	_, err = execute(t, "tree", "--priorities", "5,x", "-k", "treap")
	assert.Error(t, err)
}

func TestCompareCmd(t *testing.T) {
	out, err := execute(t, "compare", "1,2,3,4,5,6,7,7")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "TREE"))
	assert.Regexp(t, `^AVL Tree\s+3\s+7\s`, lines[1])
	assert.Regexp(t, `^AA Tree\s+3\s+7\s`, lines[2])
	assert.Regexp(t, `^2-3 Tree\s+3\s+7\s`, lines[4])
	assert.Regexp(t, `^Treap\s+\d+\s+7\s`, lines[3])
	assert.Regexp(t, `\s1\s*$`, lines[1])
	assert.Regexp(t, `\s1\s*$`, lines[4])
}

func TestTreeCmd_RepeatedFlags(t *testing.T) {
	out, err := execute(t, "tree", "-k", "aa", "-i", "3,1", "-i", "2", "-s", "2", "-s", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "insert 2: ok (inserted) height=2 nodes=3")
	assert.Contains(t, out, "search 9: failed (key not found)")
	assert.Contains(t, out, "inorder: [1 2 3]")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	cfg, err := Bench.Load(path)
	require.NoError(t, err)
	assert.Equal(t, Bench.Default(), cfg)

	_, err = execute(t, "config", "init", path)
	assert.Error(t, err)
	_, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestRunCmd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bench.yaml")
	cfg := Bench.Default()
	cfg.Test.MaxSize = 10000
	cfg.Test.Iterations = 5
	require.NoError(t, cfg.Save(cfgPath))

	out, err := execute(t, "run", "-c", cfgPath, "--min", "20", "--max", "60", "--step", "20", "-n", "1",
		"--kinds", "aa,23", "--order", "descending", "--formats", "csv,json", "-o", dir, "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "insert, mean time per operation")
	assert.Contains(t, out, "AA Tree")

	data, err := os.ReadFile(filepath.Join(dir, "results.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// 3 sizes, 1 iteration, 2 engines, 3 operations.
	assert.Len(t, lines, 1+3*2*3)
	assert.Contains(t, lines[1], ";descending;")
	_, err = os.Stat(filepath.Join(dir, "results.json"))
	assert.NoError(t, err)
}

func TestRunCmd_BadFlags(t *testing.T) {
	_, err := execute(t, "run", "--min", "0", "--no-progress", "-o", t.TempDir())
	assert.True(t, merry.Is(err, Bench.ErrBadConfig))
	_, err = execute(t, "run", "--order", "shuffled")
	assert.Error(t, err)
}
