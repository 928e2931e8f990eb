package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Repeats)
		assert.Len(t, cfg.Fanout, 6)
	})

	t.Run("yaml overlays the defaults", func(t *testing.T) {
		path := writeFile(t, "bench.yaml", `
repeats: 2
propagate:
  widths: [3]
  heights: [4]
  iterations: 7
`)
		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Repeats)
		assert.Equal(t, propagateConfig{Widths: []int{3}, Heights: []int{4}, Iterations: 7}, cfg.Propagate)
		assert.Len(t, cfg.Fanout, 6)
	})

	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, "bench.toml", `
repeats = 1

[[fanout]]
name = "tiny"
width = 3
layers = 3
sources = 2
static_fraction = 1.0
read_fraction = 1.0
iterations = 10
`)
		cfg, err := loadConfig(path)
		require.NoError(t, err)
		require.Len(t, cfg.Fanout, 1)
		assert.Equal(t, "tiny", cfg.Fanout[0].Name)
		assert.Equal(t, 1.0, cfg.Fanout[0].StaticFraction)
	})

	t.Run("bad input", func(t *testing.T) {
		_, err := loadConfig(writeFile(t, "bench.json", `{}`))
		assert.ErrorContains(t, err, "unsupported")

		_, err = loadConfig(writeFile(t, "bench.yaml", "repeats: -1\n"))
		assert.ErrorContains(t, err, "repeats")

		_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestBenchmarks(t *testing.T) {
	t.Run("propagate reaches every chain", func(t *testing.T) {
		var out bytes.Buffer
		err := runPropagate(&out, propagateConfig{Widths: []int{2}, Heights: []int{3}, Iterations: 5})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "propagate: 2 * 3")
	})

	t.Run("fanout graph sums its leaves", func(t *testing.T) {
		var counter int64
		g := makeGraph(fanoutConfig{Width: 3, Layers: 3, Sources: 2, StaticFraction: 1}, &counter)
		sum, err := g.run(1, 1)
		require.NoError(t, err)
		// rows are [0 1 2] -> [1 3 2] -> [4 5 3]
		assert.Equal(t, 12, sum)
		assert.Equal(t, int64(6), counter)
	})

	t.Run("fanout table", func(t *testing.T) {
		var out bytes.Buffer
		cfgs := []fanoutConfig{{Name: "tiny", Width: 4, Layers: 3, Sources: 2, StaticFraction: 0.5, ReadFraction: 0.5, Iterations: 20}}
		require.NoError(t, runFanout(&out, cfgs, 1))
		assert.Contains(t, out.String(), "tiny")
	})
}
