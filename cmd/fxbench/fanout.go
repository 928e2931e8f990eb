package main

import (
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/delaneyj/fxprops/binding"
	"github.com/delaneyj/fxprops/observe"
	"github.com/delaneyj/fxprops/property"
)

type graph struct {
	sources []*property.Property[int]
	layers  [][]*binding.Binding[int]
}

// makeGraph builds cfg.Layers-1 rows of bindings over cfg.Width sources.
// Every node depends on cfg.Sources nodes of the row above. Dynamic nodes
// skip one of their inputs depending on the value of the first.
func makeGraph(cfg fanoutConfig, counter *int64) *graph {
	g := &graph{sources: make([]*property.Property[int], cfg.Width)}
	prev := make([]observe.ObservableValue[int], cfg.Width)
	for i := range g.sources {
		g.sources[i] = property.New(i)
		prev[i] = g.sources[i]
	}

	random := rand.New(rand.NewSource(0))
	for l := 0; l < cfg.Layers-1; l++ {
		row := make([]*binding.Binding[int], len(prev))
		for i := range prev {
			inputs := make([]observe.ObservableValue[int], 0, cfg.Sources)
			deps := make([]observe.Observable, 0, cfg.Sources)
			for s := 0; s < cfg.Sources; s++ {
				in := prev[(i+s)%len(prev)]
				inputs = append(inputs, in)
				deps = append(deps, in)
			}
			if random.Float64() < cfg.StaticFraction {
				row[i] = binding.New(staticNode(inputs, counter), deps...)
			} else {
				row[i] = binding.New(dynamicNode(inputs, counter), deps...)
			}
		}
		g.layers = append(g.layers, row)
		prev = make([]observe.ObservableValue[int], len(row))
		for i, b := range row {
			prev[i] = b
		}
	}
	return g
}

func staticNode(inputs []observe.ObservableValue[int], counter *int64) func() (int, error) {
	return func() (int, error) {
		*counter++
		sum := 0
		for _, in := range inputs {
			v, err := in.Value()
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil
	}
}

func dynamicNode(inputs []observe.ObservableValue[int], counter *int64) func() (int, error) {
	first, tail := inputs[0], inputs[1:]
	return func() (int, error) {
		*counter++
		sum, err := first.Value()
		if err != nil || len(tail) == 0 {
			return sum, err
		}
		drop := sum&1 > 0
		dropAt := sum % len(tail)
		for i, in := range tail {
			if drop && i == dropAt {
				continue
			}
			v, err := in.Value()
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum, nil
	}
}

// run writes one source per iteration and reads a fixed random subset of the
// leaves, returning the sum of those leaves at the end.
func (g *graph) run(iterations int, readFraction float64) (int, error) {
	random := rand.New(rand.NewSource(0))
	leaves := g.layers[len(g.layers)-1]
	skip := int(math.Round(float64(len(leaves)) * (1 - readFraction)))
	read := removeRandom(leaves, skip, random)

	for i := 0; i < iterations; i++ {
		at := i % len(g.sources)
		if err := g.sources[at].Set(i + at); err != nil {
			return 0, err
		}
		for _, leaf := range read {
			if _, err := leaf.Value(); err != nil {
				return 0, err
			}
		}
	}

	sum := 0
	for _, leaf := range read {
		sum += leaf.Get()
	}
	return sum, nil
}

func removeRandom[T any](src []T, n int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < n && len(out) > 0; i++ {
		at := random.Intn(len(out))
		out[at] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}

func title(cfg fanoutConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d %d sources", cfg.Width, cfg.Layers, cfg.Sources)
	if cfg.StaticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.ReadFraction < 1 {
		fmt.Fprintf(&sb, " read %0.2f%%", 100*cfg.ReadFraction)
	}
	return sb.String()
}

func runFanout(out io.Writer, cfgs []fanoutConfig, repeats int) error {
	tbl := tablewriter.NewWriter(out)
	tbl.SetHeader([]string{"size", "sources", "read%", "static%", "iterations", "test", "time", "computes", "updates/ms", "title"})

	for _, cfg := range cfgs {
		log.Printf("Running '%s'", cfg.Name)
		var counter int64
		g := makeGraph(cfg, &counter)

		// warm up
		if _, err := g.run(cfg.Iterations, cfg.ReadFraction); err != nil {
			return fmt.Errorf("%s: %w", cfg.Name, err)
		}

		best := time.Duration(math.MaxInt64)
		var bestCount int64
		for i := 0; i < repeats; i++ {
			counter = 0
			start := time.Now()
			if _, err := g.run(cfg.Iterations, cfg.ReadFraction); err != nil {
				return fmt.Errorf("%s: %w", cfg.Name, err)
			}
			if d := time.Since(start); d < best {
				best, bestCount = d, counter
			}
		}

		rate := float64(bestCount) / (float64(best) / float64(time.Millisecond))
		tbl.Append([]string{
			fmt.Sprintf("%dx%d", cfg.Width, cfg.Layers),
			fmt.Sprint(cfg.Sources),
			fmt.Sprint(cfg.ReadFraction),
			fmt.Sprint(cfg.StaticFraction),
			humanize.Comma(int64(cfg.Iterations)),
			cfg.Name,
			fmt.Sprint(best),
			humanize.Comma(bestCount),
			humanize.Comma(int64(rate)),
			title(cfg),
		})
	}
	tbl.Render()
	return nil
}
