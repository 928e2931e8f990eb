package main

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/delaneyj/fxprops/binding"
	"github.com/delaneyj/fxprops/observe"
	"github.com/delaneyj/fxprops/property"
)

func addOne(v int) (int, error) {
	return v + 1, nil
}

// buildChains hangs w chains of h bindings off src, each ending in a change
// listener so every write is pulled through the whole chain.
func buildChains(src *property.Property[int], w, h int, seen *int) []observe.ObservableValue[int] {
	effect := observe.OnChanged(func(observe.ObservableValue[int], int, int) error {
		*seen++
		return nil
	})
	ends := make([]observe.ObservableValue[int], 0, w)
	for i := 0; i < w; i++ {
		var last observe.ObservableValue[int] = src
		for j := 0; j < h; j++ {
			last = binding.Computed1(last, addOne)
		}
		last.AddChangeListener(effect)
		ends = append(ends, last)
	}
	return ends
}

func runPropagate(out io.Writer, cfg propagateConfig) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Properties & Bindings")
	tbl.SetOutputMirror(out)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range cfg.Widths {
		for _, h := range cfg.Heights {
			tach := tachymeter.New(&tachymeter.Config{Size: cfg.Iterations})

			seen := 0
			src := property.New(1)
			ends := buildChains(src, w, h, &seen)

			for i := 0; i < cfg.Iterations; i++ {
				start := time.Now()
				if err := src.Set(src.Get() + 1); err != nil {
					return err
				}
				tach.AddTime(time.Since(start))
			}
			runtime.KeepAlive(ends)

			if want := w * cfg.Iterations; seen != want {
				return fmt.Errorf("propagate %d * %d: %d effects ran, want %d", w, h, seen, want)
			}

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("propagate: %d * %d", w, h),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			})
		}
	}

	tbl.Render()
	return nil
}
