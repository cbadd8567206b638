package capsearch_test

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/katalvlaran/symcap/capsearch"
	"github.com/katalvlaran/symcap/polytope"
	"github.com/katalvlaran/symcap/reebgraph"
)

// ExampleSearch computes the EHZ capacity of the unit 4-cube with progress
// logging on stderr.
func ExampleSearch() {
	p, err := polytope.Build(polytope.Hypercube(1))
	if err != nil {
		panic(err)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}))
	g, err := reebgraph.NewRidgeGraph(p, reebgraph.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	res, err := capsearch.Search(g, capsearch.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	fmt.Printf("capacity: %.2f over %d ridges\n", res.Capacity, len(res.Cycle))
	// Output: capacity: 4.00 over 4 ridges
}

// ExampleConfig_Options drives a search from a file-style configuration.
func ExampleConfig_Options() {
	p, err := polytope.Build(polytope.BoxProduct(1, 1, 2, 2))
	if err != nil {
		panic(err)
	}
	g, err := reebgraph.NewRidgeGraph(p)
	if err != nil {
		panic(err)
	}

	cfg := capsearch.Config{Workers: 2, ActionBound: 100}
	res, err := capsearch.Search(g, cfg.Options()...)
	if err != nil {
		panic(err)
	}
	fmt.Printf("capacity: %.2f\n", res.Capacity)
	// Output: capacity: 4.00
}
