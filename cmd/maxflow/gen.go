package main

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/wyfcoding/maxflow/graphio"
)

func runGen(_ context.Context, args []string, _ io.Reader, stdout io.Writer) error {
	fs := pflag.NewFlagSet("gen", pflag.ContinueOnError)
	nodes := fs.IntP("nodes", "n", 1000, "node count")
	edges := fs.IntP("edges", "e", 5000, "edge count")
	maxCap := fs.Int64("max-cap", 100, "maximum edge capacity")
	seed := fs.Uint64("seed", 0, "random seed; 0 picks one from the clock")
	output := fs.StringP("output", "o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	in := graphio.Random(rand.New(rand.NewPCG(s, s>>1|1)), *nodes, *edges, *maxCap)

	w := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return graphio.Write(w, in)
}
