package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"boundary-go/internal/logging"
	"boundary-go/pkg/synthetic"
)

func main() {
	n := flag.Int("n", 50, "points per class")
	std := flag.Float64("std", 0.3, "standard deviation of every cluster")
	seed := flag.Uint64("seed", 1, "random seed")
	output := flag.String("output", "blobs.txt", "output file")
	flag.Parse()

	logger, err := logging.New("info", "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()
	log := logger.Sugar()

	X, y := synthetic.NewGenerator(*seed).Blobs(synthetic.IrisLikeCenters(), *std, *n)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalw("create output", "error", err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# synthetic sepal length/width clusters")
	fmt.Fprintln(w, "sepal_length\tsepal_width\tlabel")
	for i, label := range y {
		fmt.Fprintf(w, "%.4f\t%.4f\t%d\n", X.At(i, 0), X.At(i, 1), label)
	}
	if err := w.Flush(); err != nil {
		log.Fatalw("write output", "error", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalw("close output", "error", err)
	}
	log.Infow("dataset written", "output", *output, "samples", len(y))
}
