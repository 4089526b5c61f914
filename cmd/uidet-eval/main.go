package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jamesainslie/go-uidet/internal/bench"
)

func main() {
	var (
		groundTruth = flag.String("ground-truth", "", "Folder containing ground truth JSONs (required)")
		predictions = flag.String("predictions", "", "Folder containing predicted JSONs (required)")
	)
	flag.Parse()

	if *groundTruth == "" || *predictions == "" {
		fmt.Fprintln(os.Stderr, "error: --ground-truth and --predictions are required")
		flag.Usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := bench.DefaultConfig()
	res, err := bench.EvaluateCorpus(ctx, *groundTruth, *predictions, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating corpus: %v\n", err)
		os.Exit(1)
	}

	if err := bench.WriteReport(os.Stdout, res.Stats, cfg.IoUThreshold); err != nil {
		fmt.Fprintf(os.Stderr, "error writing report: %v\n", err)
		os.Exit(1)
	}
}
