package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/jamesainslie/go-uidet/internal/bench"
)

func main() {
	var (
		groundTruth = flag.String("ground-truth", "", "Folder containing ground truth JSONs (required)")
		predictions = flag.String("predictions", "", "Folder containing predicted JSONs (required)")
		sweepMin    = flag.Float64("min", 0.5, "Sweep minimum IoU threshold")
		sweepMax    = flag.Float64("max", 1.0, "Sweep maximum IoU threshold (exclusive)")
		sweepStep   = flag.Float64("step", 0.05, "Sweep step size")
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
	images, missing, err := bench.LoadCorpus(ctx, *groundTruth, *predictions, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d images (%d without predictions)\n\n", len(images), len(missing))

	thresholds := bench.SweepThresholds(*sweepMin, *sweepMax, *sweepStep)
	if len(thresholds) == 0 {
		fmt.Fprintln(os.Stderr, "error: empty threshold range")
		os.Exit(1)
	}
	results := bench.Sweep(images, cfg, thresholds)

	fmt.Println("IoU Threshold Sweep (pooled over tags)")
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s\n", "IoU", "Correct", "Prec", "Rec", "F1")

	// Print sorted by threshold for readability
	for _, t := range thresholds {
		for _, r := range results {
			if r.Threshold == t {
				fmt.Printf("%-8.2f %-8d %-8.3f %-8.3f %-8.3f\n",
					r.Threshold, r.Metrics.TruePositives, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	best := results[0]
	fmt.Printf("Best: %.2f (F1: %.3f)\n", best.Threshold, best.Metrics.F1)
}
