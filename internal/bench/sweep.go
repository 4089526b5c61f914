package bench

import (
	"math"
	"sort"
)

// SweepResult holds pooled metrics for one IoU threshold.
type SweepResult struct {
	Threshold float64
	Metrics   Metrics
}

// SweepThresholds generates threshold values from min up to, but excluding,
// max with the given step.
func SweepThresholds(min, max, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var thresholds []float64
	for i := 0; ; i++ {
		t := min + float64(i)*step
		if t >= max {
			break
		}
		thresholds = append(thresholds, math.Round(t*1e6)/1e6)
	}
	return thresholds
}

// Sweep scores the loaded images at each threshold and returns results
// sorted by pooled F1, best first. Ties keep threshold order.
func Sweep(images []Image, cfg Config, thresholds []float64) []SweepResult {
	results := make([]SweepResult, 0, len(thresholds))
	for _, threshold := range thresholds {
		cfg.IoUThreshold = threshold
		stats := Score(images, cfg)
		results = append(results, SweepResult{
			Threshold: threshold,
			Metrics:   ComputeMetrics(stats.Total()),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.F1 > results[j].Metrics.F1
	})

	return results
}
