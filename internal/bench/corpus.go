// Package bench scores detector predictions against ground-truth box
// annotations.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jamesainslie/go-uidet/box"
)

// Image is one annotated image with its predictions.
type Image struct {
	Name        string // file name shared by both directories
	GroundTruth box.Collection
	Predictions box.Collection
}

// Result is the outcome of scoring a corpus.
type Result struct {
	Stats   *Stats
	Files   int      // images scored
	Missing []string // ground-truth files without a prediction file
}

// walkCorpus visits every ground-truth file in gtDir, in name order, that has
// a same-named file in predDir. Files without a prediction are logged and
// returned in missing; they are never passed to fn.
func walkCorpus(ctx context.Context, gtDir, predDir string, cfg Config, logger *slog.Logger, fn func(Image) error) (files int, missing []string, err error) {
	// os.ReadDir sorts by file name.
	entries, err := os.ReadDir(gtDir)
	if err != nil {
		return 0, nil, fmt.Errorf("read dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != cfg.Ext {
			continue
		}

		if err := ctx.Err(); err != nil {
			return files, missing, err
		}

		name := entry.Name()
		predPath := filepath.Join(predDir, name)
		if _, err := os.Stat(predPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Warn("Missing prediction", "file", name)
				missing = append(missing, name)
				continue
			}
			return files, missing, fmt.Errorf("checking %s: %w", predPath, err)
		}

		gt, err := box.ReadFile(filepath.Join(gtDir, name))
		if err != nil {
			return files, missing, fmt.Errorf("loading ground truth %s: %w", name, err)
		}
		pred, err := box.ReadFile(predPath)
		if err != nil {
			return files, missing, fmt.Errorf("loading prediction %s: %w", name, err)
		}

		if err := fn(Image{Name: name, GroundTruth: gt, Predictions: pred}); err != nil {
			return files, missing, err
		}
		files++
		logger.Debug("scored image", "file", name, "ground_truth", len(gt), "predictions", len(pred))
	}

	return files, missing, nil
}

// EvaluateCorpus scores every ground-truth file in gtDir against the
// same-named prediction file in predDir. Files are read and scored one at a
// time. A missing prediction file is skipped; any unreadable or malformed
// file aborts the run.
func EvaluateCorpus(ctx context.Context, gtDir, predDir string, cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	stats := NewStats(cfg.Tags)
	files, missing, err := walkCorpus(ctx, gtDir, predDir, cfg, logger, func(img Image) error {
		ScoreImage(stats, img.GroundTruth, img.Predictions, cfg.IoUThreshold)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{Stats: stats, Files: files, Missing: missing}, nil
}

// LoadCorpus reads every paired image into memory so it can be scored more
// than once.
func LoadCorpus(ctx context.Context, gtDir, predDir string, cfg Config, logger *slog.Logger) ([]Image, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var images []Image
	_, missing, err := walkCorpus(ctx, gtDir, predDir, cfg, logger, func(img Image) error {
		images = append(images, img)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return images, missing, nil
}

// Score accumulates stats over already loaded images.
func Score(images []Image, cfg Config) *Stats {
	stats := NewStats(cfg.Tags)
	for _, img := range images {
		ScoreImage(stats, img.GroundTruth, img.Predictions, cfg.IoUThreshold)
	}
	return stats
}
