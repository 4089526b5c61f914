package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	uidet "github.com/jamesainslie/go-uidet"
	"github.com/jamesainslie/go-uidet/box"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

func main() {
	var (
		modelPath  = flag.String("model", "", "Path to ONNX model file (required)")
		imagesDir  = flag.String("images", "", "Directory containing screenshots (required)")
		outDir     = flag.String("out", "", "Directory for prediction JSONs (required)")
		confidence = flag.Float64("conf", 0.25, "Minimum detection score")
		libPath    = flag.String("lib", "", "Path to the onnxruntime shared library")
		verbose    = flag.Bool("v", false, "Log every image")
	)
	flag.Parse()

	if *modelPath == "" || *imagesDir == "" || *outDir == "" {
		fmt.Fprintln(os.Stderr, "error: -model, -images and -out are required")
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	det, err := uidet.New(*modelPath,
		uidet.WithConfidence(float32(*confidence)),
		uidet.WithLibraryPath(*libPath),
		uidet.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating detector: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = det.Close() }() // Cleanup error ignored in CLI

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n, err := predictDir(ctx, det, *imagesDir, *outDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d prediction files to %s\n", n, *outDir)
}

func predictDir(ctx context.Context, det *uidet.Detector, imagesDir, outDir string, logger *slog.Logger) (int, error) {
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return 0, fmt.Errorf("read dir: %w", err)
	}

	written := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExts[ext] {
			continue
		}

		boxes, err := det.DetectFile(ctx, filepath.Join(imagesDir, entry.Name()))
		if err != nil {
			return written, fmt.Errorf("detecting %s: %w", entry.Name(), err)
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if err := box.WriteFile(filepath.Join(outDir, stem+".json"), boxes); err != nil {
			return written, fmt.Errorf("writing %s: %w", stem, err)
		}
		written++
		logger.Debug("predicted", "image", entry.Name(), "boxes", len(boxes))
	}
	return written, nil
}
