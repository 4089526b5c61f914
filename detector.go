package uidet

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/jamesainslie/go-uidet/box"
	"github.com/jamesainslie/go-uidet/inference"
)

// coordPlaces is the decimal precision of emitted box coordinates.
const coordPlaces = 2

// Detector finds UI elements in images and reports them as tagged boxes.
// It is safe for concurrent use.
type Detector struct {
	pool       *inference.Pool
	inputSize  int
	confidence float32
	classes    map[int]string
	logger     *slog.Logger
}

// New creates a Detector for the ONNX model at modelPath.
func New(modelPath string, opts ...Option) (*Detector, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	if cfg.libraryPath != "" {
		inference.SetLibraryPath(cfg.libraryPath)
	}

	pool, err := inference.NewPool(modelPath, cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	cfg.logger.Debug("detector ready",
		"model", modelPath,
		"pool_size", pool.Size(),
		"input_size", cfg.inputSize,
		"confidence", cfg.confidence,
	)

	return &Detector{
		pool:       pool,
		inputSize:  cfg.inputSize,
		confidence: cfg.confidence,
		classes:    cfg.classes,
		logger:     cfg.logger,
	}, nil
}

// Detect runs the model on img and returns boxes whose class maps to a tag.
// Coordinates are in img pixels, rounded to two decimals. The result is
// never nil.
func (d *Detector) Detect(ctx context.Context, img image.Image) (box.Collection, error) {
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecodeImage)
	}

	input, lb := preprocess(img, d.inputSize)

	dets, err := d.pool.Infer(ctx, input, d.inputSize)
	if err != nil {
		if errors.Is(err, inference.ErrPoolClosed) {
			return nil, ErrClosed
		}
		return nil, err
	}

	out := toCollection(dets, lb, d.confidence, d.classes)
	d.logger.Debug("detected",
		"rows", len(dets),
		"kept", len(out),
		"width", lb.width,
		"height", lb.height,
	)
	return out, nil
}

// DetectFile decodes the image at path and runs Detect on it.
// PNG, JPEG, GIF, BMP and WebP are supported.
func (d *Detector) DetectFile(ctx context.Context, path string) (box.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }() // read-only

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeImage, path, err)
	}

	return d.Detect(ctx, img)
}

// Close releases all resources.
func (d *Detector) Close() error {
	if d.pool != nil {
		return d.pool.Close()
	}
	return nil
}

// toCollection keeps detections at or above confidence whose class is in
// classes, mapped back to source image coordinates.
func toCollection(dets []inference.Detection, lb letterbox, confidence float32, classes map[int]string) box.Collection {
	out := make(box.Collection, 0, len(dets))
	for _, det := range dets {
		if det.Score < confidence {
			continue
		}
		tag, ok := classes[det.Class]
		if !ok {
			continue
		}

		b := lb.unmap(box.Box{
			X1: float64(det.X1),
			Y1: float64(det.Y1),
			X2: float64(det.X2),
			Y2: float64(det.Y2),
		})
		out = append(out, box.Tagged{Box: b.Round(coordPlaces), Tag: tag})
	}
	return out
}
