package uidet

import "log/slog"

// DefaultClassMap maps class ids of the reference UI model to tags. Classes
// missing from the map (checkbox, icon, label, slider, switch, table) are
// dropped from the output.
var DefaultClassMap = map[int]string{
	0: "button",
	2: "dropdown",
	4: "input",
	6: "radio",
}

// Option configures a Detector.
type Option func(*config)

type config struct {
	confidence  float32
	inputSize   int
	poolSize    int
	classes     map[int]string
	libraryPath string
	logger      *slog.Logger
}

func defaultConfig() config {
	classes := make(map[int]string, len(DefaultClassMap))
	for id, tag := range DefaultClassMap {
		classes[id] = tag
	}
	return config{
		confidence: 0.25,
		inputSize:  640,
		poolSize:   1,
		classes:    classes,
		logger:     slog.Default(),
	}
}

// WithConfidence sets the minimum detection score (default: 0.25).
func WithConfidence(c float32) Option {
	return func(cfg *config) {
		cfg.confidence = c
	}
}

// WithInputSize sets the square model input size in pixels (default: 640).
func WithInputSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.inputSize = n
		}
	}
}

// WithPoolSize sets the ONNX session pool size (default: 1).
func WithPoolSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.poolSize = n
		}
	}
}

// WithClassMap replaces the class id to tag mapping.
func WithClassMap(m map[int]string) Option {
	return func(cfg *config) {
		if len(m) == 0 {
			return
		}
		cfg.classes = make(map[int]string, len(m))
		for id, tag := range m {
			cfg.classes[id] = tag
		}
	}
}

// WithLibraryPath sets the onnxruntime shared library path.
func WithLibraryPath(path string) Option {
	return func(cfg *config) {
		cfg.libraryPath = path
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
