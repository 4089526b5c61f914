// Package inference provides ONNX Runtime integration for UI element
// detection models.
package inference

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	// Tensor names of an ultralytics YOLO export.
	inputName  = "images"
	outputName = "output0"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
	ortLibPath string
)

// SetLibraryPath sets the onnxruntime shared library location. It only has
// an effect before the first session is created.
func SetLibraryPath(path string) {
	ortLibPath = path
}

// initORT initializes ONNX Runtime environment once.
func initORT() error {
	ortEnvOnce.Do(func() {
		if ortLibPath != "" {
			ort.SetSharedLibraryPath(ortLibPath)
		}
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Session wraps an ONNX Runtime session for detector inference.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(modelPath string) (*Session, error) {
	// Check file exists
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }() // Cleanup error doesn't affect success

	// One session serves one request at a time.
	if err := options.SetIntraOpNumThreads(1); err != nil {
		return nil, fmt.Errorf("setting intra-op threads: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{outputName},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs the model on a planar RGB image of size x size pixels and
// returns the decoded detection rows.
func (s *Session) Infer(ctx context.Context, pixels []float32, size int) ([]Detection, error) {
	// Check context before expensive operation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if want := 3 * size * size; len(pixels) != want {
		return nil, fmt.Errorf("input has %d values, want %d", len(pixels), want)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("session is closed")
	}

	input, err := ort.NewTensor(ort.NewShape(1, 3, int64(size), int64(size)), pixels)
	if err != nil {
		return nil, fmt.Errorf("creating %s tensor: %w", inputName, err)
	}
	defer func() { _ = input.Destroy() }()

	// nil entries are allocated by Run
	outputs := []ort.Value{nil}

	if err := s.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}

	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	tensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}

	return DecodeRows(tensor.GetData(), tensor.GetShape())
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
