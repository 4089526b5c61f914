package inference

import (
	"errors"
	"testing"
)

func TestDecodeRows(t *testing.T) {
	data := []float32{
		10, 20, 30, 40, 0.9, 0,
		1, 2, 3, 4, 0.1, 6,
	}

	dets, err := DecodeRows(data, []int64{1, 2, 6})
	if err != nil {
		t.Fatalf("DecodeRows() error = %v", err)
	}

	want := []Detection{
		{X1: 10, Y1: 20, X2: 30, Y2: 40, Score: 0.9, Class: 0},
		{X1: 1, Y1: 2, X2: 3, Y2: 4, Score: 0.1, Class: 6},
	}
	if len(dets) != len(want) {
		t.Fatalf("got %d detections, want %d", len(dets), len(want))
	}
	for i := range want {
		if dets[i] != want[i] {
			t.Errorf("det[%d] = %+v, want %+v", i, dets[i], want[i])
		}
	}
}

func TestDecodeRows_WideRows(t *testing.T) {
	// Segmentation rows carry 32 mask coefficients after the detection.
	data := make([]float32, segRowLen)
	copy(data, []float32{5, 5, 15, 15, 0.5, 2})
	for i := rowLen; i < segRowLen; i++ {
		data[i] = 99
	}

	dets, err := DecodeRows(data, []int64{1, 1, segRowLen})
	if err != nil {
		t.Fatalf("DecodeRows() error = %v", err)
	}
	if len(dets) != 1 || dets[0].Class != 2 || dets[0].X2 != 15 {
		t.Errorf("DecodeRows() = %+v", dets)
	}
}

func TestDecodeRows_Empty(t *testing.T) {
	dets, err := DecodeRows(nil, []int64{1, 0, 6})
	if err != nil {
		t.Fatalf("DecodeRows() error = %v", err)
	}
	if len(dets) != 0 {
		t.Errorf("got %d detections, want 0", len(dets))
	}
}

func TestDecodeRows_BadShape(t *testing.T) {
	tests := []struct {
		name  string
		data  []float32
		shape []int64
	}{
		{name: "two dimensions", data: make([]float32, 12), shape: []int64{2, 6}},
		{name: "too few columns", data: make([]float32, 4), shape: []int64{1, 1, 4}},
		{name: "batch of two", data: make([]float32, 12), shape: []int64{2, 1, 6}},
		{name: "short data", data: make([]float32, 6), shape: []int64{1, 2, 6}},
		{name: "eight columns", data: make([]float32, 8), shape: []int64{1, 1, 8}},
		{name: "raw head", data: make([]float32, 14*8400), shape: []int64{1, 14, 8400}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeRows(tt.data, tt.shape); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeRows_RawHead(t *testing.T) {
	// Ultralytics export without NMS: [1, 4+nc, anchors].
	_, err := DecodeRows(make([]float32, 14*8400), []int64{1, 14, 8400})
	if !errors.Is(err, ErrRawHead) {
		t.Errorf("expected ErrRawHead, got: %v", err)
	}
}
