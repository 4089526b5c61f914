package inference

import (
	"errors"
	"fmt"
)

// rowLen is the width of one end-to-end detection row:
// x1, y1, x2, y2, score, class.
const rowLen = 6

// segRowLen is an end-to-end segmentation row: a detection row followed by
// 32 mask coefficients.
const segRowLen = rowLen + 32

// ErrRawHead indicates model output that is not end-to-end detections,
// typically a YOLO export made without nms=True.
var ErrRawHead = errors.New("inference: output is not end-to-end detections (export with nms=True)")

// Detection is one row of model output in input tensor coordinates.
type Detection struct {
	X1, Y1, X2, Y2 float32
	Score          float32
	Class          int
}

// DecodeRows converts a [1, N, 6] output tensor into detections. [1, N, 38]
// segmentation rows are accepted and their mask columns ignored. Rows are
// returned in model order with no filtering; the model has already applied
// non-maximum suppression.
func DecodeRows(data []float32, shape []int64) ([]Detection, error) {
	if len(shape) != 3 || shape[0] != 1 {
		return nil, fmt.Errorf("unexpected output shape %v, want [1 N %d]", shape, rowLen)
	}
	if shape[2] != rowLen && shape[2] != segRowLen {
		return nil, fmt.Errorf("%w: shape %v, want [1 N %d]", ErrRawHead, shape, rowLen)
	}

	n := int(shape[1])
	width := int(shape[2])
	if len(data) < n*width {
		return nil, fmt.Errorf("output has %d values, shape %v needs %d", len(data), shape, n*width)
	}

	dets := make([]Detection, 0, n)
	for i := 0; i < n; i++ {
		row := data[i*width : i*width+rowLen]
		dets = append(dets, Detection{
			X1:    row[0],
			Y1:    row[1],
			X2:    row[2],
			Y2:    row[3],
			Score: row[4],
			Class: int(row[5]),
		})
	}
	return dets, nil
}
