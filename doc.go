// Package uidet detects UI elements (buttons, inputs, radios, dropdowns) in
// screenshots using YOLO ONNX models.
//
// # Quick Start
//
//	det, err := uidet.New("models/best.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer det.Close()
//
//	boxes, err := det.DetectFile(ctx, "screenshot.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, b := range boxes {
//	    fmt.Printf("%s %v\n", b.Tag, b.Box)
//	}
//
// # Model Files
//
// The detector expects an ultralytics YOLO model exported end to end, so the
// graph already applies non-maximum suppression:
//
//	yolo export model=best.pt format=onnx nms=True
//
// Its output0 tensor has shape [1, N, 6] with rows x1, y1, x2, y2, score, class
// in letterboxed input coordinates.
//
// # Thread Safety
//
// Detector is safe for concurrent use. By default it holds one ONNX session,
// so concurrent calls run one at a time; see WithPoolSize.
package uidet
