package bench

import "github.com/jamesainslie/go-uidet/box"

// Outcome is the result of matching one tag within one image.
type Outcome struct {
	Matched     int // true positives
	GroundTruth int
	Predicted   int
}

// Match counts how many ground-truth boxes carrying tag are matched by a
// prediction with the same tag at IoU >= threshold.
//
// Matching is greedy and first-fit: ground-truth boxes are visited in order
// and each takes the first unused prediction that passes the threshold, even
// when a later prediction would overlap more. Each box is used at most once.
func Match(gt, pred box.Collection, tag string, threshold float64) Outcome {
	truth := gt.Filter(tag)
	predicted := pred.Filter(tag)

	used := make([]bool, len(predicted))
	matched := 0

	for _, t := range truth {
		for i, p := range predicted {
			if used[i] {
				continue
			}
			if box.IoU(t, p) >= threshold {
				used[i] = true
				matched++
				break
			}
		}
	}

	return Outcome{
		Matched:     matched,
		GroundTruth: len(truth),
		Predicted:   len(predicted),
	}
}
