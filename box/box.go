// Package box defines tagged bounding boxes and the JSON file format shared
// by ground-truth annotations and detector predictions.
package box

import (
	"fmt"
	"math"
)

// Box is an axis-aligned rectangle in image pixel coordinates.
// It is encoded in JSON as [x1, y1, x2, y2].
type Box struct {
	X1, Y1, X2, Y2 float64
}

// Width returns the horizontal extent, clamped to zero.
func (b Box) Width() float64 {
	return math.Max(0, b.X2-b.X1)
}

// Height returns the vertical extent, clamped to zero.
func (b Box) Height() float64 {
	return math.Max(0, b.Y2-b.Y1)
}

// Area returns the box area. Degenerate boxes have area 0.
func (b Box) Area() float64 {
	return b.Width() * b.Height()
}

// Round returns b with every coordinate rounded to the given number of
// decimal places.
func (b Box) Round(places int) Box {
	p := math.Pow(10, float64(places))
	r := func(v float64) float64 { return math.Round(v*p) / p }
	return Box{X1: r(b.X1), Y1: r(b.Y1), X2: r(b.X2), Y2: r(b.Y2)}
}

func (b Box) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", b.X1, b.Y1, b.X2, b.Y2)
}

// MarshalJSON encodes the box as a four element array.
func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.X1, b.Y1, b.X2, b.Y2})
}

// UnmarshalJSON decodes a four element array. Any other length is an error.
func (b *Box) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}
	if len(coords) != 4 {
		return fmt.Errorf("box has %d coordinates, want 4", len(coords))
	}
	*b = Box{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}
	return nil
}

// IoU returns the intersection over union of a and b.
// It is 0 when the union is empty.
func IoU(a, b Box) float64 {
	inter := Box{
		X1: math.Max(a.X1, b.X1),
		Y1: math.Max(a.Y1, b.Y1),
		X2: math.Min(a.X2, b.X2),
		Y2: math.Min(a.Y2, b.Y2),
	}.Area()

	union := a.Area() + b.Area() - inter
	if union == 0 {
		return 0
	}
	return inter / union
}

// Tagged is a box labelled with a UI element kind.
type Tagged struct {
	Box Box    `json:"box"`
	Tag string `json:"tag"`
}

// Collection is the unordered set of tagged boxes for one image.
type Collection []Tagged

// Filter returns the boxes carrying tag, in their original order.
func (c Collection) Filter(tag string) []Box {
	var out []Box
	for _, t := range c {
		if t.Tag == tag {
			out = append(out, t.Box)
		}
	}
	return out
}
