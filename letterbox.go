package uidet

import (
	"image"
	"math"

	"github.com/nfnt/resize"

	"github.com/jamesainslie/go-uidet/box"
)

// padValue is the grey used to fill letterbox borders, as in ultralytics.
const padValue = 114.0 / 255.0

// letterbox records how an image was fitted into the square model input.
type letterbox struct {
	scale         float64
	padX, padY    int
	width, height int // source image size
}

// newLetterbox computes the geometry for fitting a w x h image into a
// size x size square while keeping its aspect ratio.
func newLetterbox(w, h, size int) letterbox {
	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	newW := int(math.Round(float64(w) * scale))
	newH := int(math.Round(float64(h) * scale))
	return letterbox{
		scale:  scale,
		padX:   int(math.Round(float64(size-newW)/2 - 0.1)),
		padY:   int(math.Round(float64(size-newH)/2 - 0.1)),
		width:  w,
		height: h,
	}
}

// unmap converts a box in model input coordinates back to source image
// coordinates, clipped to the image.
func (l letterbox) unmap(b box.Box) box.Box {
	x := func(v float64) float64 {
		return clamp((v-float64(l.padX))/l.scale, 0, float64(l.width))
	}
	y := func(v float64) float64 {
		return clamp((v-float64(l.padY))/l.scale, 0, float64(l.height))
	}
	return box.Box{X1: x(b.X1), Y1: y(b.Y1), X2: x(b.X2), Y2: y(b.Y2)}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// preprocess letterboxes img into a planar RGB float32 tensor of
// size x size with values in [0, 1].
func preprocess(img image.Image, size int) ([]float32, letterbox) {
	bounds := img.Bounds()
	lb := newLetterbox(bounds.Dx(), bounds.Dy(), size)

	newW := int(math.Round(float64(lb.width) * lb.scale))
	newH := int(math.Round(float64(lb.height) * lb.scale))
	resized := resize.Resize(uint(newW), uint(newH), img, resize.Bilinear)
	rb := resized.Bounds()

	plane := size * size
	input := make([]float32, 3*plane)
	for i := range input {
		input[i] = padValue
	}

	for y := 0; y < newH; y++ {
		ty := y + lb.padY
		if ty < 0 || ty >= size {
			continue
		}
		for x := 0; x < newW; x++ {
			tx := x + lb.padX
			if tx < 0 || tx >= size {
				continue
			}
			r, g, b, _ := resized.At(rb.Min.X+x, rb.Min.Y+y).RGBA()
			idx := ty*size + tx
			input[idx] = float32(r>>8) / 255.0
			input[plane+idx] = float32(g>>8) / 255.0
			input[2*plane+idx] = float32(b>>8) / 255.0
		}
	}

	return input, lb
}
