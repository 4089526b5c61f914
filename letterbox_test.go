package uidet

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/jamesainslie/go-uidet/box"
)

func TestNewLetterbox(t *testing.T) {
	tests := []struct {
		name       string
		w, h, size int
		wantScale  float64
		wantPadX   int
		wantPadY   int
	}{
		{name: "square", w: 640, h: 640, size: 640, wantScale: 1, wantPadX: 0, wantPadY: 0},
		{name: "wide", w: 1280, h: 640, size: 640, wantScale: 0.5, wantPadX: 0, wantPadY: 160},
		{name: "tall", w: 320, h: 640, size: 640, wantScale: 1, wantPadX: 160, wantPadY: 0},
		{name: "upscale", w: 100, h: 50, size: 640, wantScale: 6.4, wantPadX: 0, wantPadY: 160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lb := newLetterbox(tt.w, tt.h, tt.size)
			if math.Abs(lb.scale-tt.wantScale) > 1e-9 {
				t.Errorf("scale = %v, want %v", lb.scale, tt.wantScale)
			}
			if lb.padX != tt.wantPadX || lb.padY != tt.wantPadY {
				t.Errorf("pad = (%d, %d), want (%d, %d)", lb.padX, lb.padY, tt.wantPadX, tt.wantPadY)
			}
		})
	}
}

func TestLetterbox_Unmap(t *testing.T) {
	lb := newLetterbox(1280, 640, 640) // scale 0.5, padY 160

	got := lb.unmap(box.Box{X1: 10, Y1: 170, X2: 110, Y2: 220})
	want := box.Box{X1: 20, Y1: 20, X2: 220, Y2: 120}
	if got != want {
		t.Errorf("unmap() = %v, want %v", got, want)
	}

	// Boxes reaching into the padding are clipped to the image.
	got = lb.unmap(box.Box{X1: -5, Y1: 100, X2: 700, Y2: 600})
	want = box.Box{X1: 0, Y1: 0, X2: 1280, Y2: 640}
	if got != want {
		t.Errorf("unmap() clipped = %v, want %v", got, want)
	}
}

func TestPreprocess(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	size := 40
	input, lb := preprocess(img, size)

	if len(input) != 3*size*size {
		t.Fatalf("input length = %d, want %d", len(input), 3*size*size)
	}
	if lb.scale != 2 || lb.padY != 10 || lb.padX != 0 {
		t.Fatalf("letterbox = %+v", lb)
	}

	plane := size * size
	// Top border is padding.
	if got := input[0]; math.Abs(float64(got)-padValue) > 1e-6 {
		t.Errorf("padding R = %v, want %v", got, padValue)
	}
	// Centre pixel comes from the image.
	idx := 20*size + 20
	if got := input[idx]; got < 0.99 {
		t.Errorf("centre R = %v, want ~1", got)
	}
	if got := input[plane+idx]; got > 0.01 {
		t.Errorf("centre G = %v, want ~0", got)
	}
	if got := input[2*plane+idx]; got > 0.01 {
		t.Errorf("centre B = %v, want ~0", got)
	}
}
