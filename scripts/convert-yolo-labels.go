//go:build ignore

// Convert YOLO txt labels (class cx cy w h, normalized) into ground-truth JSON
// files for uidet-eval. Image sizes are read from the matching screenshots.
// Usage: go run ./scripts/convert-yolo-labels.go -images DIR -labels DIR -out DIR
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	uidet "github.com/jamesainslie/go-uidet"
	"github.com/jamesainslie/go-uidet/box"
)

func main() {
	var (
		imagesDir = flag.String("images", "testdata/images", "Directory containing screenshots")
		labelsDir = flag.String("labels", "testdata/yolo", "Directory containing YOLO txt labels")
		outDir    = flag.String("out", "testdata/labels", "Directory for ground-truth JSONs")
	)
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	entries, err := os.ReadDir(*labelsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *labelsDir, err)
		os.Exit(1)
	}

	converted := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ".txt")

		w, h, err := imageSize(*imagesDir, stem)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", stem, err)
			continue
		}

		c, err := convert(filepath.Join(*labelsDir, entry.Name()), w, h)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", entry.Name(), err)
			continue
		}

		outFile := filepath.Join(*outDir, stem+".json")
		if err := box.WriteFile(outFile, c); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
			continue
		}
		converted++
	}

	fmt.Printf("\nDone! %d ground-truth files written to %s\n", converted, *outDir)
}

// imageSize finds <stem>.png or <stem>.jpg and returns its dimensions.
func imageSize(dir, stem string) (int, int, error) {
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		f, err := os.Open(filepath.Join(dir, stem+ext))
		if err != nil {
			continue
		}
		cfg, _, err := image.DecodeConfig(f)
		f.Close()
		if err != nil {
			return 0, 0, fmt.Errorf("decoding config: %w", err)
		}
		return cfg.Width, cfg.Height, nil
	}
	return 0, 0, fmt.Errorf("no image for %s", stem)
}

func convert(path string, width, height int) (box.Collection, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	w, h := float64(width), float64(height)
	c := box.Collection{}

	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 5 {
			return nil, fmt.Errorf("line %d: want 5 fields, got %d", line, len(fields))
		}

		class, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: class: %w", line, err)
		}
		tag, ok := uidet.DefaultClassMap[class]
		if !ok {
			continue
		}

		var v [4]float64
		for i := range v {
			v[i], err = strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", line, i+2, err)
			}
		}
		cx, cy, bw, bh := v[0]*w, v[1]*h, v[2]*w, v[3]*h

		b := box.Box{X1: cx - bw/2, Y1: cy - bh/2, X2: cx + bw/2, Y2: cy + bh/2}
		c = append(c, box.Tagged{Box: b.Round(2), Tag: tag})
	}
	return c, scanner.Err()
}
