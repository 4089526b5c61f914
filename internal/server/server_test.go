package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	uidet "github.com/jamesainslie/go-uidet"
	"github.com/jamesainslie/go-uidet/box"
	"github.com/jamesainslie/go-uidet/internal/config"
)

type fakePredictor struct {
	boxes box.Collection
	err   error
	paths []string
	body  []byte
}

func (f *fakePredictor) DetectFile(_ context.Context, path string) (box.Collection, error) {
	f.paths = append(f.paths, path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f.body = data
	return f.boxes, f.err
}

func newTestServer(t *testing.T, p Predictor) (*Server, config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.TempDir = t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(p, cfg, logger), cfg
}

func uploadRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "screen.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/predict/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, &fakePredictor{})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestPredict(t *testing.T) {
	p := &fakePredictor{boxes: box.Collection{
		{Box: box.Box{X1: 10.5, Y1: 20, X2: 110.25, Y2: 60}, Tag: "button"},
		{Box: box.Box{X1: 0, Y1: 100, X2: 300, Y2: 130}, Tag: "input"},
	}}
	s, cfg := newTestServer(t, p)

	resp, err := s.App().Test(uploadRequest(t, "file", []byte("png bytes")), -1)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	got, err := box.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != len(p.boxes) {
		t.Fatalf("got %d boxes, want %d", len(got), len(p.boxes))
	}
	for i := range got {
		if got[i] != p.boxes[i] {
			t.Errorf("box[%d] = %+v, want %+v", i, got[i], p.boxes[i])
		}
	}

	if string(p.body) != "png bytes" {
		t.Errorf("predictor saw %q, want upload content", p.body)
	}

	// Temporary upload must be gone.
	if len(p.paths) != 1 {
		t.Fatalf("predictor called %d times, want 1", len(p.paths))
	}
	if _, err := os.Stat(p.paths[0]); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temporary file %s still exists", p.paths[0])
	}
	entries, err := os.ReadDir(cfg.TempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir has %d leftover files", len(entries))
	}
}

func TestPredict_EmptyResultIsArray(t *testing.T) {
	s, _ := newTestServer(t, &fakePredictor{})

	resp, err := s.App().Test(uploadRequest(t, "file", []byte("x")), -1)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if got := string(bytes.TrimSpace(body)); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestPredict_Errors(t *testing.T) {
	tests := []struct {
		name       string
		field      string
		err        error
		wantStatus int
	}{
		{name: "missing file field", field: "image", wantStatus: http.StatusBadRequest},
		{name: "undecodable image", field: "file", err: fmt.Errorf("%w: bad header", uidet.ErrDecodeImage), wantStatus: http.StatusBadRequest},
		{name: "inference failure", field: "file", err: errors.New("runtime exploded"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePredictor{err: tt.err}
			s, cfg := newTestServer(t, p)

			resp, err := s.App().Test(uploadRequest(t, tt.field, []byte("data")), -1)
			if err != nil {
				t.Fatalf("Test() error = %v", err)
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			entries, err := os.ReadDir(cfg.TempDir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("temp dir has %d leftover files", len(entries))
			}
		})
	}
}

func TestPredict_CORS(t *testing.T) {
	s, _ := newTestServer(t, &fakePredictor{})

	req := uploadRequest(t, "file", []byte("x"))
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
