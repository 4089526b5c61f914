package server

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	uidet "github.com/jamesainslie/go-uidet"
	"github.com/jamesainslie/go-uidet/box"
)

// uploadField is the multipart field carrying the image.
const uploadField = "file"

type errorResponse struct {
	Error string `json:"error"`
}

// predict stores the upload in a temporary file, runs the detector on it and
// returns the tagged boxes. The file is removed before responding.
func (s *Server) predict(c *fiber.Ctx) error {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "multipart field \"file\" is required"})
	}

	tmp := filepath.Join(s.cfg.TempDir, "tmp_"+uuid.NewString()+".png")
	if err := c.SaveFile(header, tmp); err != nil {
		s.log.Error("saving upload", "file", header.Filename, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "cannot store upload"})
	}
	defer func() {
		if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("removing upload", "path", tmp, "error", err)
		}
	}()

	boxes, err := s.predictor.DetectFile(c.UserContext(), tmp)
	if err != nil {
		if errors.Is(err, uidet.ErrDecodeImage) {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "unsupported image"})
		}
		s.log.Error("detection failed", "file", header.Filename, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "detection failed"})
	}

	if boxes == nil {
		boxes = box.Collection{}
	}
	s.log.Debug("predicted", "file", header.Filename, "boxes", len(boxes))
	return c.JSON(boxes)
}
