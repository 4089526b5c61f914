package uidet

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("uidet: model file not found")

	// ErrInvalidModel indicates the model file exists but cannot be loaded.
	ErrInvalidModel = errors.New("uidet: invalid model format")

	// ErrDecodeImage indicates the input is not a supported image.
	ErrDecodeImage = errors.New("uidet: cannot decode image")

	// ErrClosed indicates the detector has been closed.
	ErrClosed = errors.New("uidet: detector is closed")
)
