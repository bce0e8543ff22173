package screen

import "errors"

var (
	// ErrUnsupported implies screen access is not available on this platform.
	ErrUnsupported = errors.New("screen capture not supported on this platform")

	// ErrEmptyRect implies a capture was requested for a rectangle without area.
	ErrEmptyRect = errors.New("capture rectangle is empty")
)
