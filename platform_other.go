//go:build !windows

package trayloc

import (
	"log/slog"

	"github.com/rpdg/trayloc/shellrect"
)

// Only the unsupported shell query; the probe reports the failure.
func platformStrategies(*slog.Logger) (native, legacy Structural) {
	return shellrect.New(), nil
}
