//go:build windows

package trayloc

import (
	"log/slog"

	"github.com/rpdg/trayloc/shellrect"
	"github.com/rpdg/trayloc/toolbar"
)

func platformStrategies(logger *slog.Logger) (native, legacy Structural) {
	return shellrect.New(), toolbar.New(toolbar.WithLogger(logger))
}
