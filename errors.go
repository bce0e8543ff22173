package trayloc

import (
	"errors"

	"github.com/rpdg/trayloc/notifyicon"
	"github.com/rpdg/trayloc/probe"
)

var (
	// ErrIconNotFound implies the icon location is unknown. Callers should
	// treat it as a normal outcome.
	ErrIconNotFound = notifyicon.ErrNotFound

	// ErrInvalidAccuracy implies a negative accuracy was passed to Locate.
	ErrInvalidAccuracy = probe.ErrInvalidAccuracy

	// ErrNoStructuralQuery implies neither the shell query nor the toolbar
	// scan is available, so questions that need an exact rectangle cannot be
	// answered.
	ErrNoStructuralQuery = errors.New("no structural icon query available")
)
