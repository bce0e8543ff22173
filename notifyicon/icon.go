// Package notifyicon describes a notification-area icon as the locator sees
// it: a stable shell identifier plus an image the locator may temporarily
// replace.
package notifyicon

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrNotFound implies the icon is not at any location a strategy can see.
	ErrNotFound = errors.New("notify icon not found")

	// ErrHidden implies the icon exists but sits in the overflow area and the
	// caller did not ask for hidden icons.
	ErrHidden = fmt.Errorf("%w: icon is hidden in the overflow area", ErrNotFound)

	// ErrNoIdentifier implies the hosting toolkit could not supply an identifier.
	ErrNoIdentifier = errors.New("notify icon identifier unavailable")
)

// Identifier is the key the shell files an icon under: the window that
// receives its callbacks and the numeric id chosen by that window.
type Identifier struct {
	Owner uintptr
	ID    uint32
}

// Valid reports whether both halves are set.
func (id Identifier) Valid() bool {
	return id.Owner != 0 && id.ID != 0
}

func (id Identifier) String() string {
	return fmt.Sprintf("%#x/%d", id.Owner, id.ID)
}

// IdentifierProvider extracts the identifier of a registered icon. ok is
// false when the hosting toolkit does not expose it.
type IdentifierProvider interface {
	Identifier() (id Identifier, ok bool)
}

// Icon is a registered tray icon. SetImage must make the shell redraw the
// icon with img.
type Icon interface {
	IdentifierProvider
	Image() image.Image
	SetImage(img image.Image) error
}

// Static is an IdentifierProvider for toolkits that hand out the owner
// window and id directly.
type Static Identifier

func (s Static) Identifier() (Identifier, bool) {
	id := Identifier(s)
	return id, id.Valid()
}
