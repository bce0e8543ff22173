package toolbar

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrLayoutMismatch implies a foreign structure did not have the size or
// contents expected for this process's pointer width. It invalidates the
// whole scan, not just the current button.
var ErrLayoutMismatch = errors.New("toolbar structure layout mismatch")

const (
	stateHidden = 0x08 // TBSTATE_HIDDEN

	rectSize = 16
)

// buttonSize returns sizeof(TBBUTTON) for the given pointer width.
//
//	int iBitmap; int idCommand; BYTE fsState; BYTE fsStyle;
//	BYTE bReserved[6 or 2]; DWORD_PTR dwData; INT_PTR iString;
func buttonSize(ptrSize int) int {
	return 8 + 3*ptrSize
}

// linkageSize returns the number of meaningful bytes in the record a tray
// button's dwData points at: the owner window followed by the icon id.
func linkageSize(ptrSize int) int {
	return ptrSize + 4
}

type rawButton struct {
	state byte
	data  uintptr
}

func readPointer(b []byte, ptrSize int) uintptr {
	if ptrSize == 8 {
		return uintptr(binary.LittleEndian.Uint64(b))
	}
	return uintptr(binary.LittleEndian.Uint32(b))
}

func checkPtrSize(ptrSize int) error {
	if ptrSize != 4 && ptrSize != 8 {
		return fmt.Errorf("%w: pointer size %d", ErrLayoutMismatch, ptrSize)
	}
	return nil
}

func decodeButton(b []byte, ptrSize int) (rawButton, error) {
	if err := checkPtrSize(ptrSize); err != nil {
		return rawButton{}, err
	}
	if want := buttonSize(ptrSize); len(b) != want {
		return rawButton{}, fmt.Errorf("%w: button read %d bytes, want %d", ErrLayoutMismatch, len(b), want)
	}
	// dwData follows the reserved bytes, aligned to the pointer width.
	return rawButton{
		state: b[8],
		data:  readPointer(b[8+ptrSize:], ptrSize),
	}, nil
}

func decodeLinkage(b []byte, ptrSize int) (owner uintptr, id uint32, err error) {
	if err := checkPtrSize(ptrSize); err != nil {
		return 0, 0, err
	}
	if want := linkageSize(ptrSize); len(b) != want {
		return 0, 0, fmt.Errorf("%w: icon record read %d bytes, want %d", ErrLayoutMismatch, len(b), want)
	}
	return readPointer(b, ptrSize), binary.LittleEndian.Uint32(b[ptrSize:]), nil
}

func decodeRect(b []byte) (left, top, right, bottom int32, err error) {
	if len(b) != rectSize {
		return 0, 0, 0, 0, fmt.Errorf("%w: rect read %d bytes, want %d", ErrLayoutMismatch, len(b), rectSize)
	}
	le := binary.LittleEndian
	return int32(le.Uint32(b[0:])), int32(le.Uint32(b[4:])), int32(le.Uint32(b[8:])), int32(le.Uint32(b[12:])), nil
}
