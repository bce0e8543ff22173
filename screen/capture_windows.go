//go:build windows

package screen

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/rpdg/trayloc/window"
)

// GDI Constants & Types
const (
	SRCCOPY        = 0x00CC0020
	CAPTUREBLT     = 0x40000000
	DIB_RGB_COLORS = 0
	BI_RGB         = 0
)

type BITMAPINFOHEADER struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

// CaptureRect copies the screen contents inside r (screen coordinates) into
// a top-down *image.RGBA whose (0,0) is r's top-left corner. Without
// per-monitor DPI awareness r is in virtualized coordinates.
func CaptureRect(r Rect) (*image.RGBA, error) {
	if r.Empty() {
		return nil, ErrEmptyRect
	}
	width, height := r.Width(), r.Height()

	// 4 bytes per pixel. Limit to approx 500MB (e.g. 11000 x 11000)
	if int64(width)*int64(height)*4 > 1024*1024*500 {
		return nil, fmt.Errorf("resolution too large for single capture: %dx%d (exceeds 500MB)", width, height)
	}

	// GetDC(0) returns the DC for the entire virtual screen
	hScreenDC, _, _ := window.ProcGetDC.Call(0)
	if hScreenDC == 0 {
		return nil, fmt.Errorf("GetDC failed")
	}
	defer window.ProcReleaseDC.Call(0, hScreenDC)

	hMemDC, _, _ := window.ProcCreateCompatibleDC.Call(hScreenDC)
	if hMemDC == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC failed")
	}
	defer window.ProcDeleteDC.Call(hMemDC)

	// Top-down DIB (negative height) so (0,0) is top-left.
	bmi := BITMAPINFOHEADER{
		BiSize:        uint32(unsafe.Sizeof(BITMAPINFOHEADER{})),
		BiWidth:       width,
		BiHeight:      -height,
		BiPlanes:      1,
		BiBitCount:    32, // BGRA
		BiCompression: BI_RGB,
	}

	var ppvBits uintptr
	hBitmap, _, _ := window.ProcCreateDIBSection.Call(
		hMemDC,
		uintptr(unsafe.Pointer(&bmi)),
		DIB_RGB_COLORS,
		uintptr(unsafe.Pointer(&ppvBits)),
		0, 0,
	)
	if hBitmap == 0 {
		return nil, fmt.Errorf("CreateDIBSection failed")
	}
	defer window.ProcDeleteObject.Call(hBitmap)

	oldObj, _, _ := window.ProcSelectObject.Call(hMemDC, hBitmap)
	if oldObj == 0 {
		return nil, fmt.Errorf("SelectObject failed")
	}
	defer window.ProcSelectObject.Call(hMemDC, oldObj)

	// CAPTUREBLT includes layered windows such as the overflow fly-out.
	ret, _, _ := window.ProcBitBlt.Call(
		hMemDC,
		0, 0, uintptr(width), uintptr(height),
		hScreenDC,
		uintptr(r.Left), uintptr(r.Top),
		SRCCOPY|CAPTUREBLT,
	)
	if ret == 0 {
		return nil, fmt.Errorf("BitBlt failed")
	}

	// The DIB dies with hBitmap, so the pixels are copied out.
	totalBytes := int(width) * int(height) * 4
	srcBytes := unsafe.Slice((*byte)(unsafe.Pointer(ppvBits)), totalBytes)
	dstBytes := make([]byte, totalBytes)

	// BGRA -> RGBA
	for i := 0; i < totalBytes; i += 4 {
		dstBytes[i] = srcBytes[i+2]
		dstBytes[i+1] = srcBytes[i+1]
		dstBytes[i+2] = srcBytes[i]
		dstBytes[i+3] = 255
	}

	return &image.RGBA{
		Pix:    dstBytes,
		Stride: int(width * 4),
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}, nil
}
