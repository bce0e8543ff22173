//go:build windows

package notifyicon

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"

	"github.com/lxn/win"
)

// imageToHICON builds a 32bpp alpha icon from img. The caller owns the
// returned handle.
func imageToHICON(img image.Image) (win.HICON, error) {
	b := img.Bounds()
	width, height := int32(b.Dx()), int32(b.Dy())
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("icon image is empty")
	}

	bi := win.BITMAPINFOHEADER{
		BiWidth:       width,
		BiHeight:      -height, // top-down
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: win.BI_RGB,
	}
	bi.BiSize = uint32(unsafe.Sizeof(bi))

	hdc := win.GetDC(0)
	if hdc == 0 {
		return 0, fmt.Errorf("GetDC failed")
	}
	defer win.ReleaseDC(0, hdc)

	var bits unsafe.Pointer
	hBitmap := win.CreateDIBSection(hdc, &bi, win.DIB_RGB_COLORS, &bits, 0, 0)
	if hBitmap == 0 {
		return 0, fmt.Errorf("CreateDIBSection failed")
	}
	defer win.DeleteObject(win.HGDIOBJ(hBitmap))

	pix := unsafe.Slice((*byte)(bits), int(width)*int(height)*4)
	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			off := (y*int(width) + x) * 4
			pix[off] = c.B
			pix[off+1] = c.G
			pix[off+2] = c.R
			pix[off+3] = c.A
		}
	}

	// The alpha channel decides transparency; the mask only has to exist.
	hMask := win.CreateBitmap(width, height, 1, 1, nil)
	if hMask == 0 {
		return 0, fmt.Errorf("CreateBitmap(mask) failed")
	}
	defer win.DeleteObject(win.HGDIOBJ(hMask))

	ii := win.ICONINFO{
		FIcon:    1,
		HbmMask:  hMask,
		HbmColor: hBitmap,
	}
	hIcon := win.CreateIconIndirect(&ii)
	if hIcon == 0 {
		return 0, fmt.Errorf("CreateIconIndirect failed")
	}
	return hIcon, nil
}
