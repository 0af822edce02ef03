//go:build windows

package capture

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/disintegration/gift"
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

func init() {
	// Without DPI awareness GDI reports scaled dimensions on hi-res
	// displays and the capture comes out cropped.
	procSetProcessDpiAwareness.Call(uintptr(2)) // PROCESS_PER_MONITOR_DPI_AWARE
}

var (
	modShcore                  = windows.NewLazySystemDLL("Shcore.dll")
	procSetProcessDpiAwareness = modShcore.NewProc("SetProcessDpiAwareness")
)

func grab() (image.Image, error) {
	hwnd := win.GetDesktopWindow()
	width := int(win.GetSystemMetrics(win.SM_CXSCREEN))
	height := int(win.GetSystemMetrics(win.SM_CYSCREEN))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("error getting screen dimensions")
	}

	return captureWindow(hwnd, image.Rect(0, 0, width, height))
}

// captureWindow captures the desired area from a window and returns an image.
func captureWindow(hwnd win.HWND, rect image.Rectangle) (image.Image, error) {
	dcSrc := win.GetDC(hwnd)
	if dcSrc == 0 {
		return nil, fmt.Errorf("error preparing screen capture")
	}
	defer win.ReleaseDC(hwnd, dcSrc)

	dcDst := win.CreateCompatibleDC(dcSrc)
	if dcDst == 0 {
		return nil, fmt.Errorf("error creating DC for drawing")
	}
	defer win.DeleteDC(dcDst)

	width := rect.Dx()
	height := rect.Dy()

	var bitmapInfo win.BITMAPINFO
	bitmapInfo.BmiHeader = win.BITMAPINFOHEADER{
		BiSize:        uint32(unsafe.Sizeof(bitmapInfo.BmiHeader)),
		BiWidth:       int32(width),
		BiHeight:      int32(height),
		BiPlanes:      1,
		BiBitCount:    32,
		BiCompression: win.BI_RGB,
	}
	var bitmapData unsafe.Pointer
	bitmap := win.CreateDIBSection(dcDst, &bitmapInfo.BmiHeader, win.DIB_RGB_COLORS, &bitmapData, 0, 0)
	if bitmap == 0 {
		return nil, fmt.Errorf("error creating bitmap for screen capture")
	}
	defer win.DeleteObject(win.HGDIOBJ(bitmap))

	old := win.SelectObject(dcDst, win.HGDIOBJ(bitmap))
	defer win.SelectObject(dcDst, old)

	if !win.BitBlt(dcDst, 0, 0, int32(width), int32(height), dcSrc, int32(rect.Min.X), int32(rect.Min.Y), win.SRCCOPY) {
		return nil, fmt.Errorf("error capturing screen")
	}

	// The DIB holds BGRA rows; swap to RGBA while copying out of the
	// GDI-owned buffer.
	slice := unsafe.Slice((*byte)(bitmapData), width*height*4)
	imageBytes := make([]byte, len(slice))
	for i := 0; i < len(imageBytes); i += 4 {
		imageBytes[i], imageBytes[i+1], imageBytes[i+2], imageBytes[i+3] = slice[i+2], slice[i+1], slice[i], 255
	}

	// A positive BiHeight makes the DIB bottom-up, so flip it.
	img := &image.RGBA{Pix: imageBytes, Stride: 4 * width, Rect: image.Rect(0, 0, width, height)}
	dst := image.NewRGBA(img.Bounds())
	gift.New(gift.FlipVertical()).Draw(dst, img)

	return dst, nil
}
