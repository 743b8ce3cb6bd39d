// Package framedump encodes the PPU's framebuffer to a PNG file, scaled up
// with golang.org/x/image/draw since the native 160x144 image is tiny on
// modern displays.
package framedump

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Scale is the integer upscale factor applied before encoding.
const Scale = 4

// Save scales frame up by Scale using nearest-neighbor (preserving the
// hard pixel edges of the original tiles) and writes it to path as a PNG.
func Save(frame *image.RGBA, path string) error {
	bounds := frame.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*Scale, bounds.Dy()*Scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, bounds, draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("framedump: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, dst); err != nil {
		return fmt.Errorf("framedump: encoding %s: %w", path, err)
	}
	return nil
}
