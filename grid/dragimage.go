package grid

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

const (
	stackLayers = 3
	stackShift  = 6
)

// ComposeStack draws up to three images as an offset stack inside a size×size
// square, the first image on top. It returns nil when there is nothing to draw.
func ComposeStack(imgs []image.Image, size int) image.Image {
	var layers []image.Image
	for _, img := range imgs {
		if img == nil || img.Bounds().Empty() {
			continue
		}
		layers = append(layers, img)
		if len(layers) == stackLayers {
			break
		}
	}
	if len(layers) == 0 || size <= 0 {
		return nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	tile := size - stackShift*(stackLayers-1)
	if tile <= 0 {
		tile = size
	}

	// Bottom layer first so the first image ends up on top.
	for i := len(layers) - 1; i >= 0; i-- {
		off := stackShift * i
		frame := image.Rect(off, off, off+tile, off+tile)
		draw.Draw(dst, frame, &image.Uniform{C: color.NRGBA{A: 0xff}}, image.Point{}, draw.Src)
		draw.ApproxBiLinear.Scale(dst, fitInside(layers[i].Bounds(), frame), layers[i], layers[i].Bounds(), draw.Over, nil)
	}
	return dst
}

// fitInside returns the largest rectangle with src's aspect ratio centred in frame.
func fitInside(src, frame image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	fw, fh := frame.Dx(), frame.Dy()
	if sw == 0 || sh == 0 {
		return frame
	}

	w, h := fw, sh*fw/sw
	if h > fh {
		w, h = sw*fh/sh, fh
	}
	x := frame.Min.X + (fw-w)/2
	y := frame.Min.Y + (fh-h)/2
	return image.Rect(x, y, x+w, y+h)
}
