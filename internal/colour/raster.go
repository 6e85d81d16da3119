package colour

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// DefaultMaxEdge is the long-edge size images are reduced to before extraction.
const DefaultMaxEdge = 200

// Raster is a decoded, non-premultiplied RGBA pixel buffer.
// Pix is row major with a stride of 4*Width.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRasterFromPix wraps an existing RGBA buffer.
func NewRasterFromPix(width, height int, pix []uint8) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("pixel buffer has %d bytes, want %d for %dx%d", len(pix), width*height*4, width, height)
	}
	return &Raster{Width: width, Height: height, Pix: pix}, nil
}

// NewRaster converts img to a Raster, scaling it down so that its long edge
// is at most maxEdge pixels. A maxEdge of 0 or less keeps the original size.
func NewRaster(img image.Image, maxEdge int) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	w, h := scaledSize(bounds.Dx(), bounds.Dy(), maxEdge)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	}

	return &Raster{Width: w, Height: h, Pix: dst.Pix}, nil
}

// scaledSize keeps the aspect ratio and never upscales.
func scaledSize(w, h, maxEdge int) (int, int) {
	long := max(w, h)
	if maxEdge <= 0 || long <= maxEdge {
		return w, h
	}
	scale := float64(maxEdge) / float64(long)
	sw := max(1, int(float64(w)*scale+0.5))
	sh := max(1, int(float64(h)*scale+0.5))
	return sw, sh
}

// At returns the pixel at (x, y).
func (r *Raster) At(x, y int) RGBA {
	i := (y*r.Width + x) * 4
	return RGBA{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2], A: r.Pix[i+3]}
}

// Len returns the number of pixels.
func (r *Raster) Len() int {
	return r.Width * r.Height
}

func (r *Raster) validate() error {
	if r == nil {
		return fmt.Errorf("raster cannot be nil")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("raster has no pixels (%dx%d)", r.Width, r.Height)
	}
	if len(r.Pix) < r.Width*r.Height*4 {
		return fmt.Errorf("raster buffer too short: %d bytes for %dx%d", len(r.Pix), r.Width, r.Height)
	}
	return nil
}
