package media

import (
	"bytes"
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Processor normalizes catalog images: decode, cap the long edge, re-encode
// as lossy webp so stylist/service photos stay small on mobile.
type Processor struct {
	MaxEdge int
	Quality float32
}

func NewProcessor(maxEdge int) *Processor {
	if maxEdge <= 0 {
		maxEdge = 1280
	}
	return &Processor{
		MaxEdge: maxEdge,
		Quality: 85,
	}
}

func (p *Processor) Process(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("media: decode image: %w", err)
	}

	img = p.fit(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("media: encode webp: %w", err)
	}

	return buf.Bytes(), nil
}

// fit scales the image down so its longer edge is at most MaxEdge,
// preserving aspect ratio. Images already within bounds pass through.
func (p *Processor) fit(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	long := w
	if h > w {
		long = h
	}
	if long <= p.MaxEdge {
		return img
	}

	scale := float64(p.MaxEdge) / float64(long)
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
