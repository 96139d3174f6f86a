package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/jkco/site-core/internal/pkg/apperr"
	"golang.org/x/image/draw"
)

// Processed is an upload ready to be stored.
type Processed struct {
	Data        []byte
	Ext         string
	ContentType string
	Width       int
	Height      int
}

// fit scales w×h down so it lies within maxW×maxH, keeping the aspect ratio.
// Images already inside the box are returned unchanged.
func fit(w, h, maxW, maxH int) (int, int, bool) {
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return w, h, false
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && float64(h)*scale > float64(maxH) {
		scale = float64(maxH) / float64(h)
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh, true
}

// Process checks u, limits its dimensions and re-encodes it. PNG stays PNG,
// an unresized GIF is stored as-is, everything else becomes JPEG.
func (c Constraints) Process(u Upload) (Processed, error) {
	format, err := c.Check(u)
	if err != nil {
		return Processed{}, err
	}
	src, _, err := image.Decode(bytes.NewReader(u.Data))
	if err != nil {
		return Processed{}, fmt.Errorf("%w: %v", apperr.ErrUnsupportedMedia, err)
	}

	b := src.Bounds()
	w, h, resized := fit(b.Dx(), b.Dy(), c.MaxWidth, c.MaxHeight)

	if format == "gif" && !resized {
		return Processed{Data: u.Data, Ext: "gif", ContentType: "image/gif", Width: w, Height: h}, nil
	}

	img := src
	if resized {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if format == "png" {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return Processed{}, fmt.Errorf("encode png: %w", err)
		}
		return Processed{Data: buf.Bytes(), Ext: "png", ContentType: "image/png", Width: w, Height: h}, nil
	}

	quality := c.Quality
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: quality}); err != nil {
		return Processed{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return Processed{Data: buf.Bytes(), Ext: "jpg", ContentType: "image/jpeg", Width: w, Height: h}, nil
}

// flatten composites img onto white so transparent regions do not turn black.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
