package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/jkco/site-core/internal/pkg/apperr"
	_ "golang.org/x/image/webp"
)

// Constraints bound what an upload may be and how it is stored.
type Constraints struct {
	MaxBytes       int64
	AllowedFormats []string
	MaxWidth       int
	MaxHeight      int
	// MaxPixels caps the declared width*height, checked before decoding.
	MaxPixels int64
	Quality   int
}

// DefaultConstraints mirrors the limits the site has always enforced.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxBytes:       5 << 20,
		AllowedFormats: []string{"jpg", "jpeg", "png", "gif", "webp"},
		MaxWidth:       1200,
		MaxHeight:      800,
		MaxPixels:      40_000_000,
		Quality:        82,
	}
}

func (c Constraints) allowed(format string) bool {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	for _, f := range c.AllowedFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// Check validates u without decoding the full image and returns the sniffed
// format name.
func (c Constraints) Check(u Upload) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(u.ContentType))
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: %q is not an image", apperr.ErrUnsupportedMedia, u.ContentType)
	}
	if c.MaxBytes > 0 && int64(len(u.Data)) > c.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", apperr.ErrPayloadTooLarge, len(u.Data), c.MaxBytes)
	}
	if len(u.Data) == 0 {
		return "", fmt.Errorf("%w: empty file", apperr.ErrUnsupportedMedia)
	}
	if ext := filepath.Ext(u.Filename); ext != "" && !c.allowed(ext) {
		return "", fmt.Errorf("%w: extension %s not allowed", apperr.ErrUnsupportedMedia, ext)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(u.Data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUnsupportedMedia, err)
	}
	if !c.allowed(format) {
		return "", fmt.Errorf("%w: format %s not allowed", apperr.ErrUnsupportedMedia, format)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); c.MaxPixels > 0 && px > c.MaxPixels {
		return "", fmt.Errorf("%w: %dx%d image exceeds %d pixels", apperr.ErrPayloadTooLarge, cfg.Width, cfg.Height, c.MaxPixels)
	}
	return format, nil
}
