package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/jkco/site-core/internal/pkg/apperr"
)

const multipartMemory = 32 << 20

// FromFileHeader reads a multipart file part into an Upload. At most
// limit+1 bytes are read so oversized files still fail Check.
func FromFileHeader(fh *multipart.FileHeader, limit int64) (Upload, error) {
	if limit > 0 && fh.Size > limit {
		return Upload{}, fmt.Errorf("%w: %d bytes exceeds %d", apperr.ErrPayloadTooLarge, fh.Size, limit)
	}
	f, err := fh.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Upload{}, fmt.Errorf("read upload: %w", err)
	}
	return Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// FromRequest returns the file sent under field, or nil when the request is
// not multipart or carries no such part.
func FromRequest(r *http.Request, field string, limit int64) (*Upload, error) {
	if !strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/") {
		return nil, nil
	}
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, apperr.NewValidation(field, "Malformed upload: "+err.Error())
		}
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	u, err := FromFileHeader(fh, limit)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
