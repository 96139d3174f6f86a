package publish

import (
	"net/url"
	"strings"

	"github.com/jkco/site-core/internal/pkg/apperr"
)

// externalURL accepts absolute http(s) links only.
func externalURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperr.NewValidation("imageUrl", "Please provide an image URL")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperr.NewValidation("imageUrl", "Please provide a valid image URL")
	}
	return raw, nil
}
