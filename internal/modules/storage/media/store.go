// Package media uploads and removes images on the configured object store.
// Uploads are checked against Constraints and normalised before they reach
// a Backend.
package media

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/jkco/site-core/internal/pkg/apperr"
	"go.uber.org/zap"
)

// DefaultFolder groups every object this service writes.
const DefaultFolder = "jkrishnan-gallery"

// Upload is a binary image submitted by an admin.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Object identifies a stored image.
type Object struct {
	MediaID string `json:"mediaId"`
	URL     string `json:"url"`
}

// Store is the contract the publishing service relies on.
type Store interface {
	Upload(ctx context.Context, u Upload) (Object, error)
	// Delete removes mediaID. Unknown ids are not an error.
	Delete(ctx context.Context, mediaID string) error
}

// ErrObjectMissing is returned by a Backend when the key does not exist.
var ErrObjectMissing = errors.New("object does not exist")

// Backend is a raw object store keyed by media id.
type Backend interface {
	Put(ctx context.Context, key, contentType string, data []byte) (url string, err error)
	Remove(ctx context.Context, key string) error
}

// Manager checks and transforms uploads before handing them to a Backend.
type Manager struct {
	backend     Backend
	constraints Constraints
	folder      string
	log         *zap.Logger
}

func NewManager(backend Backend, constraints Constraints, folder string, log *zap.Logger) *Manager {
	if folder = strings.Trim(strings.TrimSpace(folder), "/"); folder == "" {
		folder = DefaultFolder
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{backend: backend, constraints: constraints, folder: folder, log: log.Named("media")}
}

func (m *Manager) Upload(ctx context.Context, u Upload) (Object, error) {
	img, err := m.constraints.Process(u)
	if err != nil {
		return Object{}, err
	}
	key := path.Join(m.folder, uuid.NewString()+"."+img.Ext)
	url, err := m.backend.Put(ctx, key, img.ContentType, img.Data)
	if err != nil {
		return Object{}, apperr.Dependency("media", err)
	}
	m.log.Info("uploaded image",
		zap.String("media_id", key),
		zap.Int("bytes", len(img.Data)),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height))
	return Object{MediaID: key, URL: url}, nil
}

func (m *Manager) Delete(ctx context.Context, mediaID string) error {
	mediaID = strings.TrimSpace(mediaID)
	if mediaID == "" {
		return nil
	}
	err := m.backend.Remove(ctx, mediaID)
	if errors.Is(err, ErrObjectMissing) {
		m.log.Warn("media already absent", zap.String("media_id", mediaID))
		return nil
	}
	if err != nil {
		return apperr.Dependency("media", err)
	}
	m.log.Info("deleted image", zap.String("media_id", mediaID))
	return nil
}
