// Package mediatest provides an in-memory media.Store that records calls.
package mediatest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jkco/site-core/internal/modules/storage/media"
	"github.com/jkco/site-core/internal/pkg/apperr"
)

// Call is one recorded store operation.
type Call struct {
	Op      string // "upload" or "delete"
	MediaID string
}

// RecordingStore keeps uploaded objects in memory. Set UploadErr or DeleteErr
// to make the next calls fail.
type RecordingStore struct {
	mu        sync.Mutex
	seq       int
	Folder    string
	BaseURL   string
	UploadErr error
	DeleteErr error
	Calls     []Call
	Objects   map[string]media.Upload
}

func NewRecordingStore() *RecordingStore {
	return &RecordingStore{
		Folder:  media.DefaultFolder,
		BaseURL: "https://media.test",
		Objects: map[string]media.Upload{},
	}
}

func (s *RecordingStore) Upload(_ context.Context, u media.Upload) (media.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UploadErr != nil {
		s.Calls = append(s.Calls, Call{Op: "upload"})
		return media.Object{}, s.UploadErr
	}
	s.seq++
	id := fmt.Sprintf("%s/obj-%d.jpg", s.Folder, s.seq)
	s.Calls = append(s.Calls, Call{Op: "upload", MediaID: id})
	s.Objects[id] = u
	return media.Object{MediaID: id, URL: s.BaseURL + "/" + id}, nil
}

func (s *RecordingStore) Delete(_ context.Context, mediaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, Call{Op: "delete", MediaID: mediaID})
	if s.DeleteErr != nil {
		return apperr.Dependency("media", s.DeleteErr)
	}
	delete(s.Objects, mediaID)
	return nil
}

// Uploads returns the ids of successful uploads in call order.
func (s *RecordingStore) Uploads() []string { return s.ops("upload") }

// Deletes returns the ids passed to Delete in call order.
func (s *RecordingStore) Deletes() []string { return s.ops("delete") }

func (s *RecordingStore) ops(op string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, c := range s.Calls {
		if c.Op == op && c.MediaID != "" {
			out = append(out, c.MediaID)
		}
	}
	return out
}

// Has reports whether mediaID is currently stored.
func (s *RecordingStore) Has(mediaID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[mediaID]
	return ok
}
