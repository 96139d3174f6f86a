package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalBackend writes objects below a directory that the HTTP server exposes
// under BaseURL.
type LocalBackend struct {
	root    string
	baseURL string
}

func NewLocalBackend(root, baseURL string) (*LocalBackend, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve media root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &LocalBackend{root: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (b *LocalBackend) resolve(key string) (string, error) {
	p := filepath.Join(b.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(b.root, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return p, nil
}

func (b *LocalBackend) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	p, err := b.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write media: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit media: %w", err)
	}
	return b.baseURL + "/" + key, nil
}

func (b *LocalBackend) Remove(_ context.Context, key string) error {
	p, err := b.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrObjectMissing
		}
		return fmt.Errorf("remove media: %w", err)
	}
	return nil
}
