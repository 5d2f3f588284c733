package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists processed images and returns a URL the mobile client can
// load them from.
type Store interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// DiskStore writes under a local directory served by the /uploads static
// route.
type DiskStore struct {
	Dir     string
	BaseURL string // e.g. "/uploads"
}

func NewDiskStore(dir, baseURL string) *DiskStore {
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &DiskStore{Dir: dir, BaseURL: baseURL}
}

func (s *DiskStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("media: create upload dir: %w", err)
	}

	path := filepath.Join(s.Dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("media: write %s: %w", key, err)
	}

	return s.BaseURL + "/" + key, nil
}

var _ Store = (*DiskStore)(nil)
