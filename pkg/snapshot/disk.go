package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore stores objects as files under a directory, each with a
// ".meta.json" sidecar holding its content type and creation time.
type DiskStore struct {
	dir     string
	maxSize int64
}

type diskMeta struct {
	ContentType string `json:"content_type"`
	CreatedAt   string `json:"created_at"`
}

// NewDiskStore creates a DiskStore, creating dir if needed. maxSize of 0
// means no limit.
func NewDiskStore(dir string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir, maxSize: maxSize}, nil
}

func (s *DiskStore) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.HasSuffix(clean, ".meta.json") {
		return "", fmt.Errorf("snapshot: invalid key %q", key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}

// Put implements Store.
func (s *DiskStore) Put(ctx context.Context, obj *Object) error {
	if s.maxSize > 0 && int64(len(obj.Data)) > s.maxSize {
		return ErrTooLarge
	}
	path, err := s.path(obj.Key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	meta, err := json.Marshal(diskMeta{
		ContentType: obj.ContentType,
		CreatedAt:   obj.CreatedAt.Format(timeFormat),
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, obj.Data, 0644); err != nil {
		return err
	}
	return os.WriteFile(path+".meta.json", meta, 0644)
}

// Get implements Store.
func (s *DiskStore) Get(ctx context.Context, key string) (*Object, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	obj := &Object{Key: key, ContentType: ContentTypeMarkup, Data: data}
	if raw, err := os.ReadFile(path + ".meta.json"); err == nil {
		var meta diskMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("snapshot: metadata for %q: %w", key, err)
		}
		obj.ContentType = meta.ContentType
		obj.CreatedAt, _ = parseTime(meta.CreatedAt)
	}
	return obj, nil
}
