package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ============================================================
// Floor image store
// ============================================================

// ErrInvalidType rejects anything but JPEG, PNG and SVG uploads.
var ErrInvalidType = errors.New("storage: invalid file type, only JPEG, PNG and SVG are allowed")

// ErrBadPath rejects object paths escaping the storage root.
var ErrBadPath = errors.New("storage: bad object path")

var extByType = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/svg+xml": ".svg",
}

// ImageStore keeps floor plan images on local disk and hands out
// public URLs for them. Image lifecycle is independent of graph data:
// only floor deletion removes an image.
type ImageStore struct {
	root    string
	baseURL string
}

// New creates a store rooted at root; public URLs are served under
// baseURL + "/maps/".
func New(root, baseURL string) *ImageStore {
	return &ImageStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Save stores one uploaded image and returns its public URL plus the
// object path used for later deletion. Images belonging to a floor go
// under "floor-<id>/", anything uploaded before the floor exists under
// "temp/".
func (s *ImageStore) Save(floorID, contentType string, data []byte) (publicURL, objectPath string, err error) {
	ext, ok := extByType[contentType]
	if !ok {
		return "", "", ErrInvalidType
	}

	dir := "temp"
	if floorID != "" {
		dir = "floor-" + floorID
	}
	objectPath = filepath.ToSlash(filepath.Join(dir, uuid.NewString()+ext))

	full := filepath.Join(s.root, objectPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", "", fmt.Errorf("mkdir image dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", "", fmt.Errorf("write image: %w", err)
	}

	return s.PublicURL(objectPath), objectPath, nil
}

// PublicURL builds the URL an object is served under.
func (s *ImageStore) PublicURL(objectPath string) string {
	return s.baseURL + "/maps/" + objectPath
}

// FilePath resolves an object path for serving, rejecting traversal.
func (s *ImageStore) FilePath(objectPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(objectPath))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", ErrBadPath
	}
	return filepath.Join(s.root, clean), nil
}

// Delete removes a stored object. Missing objects are a no-op.
func (s *ImageStore) Delete(objectPath string) error {
	full, err := s.FilePath(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
