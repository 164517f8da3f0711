package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"
)

// Product image bounds. Uploads outside the resolution window or above the
// byte cap are rejected before anything touches disk.
const (
	MinImageWidth  = 300
	MinImageHeight = 300
	MaxImageWidth  = 2500
	MaxImageHeight = 2500
)

var (
	// ErrImageTooSmall marks an upload below the minimum resolution.
	ErrImageTooSmall = errors.New("image resolution below minimum")
	// ErrImageTooLarge marks an upload above the maximum resolution or byte cap.
	ErrImageTooLarge = errors.New("image resolution above maximum")
)

// ValidateImage decodes the image header and checks its dimensions against
// the allowed window. maxBytes caps the raw upload size; zero disables the cap.
func ValidateImage(data []byte, maxBytes int64) (width, height int, err error) {
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return 0, 0, fmt.Errorf("upload of %d bytes exceeds cap of %d: %w", len(data), maxBytes, ErrImageTooLarge)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width < MinImageWidth || cfg.Height < MinImageHeight {
		return cfg.Width, cfg.Height, fmt.Errorf("%dx%d below %dx%d: %w",
			cfg.Width, cfg.Height, MinImageWidth, MinImageHeight, ErrImageTooSmall)
	}
	if cfg.Width > MaxImageWidth || cfg.Height > MaxImageHeight {
		return cfg.Width, cfg.Height, fmt.Errorf("%dx%d above %dx%d: %w",
			cfg.Width, cfg.Height, MaxImageWidth, MaxImageHeight, ErrImageTooLarge)
	}
	return cfg.Width, cfg.Height, nil
}

// ImageStore persists validated product images under a media directory.
type ImageStore struct {
	dir      string
	maxBytes int64
}

// NewImageStore builds a store rooted at dir. maxBytes caps uploads; zero
// disables the cap.
func NewImageStore(dir string, maxBytes int64) *ImageStore {
	return &ImageStore{dir: dir, maxBytes: maxBytes}
}

// Save validates the image and writes it under the store's directory,
// returning the relative path recorded on the product row.
func (s *ImageStore) Save(filename string, data []byte) (string, error) {
	if _, _, err := ValidateImage(data, s.maxBytes); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	name := filepath.Base(filename)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}
