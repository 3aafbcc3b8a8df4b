package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidImage = errors.New("file is not a supported image")

// supported decode formats mapped to the extension used on disk
var extensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
}

// ImageStorage keeps uploaded images under root and returns paths relative to it.
type ImageStorage struct {
	root      string
	maxWidth  int
	maxHeight int
	maxPixels int64
	log       *zap.Logger
}

func NewImageStorage(root string, log *zap.Logger) *ImageStorage {
	return &ImageStorage{
		root:      root,
		maxWidth:  1920,
		maxHeight: 1080,
		maxPixels: 40_000_000,
		log:       log.With(zap.String("storage", "image")),
	}
}

// Save decodes src, shrinks it to fit the size bounds and writes it as
// <dir>/<slug>-<uuid><ext>. The returned path is relative to the root.
func (s *ImageStorage) Save(src io.Reader, dir, name string) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}
	// decoders allocate the declared canvas up front
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > s.maxPixels {
		s.log.Warn("Rejected oversized image",
			zap.Int("width", cfg.Width),
			zap.Int("height", cfg.Height),
		)
		return "", ErrInvalidImage
	}
	ext, ok := extensions[format]
	if !ok {
		return "", ErrInvalidImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrInvalidImage
	}

	bounds := img.Bounds()
	if bounds.Dx() > s.maxWidth || bounds.Dy() > s.maxHeight {
		img = imaging.Fit(img, s.maxWidth, s.maxHeight, imaging.Lanczos)
	}

	rel := filepath.ToSlash(filepath.Join(dir, fmt.Sprintf("%s-%s%s", Slugify(name), uuid.NewString(), ext)))
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := imaging.Save(img, full, imaging.JPEGQuality(90)); err != nil {
		s.log.Error("Failed to save image", zap.Error(err), zap.String("path", full))
		return "", fmt.Errorf("save image: %w", err)
	}

	s.log.Info("Image saved", zap.String("path", rel))
	return rel, nil
}

// Remove deletes a previously saved file. Missing files are ignored.
func (s *ImageStorage) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if !strings.HasPrefix(filepath.Clean(full), filepath.Clean(s.root)) {
		return fmt.Errorf("path %q escapes media root", rel)
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return "image"
	}
	return slug
}
