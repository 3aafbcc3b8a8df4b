package storage

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageStorage_Save(t *testing.T) {
	root := t.TempDir()
	store := NewImageStorage(root, zap.NewNop())

	rel, err := store.Save(bytes.NewReader(encodePNG(t, 16, 8)), "uploads/astronomy_shows", "Black Holes!")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "uploads/astronomy_shows/black-holes-"), rel)
	assert.Equal(t, ".png", filepath.Ext(rel))

	saved, err := imaging.Open(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, 16, saved.Bounds().Dx())
}

func TestImageStorage_Save_Downscales(t *testing.T) {
	root := t.TempDir()
	store := NewImageStorage(root, zap.NewNop())
	store.maxWidth, store.maxHeight = 10, 10

	rel, err := store.Save(bytes.NewReader(encodePNG(t, 40, 20)), "uploads", "wide")
	require.NoError(t, err)

	saved, err := imaging.Open(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, 10, saved.Bounds().Dx())
	assert.Equal(t, 5, saved.Bounds().Dy())
}

func TestImageStorage_Save_NotAnImage(t *testing.T) {
	store := NewImageStorage(t.TempDir(), zap.NewNop())

	_, err := store.Save(strings.NewReader("definitely not a picture"), "uploads", "x")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestImageStorage_Remove(t *testing.T) {
	root := t.TempDir()
	store := NewImageStorage(root, zap.NewNop())

	rel, err := store.Save(bytes.NewReader(encodePNG(t, 4, 4)), "uploads", "tiny")
	require.NoError(t, err)

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(filepath.Join(root, rel))
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, store.Remove(rel))
	assert.Error(t, store.Remove("../../etc/passwd"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "the-dark-side-of-the-moon", Slugify("The Dark Side of the Moon"))
	assert.Equal(t, "image", Slugify("!!!"))
}

// withDimensions rewrites the IHDR width and height of an encoded PNG and fixes the chunk CRC.
func withDimensions(t *testing.T, data []byte, w, h uint32) []byte {
	t.Helper()
	out := bytes.Clone(data)
	// 8 byte signature, 4 byte length, "IHDR", then width and height
	require.Equal(t, "IHDR", string(out[12:16]))
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestImageStorage_Save_RejectsHugeCanvas(t *testing.T) {
	root := t.TempDir()
	store := NewImageStorage(root, zap.NewNop())

	bomb := withDimensions(t, encodePNG(t, 4, 4), 60000, 60000)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(bomb))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 60000, cfg.Width)

	_, err = store.Save(bytes.NewReader(bomb), "uploads", "bomb")
	assert.ErrorIs(t, err, ErrInvalidImage)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImageStorage_Save_PixelBudget(t *testing.T) {
	store := NewImageStorage(t.TempDir(), zap.NewNop())
	store.maxPixels = 100

	_, err := store.Save(bytes.NewReader(encodePNG(t, 16, 8)), "uploads", "over")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = store.Save(bytes.NewReader(encodePNG(t, 10, 10)), "uploads", "exact")
	assert.NoError(t, err)
}
