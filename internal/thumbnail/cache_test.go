package thumbnail_test

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"photocull/internal/errors"
	"photocull/internal/thumbnail"
	"photocull/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitKeepsAspect(t *testing.T) {
	tests := []struct {
		name string
		src  image.Point
		box  image.Point
		want image.Point
	}{
		{"landscape", image.Pt(400, 200), image.Pt(40, 40), image.Pt(40, 20)},
		{"portrait", image.Pt(200, 400), image.Pt(40, 40), image.Pt(20, 40)},
		{"upscale", image.Pt(4, 2), image.Pt(20, 20), image.Pt(20, 10)},
		{"sliver", image.Pt(1000, 1), image.Pt(10, 10), image.Pt(10, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rectangle{Max: tt.src})
			got := thumbnail.Fit(src, tt.box)
			assert.Equal(t, tt.want, got.Bounds().Size())
		})
	}
}

func TestLoadDecodesAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WritePNG(t, dir, "red.png", 64, 32, color.RGBA{R: 255, A: 255})
	c := thumbnail.NewCache(4)

	thumb, err := c.Load("p1", path, image.Pt(16, 16))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(64, 32), thumb.Original)
	assert.Equal(t, image.Pt(16, 8), thumb.Image.Bounds().Size())
	r, _, _, _ := thumb.Image.At(4, 4).RGBA()
	assert.Greater(t, r, uint32(0xf000))

	// Second load is served from the cache even if the file is gone
	require.NoError(t, os.Remove(path))
	again, err := c.Load("p1", path, image.Pt(16, 16))
	require.NoError(t, err)
	assert.Same(t, thumb.Image, again.Image)

	// A different size is a different key
	_, err = c.Load("p1", path, image.Pt(8, 8))
	assert.True(t, errors.IsFileNotFound(err))
}

func TestLRUEviction(t *testing.T) {
	c := thumbnail.NewCache(2)
	size := image.Pt(4, 4)
	blank := thumbnail.Thumbnail{Image: image.NewRGBA(image.Rect(0, 0, 4, 4))}

	c.Put("a", size, blank)
	c.Put("b", size, blank)
	_, ok := c.Get("a", size) // a is now most recent
	require.True(t, ok)
	c.Put("c", size, blank)

	assert.Equal(t, 2, c.Len())
	_, ok = c.Get("b", size)
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("a", size)
	assert.True(t, ok)
}

func TestInvalidateAndClear(t *testing.T) {
	c := thumbnail.NewCache(8)
	blank := thumbnail.Thumbnail{Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}
	c.Put("a", image.Pt(4, 4), blank)
	c.Put("a", image.Pt(8, 8), blank)
	c.Put("b", image.Pt(4, 4), blank)

	c.Invalidate("a")
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("b", image.Pt(4, 4))
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.jpg")
	require.NoError(t, os.WriteFile(bogus, []byte("not an image"), 0644))

	_, err := thumbnail.Decode(bogus)
	assert.Equal(t, errors.DecodeFailed, errors.KindOf(err))

	_, err = thumbnail.Decode(filepath.Join(dir, "missing.png"))
	assert.True(t, errors.IsFileNotFound(err))
}
