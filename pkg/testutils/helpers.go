package testutils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"photocull/pkg/types"

	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// Records builds n unclassified records with ids p1..pn backed by
// fictitious paths under /photos.
func Records(n int) []types.PhotoRecord {
	records := make([]types.PhotoRecord, n)
	for i := range records {
		records[i] = types.PhotoRecord{
			ID:         ID(i + 1),
			SourcePath: fmt.Sprintf("/photos/IMG_%04d.jpg", i+1),
		}
	}
	return records
}

// ID returns the id Records assigns to the n-th photo (1-based).
func ID(n int) types.PhotoID {
	return types.PhotoID(fmt.Sprintf("p%d", n))
}

// IDs returns ID(n) for each n.
func IDs(ns ...int) []types.PhotoID {
	ids := make([]types.PhotoID, len(ns))
	for i, n := range ns {
		ids[i] = ID(n)
	}
	return ids
}

// Set returns ID(n) for each n as a set.
func Set(ns ...int) map[types.PhotoID]struct{} {
	set := make(map[types.PhotoID]struct{}, len(ns))
	for _, n := range ns {
		set[ID(n)] = struct{}{}
	}
	return set
}

// solid returns a w x h image filled with c.
func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// WriteJPEG encodes a solid w x h JPEG at dir/name and returns its path.
func WriteJPEG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, solid(w, h, c), &jpeg.Options{Quality: 90}))
	return path
}

// WritePNG encodes a solid w x h PNG at dir/name and returns its path.
func WritePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, solid(w, h, c)))
	return path
}

// WriteJPEGWithDate writes a solid JPEG carrying an EXIF
// DateTimeOriginal of taken and returns its path.
func WriteJPEGWithDate(t *testing.T, dir, name string, taken time.Time) string {
	t.Helper()
	var encoded bytes.Buffer
	require.NoError(t, jpeg.Encode(&encoded, solid(8, 8, color.Gray{Y: 128}), nil))

	app1 := append([]byte("Exif\x00\x00"), exifTIFF(taken.Format("2006:01:02 15:04:05"))...)
	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	require.NoError(t, binary.Write(&out, binary.BigEndian, uint16(len(app1)+2)))
	out.Write(app1)
	out.Write(encoded.Bytes()[2:]) // drop the encoder's SOI

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0644))
	return path
}

// exifTIFF builds a little-endian TIFF block with IFD0 pointing at an Exif
// IFD holding a single DateTimeOriginal entry.
func exifTIFF(stamp string) []byte {
	const (
		ifd0       = 8
		exifIFD    = ifd0 + 2 + 12 + 4
		dateOffset = exifIFD + 2 + 12 + 4
	)
	value := append([]byte(stamp), 0)

	var b bytes.Buffer
	le := binary.LittleEndian
	b.WriteString("II")
	binary.Write(&b, le, uint16(42))
	binary.Write(&b, le, uint32(ifd0))

	binary.Write(&b, le, uint16(1))
	binary.Write(&b, le, uint16(0x8769)) // ExifIFDPointer
	binary.Write(&b, le, uint16(4))      // LONG
	binary.Write(&b, le, uint32(1))
	binary.Write(&b, le, uint32(exifIFD))
	binary.Write(&b, le, uint32(0))

	binary.Write(&b, le, uint16(1))
	binary.Write(&b, le, uint16(0x9003)) // DateTimeOriginal
	binary.Write(&b, le, uint16(2))      // ASCII
	binary.Write(&b, le, uint32(len(value)))
	binary.Write(&b, le, uint32(dateOffset))
	binary.Write(&b, le, uint32(0))

	b.Write(value)
	return b.Bytes()
}

// Touch sets the modification time of path.
func Touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mod, mod))
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
