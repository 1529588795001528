// Package thumbnail decodes photos into small RGBA images sized for
// terminal tiles and keeps the most recently used ones in memory.
package thumbnail

import (
	"container/list"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	serr "photocull/internal/errors"
	log "photocull/internal/log"
	"photocull/pkg/types"
)

// Key identifies one rendering of a photo. Size is the bounding box in
// pixels the thumbnail was fitted into.
type Key struct {
	ID   types.PhotoID
	Size image.Point
}

// Thumbnail is a scaled copy of a photo.
type Thumbnail struct {
	Image    *image.RGBA
	Original image.Point // Dimensions of the decoded source
}

type entry struct {
	key   Key
	thumb Thumbnail
	elem  *list.Element
}

// Cache is an LRU of thumbnails. Safe for concurrent use so Load can run
// on background goroutines while the UI reads with Get.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	lru     *list.List // front = most recent
	maxSize int
}

// NewCache creates a cache holding at most maxEntries thumbnails.
func NewCache(maxEntries int) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Cache{
		entries: make(map[Key]*entry),
		lru:     list.New(),
		maxSize: maxEntries,
	}
}

// Get returns a cached thumbnail and marks it recently used.
func (c *Cache) Get(id types.PhotoID, size image.Point) (Thumbnail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[Key{ID: id, Size: size}]
	if !ok {
		return Thumbnail{}, false
	}
	c.lru.MoveToFront(e.elem)
	return e.thumb, true
}

// Load returns the thumbnail for id, decoding path and fitting it into
// size when it is not cached yet.
func (c *Cache) Load(id types.PhotoID, path string, size image.Point) (Thumbnail, error) {
	if thumb, ok := c.Get(id, size); ok {
		return thumb, nil
	}

	img, err := Decode(path)
	if err != nil {
		return Thumbnail{}, err
	}
	thumb := Thumbnail{
		Image:    Fit(img, size),
		Original: img.Bounds().Size(),
	}
	c.Put(id, size, thumb)

	log.LogWithFields(log.F("path", path)).Debugf("cached thumbnail %dx%d (original %dx%d)",
		thumb.Image.Bounds().Dx(), thumb.Image.Bounds().Dy(), thumb.Original.X, thumb.Original.Y)
	return thumb, nil
}

// Put stores thumb, evicting the least recently used entries beyond
// capacity.
func (c *Cache) Put(id types.PhotoID, size image.Point, thumb Thumbnail) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{ID: id, Size: size}
	if e, ok := c.entries[key]; ok {
		e.thumb = thumb
		c.lru.MoveToFront(e.elem)
		return
	}

	for c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*entry)
		delete(c.entries, old.key)
		c.lru.Remove(oldest)
	}

	e := &entry{key: key, thumb: thumb}
	e.elem = c.lru.PushFront(e)
	c.entries[key] = e
}

// Invalidate drops every size cached for id.
func (c *Cache) Invalidate(id types.PhotoID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if key.ID == id {
			c.lru.Remove(e.elem)
			delete(c.entries, key)
		}
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*entry)
	c.lru = list.New()
}

// Len returns the current number of cached thumbnails.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Decode opens and decodes any registered image format at path.
func Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, serr.FromOS("failed to open photo", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, serr.NewFileError("failed to decode photo", path, serr.DecodeFailed, err)
	}
	return img, nil
}

// Fit scales src to the largest size that fits inside box while keeping
// its aspect ratio. Both dimensions are at least one pixel.
func Fit(src image.Image, box image.Point) *image.RGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 || box.X < 1 || box.Y < 1 {
		return image.NewRGBA(image.Rect(0, 0, max(box.X, 1), max(box.Y, 1)))
	}

	newW, newH := box.X, h*box.X/w
	if newH > box.Y {
		newW, newH = w*box.Y/h, box.Y
	}
	newW, newH = max(newW, 1), max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}
