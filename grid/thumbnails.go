package grid

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"golang.org/x/image/draw"
)

const (
	thumbnailSize     = cellIconSize * 2
	thumbnailQueueCap = 100
	thumbnailWorkers  = 4
)

type thumbnailRequest struct {
	path string
	done func(image.Image)
}

// thumbnailCache decodes and scales image files in the background. The most
// recent request is served first so visible cells win over scrolled-away ones.
type thumbnailCache struct {
	images sync.Map // map[string]image.Image

	mu       sync.Mutex
	cond     *sync.Cond
	requests []thumbnailRequest
}

var (
	thumbs     *thumbnailCache
	thumbsOnce sync.Once
)

func thumbnails() *thumbnailCache {
	thumbsOnce.Do(func() {
		thumbs = newThumbnailCache(thumbnailWorkers)
	})
	return thumbs
}

func newThumbnailCache(workers int) *thumbnailCache {
	c := &thumbnailCache{requests: make([]thumbnailRequest, 0, thumbnailQueueCap)}
	c.cond = sync.NewCond(&c.mu)
	for i := 0; i < workers; i++ {
		go c.worker()
	}
	return c
}

// cached returns the thumbnail for path if it was already produced.
func (c *thumbnailCache) cached(path string) image.Image {
	if img, ok := c.images.Load(path); ok {
		return img.(image.Image)
	}
	return nil
}

// load queues uri for decoding. done runs on a worker goroutine and is not called on failure.
func (c *thumbnailCache) load(uri fyne.URI, done func(image.Image)) {
	if uri == nil || uri.Scheme() != "file" || !isThumbnailable(uri.Extension()) {
		return
	}
	path := uri.Path()
	if img := c.cached(path); img != nil {
		done(img)
		return
	}

	c.mu.Lock()
	if len(c.requests) >= thumbnailQueueCap {
		c.requests = c.requests[1:]
	}
	c.requests = append(c.requests, thumbnailRequest{path: path, done: done})
	c.cond.Signal()
	c.mu.Unlock()
}

func (c *thumbnailCache) worker() {
	for {
		c.mu.Lock()
		for len(c.requests) == 0 {
			c.cond.Wait()
		}
		last := len(c.requests) - 1
		req := c.requests[last]
		c.requests = c.requests[:last]
		c.mu.Unlock()

		if img := c.cached(req.path); img != nil {
			req.done(img)
			continue
		}

		img, err := decodeThumbnail(req.path, thumbnailSize)
		if err != nil {
			fyne.LogError("Failed to create thumbnail", err)
			continue
		}
		c.images.Store(req.path, img)
		req.done(img)
	}
}

func decodeThumbnail(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return scaleThumbnail(src, size), nil
}

// scaleThumbnail letterboxes src into a transparent size×size square.
func scaleThumbnail(src image.Image, size int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, fitInside(src.Bounds(), dst.Bounds()), src, src.Bounds(), draw.Over, nil)
	return dst
}

func isThumbnailable(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
