// Package texture resolves texture ids into decoded RGBA images on a
// background goroutine.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/leterax/go-panorama/pkg/panel"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxSize   = 4096
	DefaultQueueSize = 64
	placeholderID    = "placeholder"
)

var (
	ErrClosed      = errors.New("texture loader closed")
	ErrInvalidPath = errors.New("invalid texture path")
	ErrNotAFile    = errors.New("not a regular file")
)

// Status is the resolution state of a Handle.
type Status int

const (
	Pending Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Handle is a texture that may still be decoding.
type Handle struct {
	id   string
	done chan struct{}

	mu     sync.RWMutex
	status Status
	img    *image.RGBA
	err    error
}

func newHandle(id string) *Handle {
	return &Handle{id: id, done: make(chan struct{})}
}

func (h *Handle) ID() string { return h.id }

// Status reports whether the texture is still decoding, ready or failed.
func (h *Handle) Status() Status {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// Image returns the decoded image, or nil until the handle is Ready.
func (h *Handle) Image() *image.RGBA {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.img
}

// Err returns the decode error of a Failed handle.
func (h *Handle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Done is closed once the handle leaves Pending.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) resolve(img *image.RGBA, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != Pending {
		return
	}
	if err != nil {
		h.status = Failed
		h.err = err
	} else {
		h.status = Ready
		h.img = img
	}
	close(h.done)
}

// Options configures a Loader.
type Options struct {
	// FS is where texture ids are looked up. Nil selects the working
	// directory.
	FS fs.FS
	// MaxSize caps the longest side of a decoded image; larger images are
	// scaled down. Zero selects DefaultMaxSize.
	MaxSize int
	// QueueSize is the number of decode jobs that may wait for the worker.
	QueueSize int
	// FlipY stores rows bottom to top, as OpenGL expects.
	FlipY bool
}

// Loader implements panel.TextureLoader. LoadTexture checks the file exists
// and returns immediately; decoding happens on a single worker goroutine.
type Loader struct {
	opts        Options
	jobs        chan *Handle
	stopWorker  chan struct{}
	workerDone  chan struct{}
	placeholder *Handle

	mu      sync.Mutex
	handles map[string]*Handle
	closed  bool
}

// NewLoader starts a loader and its worker.
func NewLoader(opts Options) *Loader {
	if opts.FS == nil {
		opts.FS = os.DirFS(".")
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}

	l := &Loader{
		opts:        opts,
		jobs:        make(chan *Handle, opts.QueueSize),
		stopWorker:  make(chan struct{}),
		workerDone:  make(chan struct{}),
		placeholder: newPlaceholder(),
		handles:     make(map[string]*Handle),
	}

	go l.worker()

	return l
}

// LoadTexture queues id for decoding. Requesting the same id twice returns
// the same handle. An error means the file can never load.
func (l *Loader) LoadTexture(id string) (panel.TextureHandle, error) {
	h, err := l.Load(id)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Load is LoadTexture returning the concrete handle.
func (l *Loader) Load(id string) (*Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrClosed
	}
	if h, ok := l.handles[id]; ok {
		return h, nil
	}

	if !fs.ValidPath(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, id)
	}
	info, err := fs.Stat(l.opts.FS, id)
	if err != nil {
		return nil, fmt.Errorf("stat texture: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %q", ErrNotAFile, id)
	}

	h := newHandle(id)
	l.handles[id] = h

	l.jobs <- h
	return h, nil
}

// Placeholder returns a ready 1×1 mid-grey texture.
func (l *Loader) Placeholder() panel.TextureHandle {
	return l.placeholder
}

// Close stops the worker. Handles still pending become Failed with
// ErrClosed.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.stopWorker)
	l.mu.Unlock()

	<-l.workerDone

	for {
		select {
		case h := <-l.jobs:
			h.resolve(nil, ErrClosed)
		default:
			return
		}
	}
}

func (l *Loader) worker() {
	defer close(l.workerDone)

	for {
		select {
		case <-l.stopWorker:
			return
		case h := <-l.jobs:
			img, err := Decode(l.opts.FS, h.id, l.opts.MaxSize, l.opts.FlipY)
			if err != nil {
				slog.Warn("Texture decode failed", "texture", h.id, "error", err)
			} else {
				slog.Debug("Texture decoded", "texture", h.id, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
			}
			h.resolve(img, err)
		}
	}
}

// Decode reads and decodes one image from fsys, scaling it down so neither
// side exceeds maxSize.
func Decode(fsys fs.FS, name string, maxSize int, flipY bool) (*image.RGBA, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	b := img.Bounds()
	if w, h := fitWithin(b.Dx(), b.Dy(), maxSize); w != b.Dx() || h != b.Dy() {
		slog.Debug("Scaling texture", "texture", name, "format", format, "from", b.Size(), "to", image.Pt(w, h))
		img = transform.Resize(img, w, h, transform.Linear)
	}

	if flipY {
		return transform.FlipV(img), nil
	}
	return clone.AsRGBA(img), nil
}

// fitWithin scales w×h down, preserving aspect, so the longest side is at
// most maxSize. Sizes already within bounds are returned unchanged.
func fitWithin(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}

func newPlaceholder() *Handle {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	h := newHandle(placeholderID)
	h.resolve(img, nil)
	return h
}
