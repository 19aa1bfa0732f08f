package texture

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
)

// ErrDecode is wrapped by every error returned for an unreadable or undecodable texture file.
var ErrDecode = errors.New("texture decode failed")

// Callback receives a loaded texture, or the load error, on the GPU thread.
type Callback func(tex Texture2D, err error)

// Loader decodes texture files on a worker pool and uploads the results on the GPU thread.
type Loader interface {
	// Load queues path for decoding. callback runs from a later ProcessUploads call.
	//
	// Parameters:
	//   - path: the image file
	//   - callback: receives the texture or the error, may be nil
	Load(path string, callback Callback)

	// LoadSync decodes and uploads path on the calling thread.
	//
	// Parameters:
	//   - path: the image file
	//
	// Returns:
	//   - Texture2D: the texture
	//   - error: an error wrapping ErrDecode
	LoadSync(path string) (Texture2D, error)

	// ProcessUploads uploads every decoded image and runs its callback. Must be called on the GPU
	// thread, typically once per frame.
	//
	// Returns:
	//   - int: the number of callbacks run
	ProcessUploads() int

	// Pending returns the number of loads queued or decoded but not yet uploaded.
	//
	// Returns:
	//   - int: pending load count
	Pending() int

	// Close stops the worker pool. Pending loads are dropped.
	Close()
}

// decoded is the result of one decode task waiting for upload.
type decoded struct {
	path     string
	img      *common.DecodedImage
	err      error
	callback Callback
}

// loader is the implementation of the Loader interface.
type loader struct {
	device  gpu.Device
	logger  *slog.Logger
	fsys    fs.FS
	flipY   bool
	options []TextureBuilderOption

	workers     int
	pool        worker.DynamicWorkerPool
	nextTaskID  int
	outstanding int

	// mu guards ready, filled from worker goroutines.
	mu    sync.Mutex
	ready []decoded
}

var _ Loader = &loader{}

// NewLoader creates a loader with a decode worker pool.
//
// Parameters:
//   - device: the GPU device used for uploads
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the loader
func NewLoader(device gpu.Device, options ...LoaderBuilderOption) Loader {
	l := &loader{
		device:  device,
		logger:  logger.Core(),
		flipY:   true,
		workers: 2,
	}
	for _, opt := range options {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 64, time.Second)
	return l
}

func (l *loader) Load(path string, callback Callback) {
	l.outstanding++
	id := l.nextTaskID
	l.nextTaskID++
	l.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: path,
		Do: func() (any, error) {
			img, err := l.decode(path)
			l.mu.Lock()
			l.ready = append(l.ready, decoded{path: path, img: img, err: err, callback: callback})
			l.mu.Unlock()
			return img, err
		},
	})
}

func (l *loader) LoadSync(path string) (Texture2D, error) {
	img, err := l.decode(path)
	if err != nil {
		return nil, err
	}
	return l.upload(path, img), nil
}

func (l *loader) ProcessUploads() int {
	l.mu.Lock()
	ready := l.ready
	l.ready = nil
	l.mu.Unlock()

	for _, d := range ready {
		l.outstanding--
		if d.err != nil {
			l.logger.Error("texture load failed", "path", d.path, "error", d.err)
			if d.callback != nil {
				d.callback(nil, d.err)
			}
			continue
		}
		tex := l.upload(d.path, d.img)
		if d.callback != nil {
			d.callback(tex, nil)
		}
	}
	return len(ready)
}

func (l *loader) Pending() int {
	return l.outstanding
}

func (l *loader) Close() {
	l.pool.Stop()
}

func (l *loader) decode(path string) (*common.DecodedImage, error) {
	var (
		data []byte
		err  error
	)
	if l.fsys != nil {
		data, err = fs.ReadFile(l.fsys, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	img, err := common.DecodeImageBytes(data, l.flipY)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return img, nil
}

func (l *loader) upload(path string, img *common.DecodedImage) Texture2D {
	opts := append([]TextureBuilderOption{withPath(path)}, l.options...)
	tex := NewTexture2DFromImage(l.device, img, opts...)
	l.logger.Debug("texture uploaded", "path", path, "width", img.Width, "height", img.Height, "format", img.Format)
	return tex
}
