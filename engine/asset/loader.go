package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-postfx/common"
	"golang.org/x/image/draw"
)

// taskCount is an atomic counter used to generate unique task IDs for the worker pool.
var taskCount atomic.Int64

// Result is the outcome of one asset fetch, delivered to the owner's
// continuation off the worker pool.
type Result struct {
	Name    string
	Staging *common.TextureStagingData
	Err     error
}

// loaderImpl is the implementation of the Loader interface.
type loaderImpl struct {
	pool   worker.DynamicWorkerPool
	maxDim int
}

// Loader fetches image assets off the caller's goroutine on a shared worker
// pool, decoding them into RGBA staging pixels ready for GPU upload. Images
// larger than the configured maximum dimension are rescaled.
type Loader interface {
	// Fetch reads and decodes the image at the given path on a pool worker
	// and calls deliver with the result. deliver runs on the worker
	// goroutine; callers that need frame-boundary timing should queue the
	// result and apply it on their own tick.
	//
	// Parameters:
	//   - name: the asset name reported in the result
	//   - path: the image file path
	//   - deliver: the continuation receiving the result
	Fetch(name, path string, deliver func(Result))
}

var _ Loader = &loaderImpl{}

// NewLoader creates a Loader with its own worker pool.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the newly created loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loaderImpl{
		maxDim: 2048,
	}
	workers := 2
	for _, option := range options {
		option(l, &workers)
	}
	// Queue size of 256 gives plenty of headroom for gate asset batches.
	l.pool = worker.NewDynamicWorkerPool(workers, 256, 1*time.Second)
	return l
}

func (l *loaderImpl) Fetch(name, path string, deliver func(Result)) {
	l.pool.SubmitTask(worker.Task{
		ID: int(taskCount.Add(1)),
		Do: func() (any, error) {
			staging, err := l.loadImage(path)
			deliver(Result{Name: name, Staging: staging, Err: err})
			return nil, err
		},
	})
}

// loadImage reads, decodes, and rescales one image file into staging pixels.
func (l *loaderImpl) loadImage(path string) (*common.TextureStagingData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %q: %w", path, err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode asset %q: %w", path, err)
	}

	bounds := decoded.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > l.maxDim || height > l.maxDim {
		scale := float64(l.maxDim) / float64(max(width, height))
		width = max(int(float64(width)*scale), 1)
		height = max(int(float64(height)*scale), 1)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), decoded, bounds, draw.Src, nil)

	return &common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(width),
		Height: uint32(height),
	}, nil
}
