package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/h2non/filetype"
	"golang.org/x/sync/singleflight"
)

// sniffLen is how many leading bytes are inspected to detect the image format.
const sniffLen = 261

var (
	// ErrNotImage is returned when a source's content is not a recognised image format.
	ErrNotImage = errors.New("loader: source is not an image")

	// ErrClosed is returned by loads issued after Close.
	ErrClosed = errors.New("loader: closed")

	// ErrNotWatchable is returned by Watch for remote sources.
	ErrNotWatchable = errors.New("loader: only local files can be watched")
)

// TextureCallback receives the result of an asynchronous load.
type TextureCallback func(src string, tex common.TextureStagingData, err error)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	cache  map[string]common.TextureStagingData
	group  singleflight.Group
	pool   worker.DynamicWorkerPool
	taskID atomic.Int64
	closed atomic.Bool

	file    loaderBackend
	http    loaderBackend
	workers int
	timeout time.Duration
	maxDim  int
	log     logger.Logger
}

// Loader fetches and decodes equirectangular textures from local files or http(s) URLs.
// Decoded textures are cached by source string, and concurrent loads of the same source share
// one fetch. Asynchronous loads run on a small worker pool so the UI thread never blocks.
type Loader interface {
	// LoadTexture fetches, sniffs and decodes src, returning the cached result when present.
	// Images larger than the configured maximum edge are downscaled.
	//
	// Parameters:
	//   - ctx: cancels the fetch
	//   - src: a local path, file:// URL, or http(s) URL
	//
	// Returns:
	//   - common.TextureStagingData: the RGBA pixels
	//   - error: error if the source cannot be read, is not an image, or fails to decode
	LoadTexture(ctx context.Context, src string) (common.TextureStagingData, error)

	// LoadTextureAsync runs LoadTexture on the worker pool and reports through done.
	// done runs on a worker goroutine, never on the caller's.
	//
	// Parameters:
	//   - src: the texture source
	//   - done: called exactly once with the result
	LoadTextureAsync(src string, done TextureCallback)

	// Get retrieves a cached texture.
	//
	// Parameters:
	//   - src: the cache key used to load it
	//
	// Returns:
	//   - common.TextureStagingData: the cached texture
	//   - bool: true if present
	Get(src string) (common.TextureStagingData, bool)

	// Invalidate drops src from the cache so the next load reads it again.
	//
	// Parameters:
	//   - src: the cache key
	Invalidate(src string)

	// Watch calls onChange after the local file behind src is written or replaced.
	// The cache entry is invalidated before onChange runs.
	//
	// Parameters:
	//   - src: a local path or file:// URL
	//   - onChange: called on the watcher goroutine
	//
	// Returns:
	//   - func(): stops watching
	//   - error: ErrNotWatchable for remote sources, or a watcher setup error
	Watch(src string, onChange func()) (func(), error)

	// Close stops the worker pool. Loads issued afterwards fail with ErrClosed.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a Loader with its worker pool started.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:      sync.RWMutex{},
		cache:   make(map[string]common.TextureStagingData),
		file:    fileBackend{},
		workers: 2,
		timeout: 30 * time.Second,
		maxDim:  common.MaxTextureDimension,
	}
	for _, option := range options {
		option(l)
	}
	if l.http == nil {
		l.http = httpBackend{client: defaultHTTPClient(l.timeout)}
	}
	l.log = logger.OrNop(l.log)
	l.pool = worker.NewDynamicWorkerPool(l.workers, 16, 1*time.Second)
	return l
}

func (l *loader) LoadTexture(ctx context.Context, src string) (common.TextureStagingData, error) {
	if l.closed.Load() {
		return common.TextureStagingData{}, ErrClosed
	}
	if tex, ok := l.Get(src); ok {
		return tex, nil
	}

	v, err, shared := l.group.Do(src, func() (any, error) {
		return l.fetch(ctx, src)
	})
	if err != nil {
		return common.TextureStagingData{}, err
	}
	if shared {
		l.log.Debugf("shared in-flight load of %s", src)
	}
	return v.(common.TextureStagingData), nil
}

func (l *loader) LoadTextureAsync(src string, done TextureCallback) {
	if l.closed.Load() {
		done(src, common.TextureStagingData{}, ErrClosed)
		return
	}
	id := int(l.taskID.Add(1))
	l.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: src,
		Do: func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
			defer cancel()
			tex, err := l.LoadTexture(ctx, src)
			done(src, tex, err)
			return tex, err
		},
	})
}

func (l *loader) Get(src string) (common.TextureStagingData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tex, ok := l.cache[src]
	return tex, ok
}

func (l *loader) Invalidate(src string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, src)
}

func (l *loader) Watch(src string, onChange func()) (func(), error) {
	if ClassifySource(src) != SourceFile {
		return nil, ErrNotWatchable
	}
	path, err := LocalPath(src)
	if err != nil {
		return nil, err
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file rather than write it in place.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					l.Invalidate(src)
					l.log.Infof("texture %s changed", src)
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.log.Warnf("watching %s: %v", src, err)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			w.Close()
		})
	}, nil
}

func (l *loader) Close() {
	if l.closed.Swap(true) {
		return
	}
	l.pool.Stop()
}

// fetch reads, sniffs and decodes src, then caches the result.
func (l *loader) fetch(ctx context.Context, src string) (common.TextureStagingData, error) {
	backend := l.file
	if ClassifySource(src) == SourceHTTP {
		backend = l.http
	}

	start := time.Now()
	rc, err := backend.Open(ctx, src)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to open texture %s: %w", src, err)
	}
	defer rc.Close()

	br := bufio.NewReaderSize(rc, 64*1024)
	head, err := br.Peek(sniffLen)
	if err != nil && len(head) == 0 {
		return common.TextureStagingData{}, fmt.Errorf("failed to read texture %s: %w", src, err)
	}
	if !filetype.IsImage(head) {
		return common.TextureStagingData{}, fmt.Errorf("%s: %w", src, ErrNotImage)
	}

	tex, err := common.DecodeTexture(br, l.maxDim)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode texture %s: %w", src, err)
	}

	l.mu.Lock()
	l.cache[src] = tex
	l.mu.Unlock()

	l.log.Debugf("loaded %s (%dx%d) in %s", src, tex.Width, tex.Height, time.Since(start))
	return tex, nil
}
