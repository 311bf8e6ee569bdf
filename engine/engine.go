package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/engine/layout"
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/viewport"
	"github.com/Carmen-Shannon/oxy-globe/engine/window"
)

var (
	// ErrNoWindow is returned by Run when the engine was built without a window.
	ErrNoWindow = errors.New("engine: no window")

	// ErrAlreadyRunning is returned by Run when the engine has already been started.
	ErrAlreadyRunning = errors.New("engine: already running")
)

// engine implements the Engine interface.
// Owns the window loop and tears down the viewport, render engine and window when it exits.
type engine struct {
	mu *sync.Mutex

	window       window.Window
	viewport     viewport.Viewport
	renderEngine renderer.Engine
	attrs        layout.Attributes
	log          logger.Logger

	now          func() time.Time
	tickRate     time.Duration
	lastTick     time.Time
	tickCallback func(deltaTime float32)

	running bool
	quit    atomic.Bool
}

// Engine runs one globe viewport inside a desktop window.
// Run attaches the viewport to the window, drives the window loop until the window closes or Quit
// is called, then detaches the viewport and releases the render engine and window.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Viewport returns the hosted viewport, or nil if none was configured.
	//
	// Returns:
	//   - viewport.Viewport: the viewport instance
	Viewport() viewport.Viewport

	// SetTickRate sets how often the tick callback runs, in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called on the window thread at the tick rate.
	//
	// Parameters:
	//   - callback: function receiving the time since the previous tick in seconds
	SetTickCallback(callback func(deltaTime float32))

	// Run attaches the viewport and blocks until the window loop exits.
	//
	// Returns:
	//   - error: ErrNoWindow, ErrAlreadyRunning, or the attach failure
	Run() error

	// Quit asks the window loop to stop. Safe to call from any goroutine and more than once.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, viewport, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:       &sync.Mutex{},
		now:      time.Now,
		tickRate: time.Second / 60,
	}
	for _, opt := range options {
		opt(e)
	}
	e.log = logger.OrNop(e.log)
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Viewport() viewport.Viewport {
	return e.viewport
}

func (e *engine) SetTickRate(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickRate = tickInterval(fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.running = true
	e.lastTick = e.now()
	e.mu.Unlock()

	defer e.shutdown()

	if e.viewport != nil {
		if err := e.viewport.Attach(e.window, e.attrs); err != nil {
			return fmt.Errorf("failed to attach viewport: %w", err)
		}
		e.log.Infof("viewport %s attached (%s)", e.viewport.ID(), e.viewport.Config().Mode())
	}

	e.window.SetUpdateCallback(e.update)
	if e.quit.Load() {
		return nil
	}
	e.window.ProcessMessages()
	return nil
}

func (e *engine) Quit() {
	if e.quit.CompareAndSwap(false, true) && e.window != nil {
		e.window.RequestClose()
	}
}

// update runs once per window loop iteration.
func (e *engine) update() {
	e.mu.Lock()
	now := e.now()
	elapsed := now.Sub(e.lastTick)
	if elapsed < e.tickRate {
		e.mu.Unlock()
		return
	}
	e.lastTick = now
	cb := e.tickCallback
	e.mu.Unlock()

	if cb != nil {
		cb(float32(elapsed.Seconds()))
	}
}

func (e *engine) shutdown() {
	e.window.SetUpdateCallback(nil)
	if e.viewport != nil {
		e.viewport.Detach()
	}
	if e.renderEngine != nil {
		e.renderEngine.Close()
	}
	if err := e.window.Close(); err != nil {
		e.log.Debugf("window close: %v", err)
	}
}

func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
