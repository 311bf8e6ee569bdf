// Package scheduler drives the per-frame spin and draw loop on top of host frame requests.
package scheduler

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/profiler"
)

// FrameRequest is an opaque handle to a pending frame callback. Zero means none.
type FrameRequest uint64

// FrameRequester is the host's display-refresh hook. The host invokes each requested callback
// once, on its UI thread, at its own cadence.
type FrameRequester interface {
	// RequestFrame schedules callback for the next display refresh.
	//
	// Parameters:
	//   - callback: the function to run once
	//
	// Returns:
	//   - FrameRequest: a handle for CancelFrame
	RequestFrame(callback func()) FrameRequest

	// CancelFrame drops a pending request. Unknown or already-fired handles are ignored.
	//
	// Parameters:
	//   - req: the handle returned by RequestFrame
	CancelFrame(req FrameRequest)
}

// Spinner advances idle rotation once per frame.
type Spinner interface {
	// Spin applies one frame of idle rotation unless dragging.
	Spin(dragging bool) bool
}

// DragSource reports whether the user is currently dragging.
type DragSource interface {
	IsDragging() bool
}

// Scheduler is a self-resubmitting frame chain. Each iteration applies idle spin when no drag
// is active, draws once, and requests the next frame. Spin speed is in radians per iteration,
// not per second: the host's refresh rate is not assumed.
type Scheduler interface {
	// Start begins the frame chain. No-op when already running.
	Start()

	// Stop ends the frame chain and cancels the outstanding request. Iterations that still
	// fire after Stop do nothing. No-op when not running.
	Stop()

	// Running reports whether the chain is active.
	Running() bool

	// Frames returns the number of completed iterations since construction.
	Frames() uint64
}

type scheduler struct {
	mu *sync.Mutex

	requester FrameRequester
	spinner   Spinner
	drag      DragSource
	draw      func()
	profiler  *profiler.Profiler
	log       logger.Logger

	running    bool
	generation uint64
	pending    FrameRequest
	frames     uint64
}

var _ Scheduler = &scheduler{}

// NewScheduler creates a stopped scheduler on top of the host's frame requests.
//
// Parameters:
//   - requester: the host frame hook (must not be nil)
//   - options: functional options to configure the scheduler
//
// Returns:
//   - Scheduler: the new scheduler
func NewScheduler(requester FrameRequester, options ...SchedulerOption) Scheduler {
	if requester == nil {
		panic("scheduler: NewScheduler requires a non-nil FrameRequester")
	}
	s := &scheduler{
		mu:        &sync.Mutex{},
		requester: requester,
	}
	for _, option := range options {
		option(s)
	}
	s.log = logger.OrNop(s.log)
	return s
}

func (s *scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	s.submit(gen)
}

func (s *scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	pending := s.pending
	s.pending = 0
	s.mu.Unlock()

	if pending != 0 {
		s.requester.CancelFrame(pending)
	}
}

func (s *scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// submit requests the next iteration for generation gen if it is still current.
func (s *scheduler) submit(gen uint64) {
	req := s.requester.RequestFrame(func() { s.tick(gen) })

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running && s.generation == gen {
		s.pending = req
		return
	}
	// Stopped between the request and now.
	s.requester.CancelFrame(req)
}

// current reports whether generation gen is the running chain.
func (s *scheduler) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && s.generation == gen
}

func (s *scheduler) tick(gen uint64) {
	if !s.current(gen) {
		return
	}
	s.mu.Lock()
	s.pending = 0
	s.mu.Unlock()

	// Recover from panics in the draw callback so a broken frame stops this viewport
	// instead of the host's UI thread.
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("frame loop recovered from panic, stopping: %v", r)
			s.Stop()
		}
	}()

	if s.spinner != nil {
		s.spinner.Spin(s.drag != nil && s.drag.IsDragging())
	}
	if s.draw != nil {
		s.draw()
	}

	s.mu.Lock()
	s.frames++
	s.mu.Unlock()
	if s.profiler != nil {
		s.profiler.Tick()
	}

	if s.current(gen) {
		s.submit(gen)
	}
}
