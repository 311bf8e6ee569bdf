package scheduler

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/logger"
	"github.com/Carmen-Shannon/oxy-globe/engine/profiler"
)

// SchedulerOption is a functional option for configuring a Scheduler.
type SchedulerOption func(*scheduler)

// WithSpinner sets the state advanced by idle spin each frame.
//
// Parameters:
//   - sp: the spinner (usually the viewport state)
//
// Returns:
//   - SchedulerOption: option function to apply
func WithSpinner(sp Spinner) SchedulerOption {
	return func(s *scheduler) {
		s.spinner = sp
	}
}

// WithDragSource sets who is asked whether a drag is in progress before spinning.
//
// Parameters:
//   - d: the drag source (usually the orbit controller)
//
// Returns:
//   - SchedulerOption: option function to apply
func WithDragSource(d DragSource) SchedulerOption {
	return func(s *scheduler) {
		s.drag = d
	}
}

// WithDrawCallback sets the function that draws one frame.
//
// Parameters:
//   - draw: called once per iteration after the spin step
//
// Returns:
//   - SchedulerOption: option function to apply
func WithDrawCallback(draw func()) SchedulerOption {
	return func(s *scheduler) {
		s.draw = draw
	}
}

// WithProfiler ticks p once per completed iteration.
//
// Parameters:
//   - p: the profiler (nil disables profiling)
//
// Returns:
//   - SchedulerOption: option function to apply
func WithProfiler(p *profiler.Profiler) SchedulerOption {
	return func(s *scheduler) {
		s.profiler = p
	}
}

// WithLogger sets the logger used for recovered panics.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - SchedulerOption: option function to apply
func WithLogger(l logger.Logger) SchedulerOption {
	return func(s *scheduler) {
		s.log = l
	}
}
