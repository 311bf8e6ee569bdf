// Package layout computes the mount container geometry and camera framing for a viewport.
package layout

import (
	"fmt"
	"strings"
)

// Mode identifies a layout variant.
type Mode int

const (
	ModeExplicitSize Mode = iota
	ModeExplicitSizeWithPosition
	ModeFullscreen
	ModeResponsiveSquare
)

func (m Mode) String() string {
	switch m {
	case ModeExplicitSize:
		return "explicit"
	case ModeExplicitSizeWithPosition:
		return "explicit-positioned"
	case ModeFullscreen:
		return "fullscreen"
	case ModeResponsiveSquare:
		return "responsive-square"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Config is the layout variant chosen once at attach time. It is one of ExplicitSize,
// ExplicitSizeWithPosition, Fullscreen or ResponsiveSquare.
type Config interface {
	Mode() Mode
	isConfig()
}

// ExplicitSize mounts the viewport at exactly Width x Height pixels in normal flow.
type ExplicitSize struct {
	Width, Height float64
}

// ExplicitSizeWithPosition mounts the viewport at Width x Height pixels, absolutely positioned
// at (X, Y) when either coordinate is given.
type ExplicitSizeWithPosition struct {
	Width, Height float64
	X, Y          *float64
}

// Fullscreen fills the whole window on the top stacking layer.
type Fullscreen struct{}

// ResponsiveSquare mounts a horizontally centred square whose side is the smaller window edge.
type ResponsiveSquare struct{}

func (ExplicitSize) Mode() Mode             { return ModeExplicitSize }
func (ExplicitSizeWithPosition) Mode() Mode { return ModeExplicitSizeWithPosition }
func (Fullscreen) Mode() Mode               { return ModeFullscreen }
func (ResponsiveSquare) Mode() Mode         { return ModeResponsiveSquare }

func (ExplicitSize) isConfig()             {}
func (ExplicitSizeWithPosition) isConfig() {}
func (Fullscreen) isConfig()               {}
func (ResponsiveSquare) isConfig()         {}

// Strategy is the policy used when no explicit size is configured. The two policies are
// separate selectable behaviors, never blended.
type Strategy int

const (
	// StrategyFullscreen falls back to Fullscreen.
	StrategyFullscreen Strategy = iota
	// StrategyResponsiveSquare falls back to ResponsiveSquare.
	StrategyResponsiveSquare
)

// Config returns the non-explicit layout this strategy selects.
func (s Strategy) Config() Config {
	if s == StrategyResponsiveSquare {
		return ResponsiveSquare{}
	}
	return Fullscreen{}
}

func (s Strategy) String() string {
	if s == StrategyResponsiveSquare {
		return "responsive-square"
	}
	return "fullscreen"
}

// ParseStrategy maps "fullscreen" or "responsive-square" (case-insensitive, "square" accepted)
// to a Strategy.
//
// Parameters:
//   - name: the strategy name
//
// Returns:
//   - Strategy: the parsed strategy
//   - error: error if the name is not recognized
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fullscreen":
		return StrategyFullscreen, nil
	case "responsive-square", "responsive", "square":
		return StrategyResponsiveSquare, nil
	default:
		return StrategyFullscreen, fmt.Errorf("unknown layout strategy %q", name)
	}
}
