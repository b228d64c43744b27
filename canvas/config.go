package canvas

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/paint2d/constants"
	"github.com/lixenwraith/paint2d/palette"
)

// Feedback receives notifications of canvas mutations, e.g. to play a sound.
// Implementations must not block the input loop.
type Feedback interface {
	Paint()
	Erase()
}

type silentFeedback struct{}

func (silentFeedback) Paint() {}
func (silentFeedback) Erase() {}

// Config holds the engine tunables
type Config struct {
	// StepX and StepY are the per-keypress movement distances
	StepX int
	StepY int

	// FastStepX and FastStepY are used with the accelerated modifier
	FastStepX int
	FastStepY int

	// PollTimeout bounds each input wait, clamped to [MinPollTimeout, MaxPollTimeout]
	PollTimeout time.Duration

	// ShowStatus reserves the bottom row for the status bar
	ShowStatus bool

	Palette  palette.Palette
	Feedback Feedback
}

// DefaultConfig returns the default movement steps, poll timeout and palette with the status bar on
func DefaultConfig() Config {
	return Config{
		StepX:       constants.StepHorizontal,
		StepY:       constants.StepVertical,
		FastStepX:   constants.FastStepHorizontal,
		FastStepY:   constants.FastStepVertical,
		PollTimeout: constants.PollTimeout,
		ShowStatus:  true,
		Palette:     palette.Default(),
	}
}

// Validate rejects negative steps and non-positive poll timeouts
func (c Config) Validate() error {
	steps := []struct {
		name  string
		value int
	}{
		{"step-x", c.StepX},
		{"step-y", c.StepY},
		{"fast-x", c.FastStepX},
		{"fast-y", c.FastStepY},
	}
	for _, s := range steps {
		if s.value < 0 {
			return errors.Errorf("%s must be non-negative, got %d", s.name, s.value)
		}
	}
	if c.PollTimeout <= 0 {
		return errors.Errorf("poll timeout must be positive, got %v", c.PollTimeout)
	}
	return nil
}

// reservedRows returns the number of viewport rows not available to the canvas
func (c Config) reservedRows() int {
	if c.ShowStatus {
		return constants.StatusRows
	}
	return 0
}

func (c Config) pollTimeout() time.Duration {
	return min(max(c.PollTimeout, constants.MinPollTimeout), constants.MaxPollTimeout)
}
