package constants

import "time"

// Main Loop Timing
const (
	// PollTimeout bounds the input wait per loop iteration (~60 FPS redraw ceiling)
	PollTimeout = 16 * time.Millisecond

	// MinPollTimeout keeps the loop from busy-spinning on a misconfigured timeout
	MinPollTimeout = 1 * time.Millisecond

	// MaxPollTimeout keeps the loop responsive to the asynchronous stop flag
	MaxPollTimeout = 500 * time.Millisecond
)

// Cursor Movement Steps (cells per key press)
const (
	// StepHorizontal is the normal horizontal step
	StepHorizontal = 1

	// StepVertical is the normal vertical step
	StepVertical = 1

	// FastStepHorizontal is the accelerated (Shift / uppercase) horizontal step
	FastStepHorizontal = 8

	// FastStepVertical is the accelerated vertical step, smaller since cells are taller than wide
	FastStepVertical = 4
)

// Logging
const (
	// LogDir is the directory debug logs are written to, relative to the working directory
	LogDir = "logs"

	// LogFileName is the active debug log file
	LogFileName = "paint2d.log"

	// MaxLogSize triggers rotation of the active log file at startup (10 MiB)
	MaxLogSize = 10 * 1024 * 1024
)

// Audio Feedback
const (
	// SampleRate is the speaker sample rate
	SampleRate = 44100

	// SpeakerBuffer is the speaker buffer length
	SpeakerBuffer = 100 * time.Millisecond

	// ClickFrequency is the paint click tone in Hz
	ClickFrequency = 880.0

	// EraseFrequency is the erase click tone in Hz
	EraseFrequency = 440.0

	// ClickDuration is the length of a click tone
	ClickDuration = 30 * time.Millisecond
)
