// Package audio plays short feedback tones for paint actions.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/paint2d/constants"
)

const sampleRate = beep.SampleRate(constants.SampleRate)

// SoundManager plays paint and erase clicks through a shared mixer
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager; it is silent until Initialize succeeds
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constants.SpeakerBuffer)); err != nil {
		return errors.Wrap(err, "init speaker")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences pending sounds and closes the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// Paint plays the paint click
func (sm *SoundManager) Paint() {
	sm.play(constants.ClickFrequency)
}

// Erase plays the lower erase click
func (sm *SoundManager) Erase() {
	sm.play(constants.EraseFrequency)
}

func (sm *SoundManager) play(freq float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	click, err := clickStreamer(sampleRate, freq, constants.ClickDuration)
	if err != nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(click)
	speaker.Unlock()
}

// clickStreamer returns a finite, attenuated sine tone
func clickStreamer(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, errors.Wrapf(err, "sine tone %.0fHz", freq)
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(d), sine),
		Base:     2,
		Volume:   -2,
	}, nil
}
