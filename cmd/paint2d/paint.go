package main

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/lixenwraith/paint2d/audio"
	"github.com/lixenwraith/paint2d/canvas"
	"github.com/lixenwraith/paint2d/core"
	"github.com/lixenwraith/paint2d/palette"
	"github.com/lixenwraith/paint2d/terminal"
)

// runPaint wires terminal, audio and engine together and runs until quit or interrupt
func runPaint(ctx context.Context, opts options) error {
	cfg, err := buildConfig(opts)
	if err != nil {
		return usageError{Err: err}
	}

	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("paint2d: starting, backend=%s", opts.backend)

	term, restore, err := openTerminal(opts)
	if err != nil {
		return err
	}
	core.SetCrashRestore(restore)
	defer core.SetCrashRestore(nil)

	if opts.sound {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			log.Printf("paint2d: audio unavailable: %v (continuing without sound)", err)
		} else {
			defer sm.Cleanup()
			cfg.Feedback = sm
		}
	}

	engine, err := canvas.NewEngine(term, cfg)
	if err != nil {
		return err
	}
	if err := engine.Run(ctx); err != nil {
		return err
	}
	log.Printf("paint2d: exited")
	return nil
}

// buildConfig maps options onto the engine config
func buildConfig(opts options) (canvas.Config, error) {
	cfg := canvas.DefaultConfig()

	p, err := palette.Parse(opts.palette)
	if err != nil {
		return cfg, err
	}
	cfg.Palette = p
	cfg.ShowStatus = opts.status
	cfg.PollTimeout = opts.poll
	cfg.StepX, cfg.StepY = opts.stepX, opts.stepY
	cfg.FastStepX, cfg.FastStepY = opts.fastX, opts.fastY

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openTerminal creates the selected backend and the restore hook used if the process crashes
func openTerminal(opts options) (terminal.Terminal, func(), error) {
	switch opts.backend {
	case "ansi":
		mode, err := terminal.ParseColorMode(opts.color)
		if err != nil {
			return nil, nil, usageError{Err: err}
		}
		term, err := terminal.OpenANSI(mode)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open ansi terminal")
		}
		log.Printf("paint2d: ansi color mode %s", mode)
		return term, func() { terminal.EmergencyReset(os.Stdout) }, nil

	default:
		term, err := terminal.NewTcell()
		if err != nil {
			return nil, nil, err
		}
		screen := term.Screen()
		return term, func() { screen.Fini() }, nil
	}
}
