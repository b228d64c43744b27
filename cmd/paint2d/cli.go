package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/paint2d/constants"
)

// options carries the parsed command line
type options struct {
	backend string
	color   string
	palette string
	status  bool
	poll    time.Duration
	stepX   int
	stepY   int
	fastX   int
	fastY   int
	sound   bool
	debug   bool
}

// usageError marks errors caused by bad invocation rather than runtime failure
type usageError struct {
	Err error
}

func (e usageError) Error() string { return e.Err.Error() }
func (e usageError) Unwrap() error { return e.Err }

// paintFunc starts the painter with parsed options
type paintFunc func(ctx context.Context, opts options) error

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	return execute(ctx, args, stdout, stderr, runPaint)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer, paint paintFunc) error {
	root := newRootCmd(stdout, stderr, paint)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		var uerr usageError
		if errors.As(err, &uerr) {
			return err
		}
		// Cobra reports unknown flags and stray arguments as plain errors
		if isCobraUsageError(err) {
			return usageError{Err: err}
		}
		return err
	}
	return nil
}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command ") ||
		strings.Contains(msg, "unknown flag: ") ||
		strings.Contains(msg, "unknown shorthand flag") ||
		strings.Contains(msg, "accepts ") ||
		strings.Contains(msg, "invalid argument")
}

func newRootCmd(stdout, stderr io.Writer, paint paintFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "paint2d",
		Short: "Paint colored cells on a full-screen terminal canvas",
		Long: "paint2d turns the terminal window into a canvas. Move the cursor with the arrow keys or hjkl,\n" +
			"paint with space or enter, erase with x, pick colors with 1-9 or tab, and quit with q or esc.\n" +
			"Shift+arrows and HJKL move in larger steps. The canvas follows the window size.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return usageError{Err: err}
			}
			return paint(cmd.Context(), opts)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{Err: err}
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.backend, "backend", "tcell", "terminal backend: tcell or ansi")
	flags.StringVar(&opts.color, "color", "auto", "ansi backend color mode: auto, truecolor or 256")
	flags.StringVar(&opts.palette, "palette", "", "comma separated hex colors, up to 9 (default: built-in palette)")
	flags.BoolVar(&opts.status, "status", true, "reserve the bottom row for the status bar")
	flags.DurationVar(&opts.poll, "poll", constants.PollTimeout, "input poll timeout")
	flags.IntVar(&opts.stepX, "step-x", constants.StepHorizontal, "horizontal step per key press")
	flags.IntVar(&opts.stepY, "step-y", constants.StepVertical, "vertical step per key press")
	flags.IntVar(&opts.fastX, "fast-x", constants.FastStepHorizontal, "horizontal step with shift")
	flags.IntVar(&opts.fastY, "fast-y", constants.FastStepVertical, "vertical step with shift")
	flags.BoolVar(&opts.sound, "sound", false, "play a click on paint and erase")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "write debug logs to "+constants.LogDir+"/"+constants.LogFileName)

	return cmd
}

// validate checks flag values that do not need a terminal
func (o options) validate() error {
	switch o.backend {
	case "tcell", "ansi":
	default:
		return fmt.Errorf("unknown backend %q (want tcell or ansi)", o.backend)
	}
	if o.poll < constants.MinPollTimeout || o.poll > constants.MaxPollTimeout {
		return fmt.Errorf("poll timeout %v out of range [%v, %v]", o.poll, constants.MinPollTimeout, constants.MaxPollTimeout)
	}
	return nil
}
