// Command paint2d is a full-screen terminal painting surface.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/paint2d/core"
)

func main() {
	// Panic Recovery: the registered restore hook resets the terminal before the report
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	// SIGINT/SIGTERM cancel the context, which the engine treats as an interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(exitCode(err, os.Stderr))
}

// exitCode reports err on w and maps it to the process status: 0 ok, 2 usage, 1 anything else
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(w, "paint2d: %v\n", uerr.Err)
		fmt.Fprintln(w, "Run 'paint2d --help' for usage.")
		return 2
	}
	fmt.Fprintf(w, "paint2d: %v\n", err)
	return 1
}
