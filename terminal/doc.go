// Package terminal provides the Terminal capability the paint engine draws through.
//
// Two backends implement it:
//   - Tcell: tcell/v2 screen (default), portable, handles terminfo and diffing
//   - ANSI: direct escape sequences with raw stdin parsing and SIGWINCH resize,
//     true color (24-bit) or 256-color palette output
//
// Both deliver input as Event values in arrival order and expose the same
// minimal output primitives (move, write, colors, clear, flush).
package terminal
