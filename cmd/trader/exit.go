package main

import (
	"fmt"
	"io"

	"github.com/rickgao/emoji-trader/internal/failure"
)

// Process exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUnavailable = 69 // EX_UNAVAILABLE
	exitInterrupted = 130
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case failure.IsCancelled(err):
		return exitInterrupted
	case failure.HasCode(err, failure.CodeConnectivityFailed):
		return exitUnavailable
	default:
		return exitFailure
	}
}

// reportError prints err unless it is nil or an interrupt; an interrupted run
// is a normal shutdown and is only logged.
func reportError(w io.Writer, err error) {
	if err == nil || failure.IsCancelled(err) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
