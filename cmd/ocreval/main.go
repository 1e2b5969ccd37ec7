package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Command completed
	ExitExportFailed = 1 // Every figure in an export failed
	ExitError        = 2 // Configuration, input or runtime error
)

// ExportFailureError indicates that an export ran but no figure could be
// written. Partial failures are reported without an error.
type ExportFailureError struct {
	Message string
}

func (e *ExportFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var exportErr *ExportFailureError
		if errors.As(err, &exportErr) {
			os.Exit(ExitExportFailed)
		}

		os.Exit(ExitError)
	}
}
