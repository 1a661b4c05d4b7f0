package errors

import (
	"fmt"
	"os"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for the command-line interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{Verbose: verbose}
}

// HandleError prints the error to stderr and returns it unchanged so the
// caller can still decide the process exit code
func (h *CLIErrorHandler) HandleError(err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintln(os.Stderr, h.FormatError(err))
	return err
}

// FormatError renders an error for terminal display. Verbose mode appends
// the error code, category and any attached context.
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	msg := fmt.Sprintf("Error: %s", appErr.Message)
	if appErr.Details != "" {
		msg += fmt.Sprintf("\n  %s", appErr.Details)
	}

	if h.Verbose {
		msg += fmt.Sprintf("\n  code: %s  category: %s  severity: %s",
			appErr.Code, appErr.Category, appErr.Severity)
		for key, value := range appErr.Context {
			msg += fmt.Sprintf("\n  %s: %v", key, value)
		}
		if appErr.Cause != nil {
			msg += fmt.Sprintf("\n  cause: %v", appErr.Cause)
		}
	}

	return msg
}
