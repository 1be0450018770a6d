package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsicoop/ratings-anchor-go/pkg/anchor"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected request or MISMATCH
	ExitCommandError = 2 // Bad arguments, config or an unreachable ledger
)

// Error codes for failures that do not come from the anchor package.
const (
	ErrCodeUsage  = "usage-error"
	ErrCodeConfig = "config-error"
	ErrCodeInput  = "input-error"
	ErrCodeLedger = "ledger-error"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// ExitError are command errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// textRenderer is implemented by results with a human readable form.
type textRenderer interface {
	renderText(w io.Writer)
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	return f.write("ok", data, nil)
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	return f.write("error", nil, &CLIError{Code: code, Message: message})
}

func (f *OutputFormatter) write(status string, data any, cliErr *CLIError) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: status, Data: data, Error: cliErr})
	}

	if data != nil {
		if renderer, ok := data.(textRenderer); ok {
			renderer.renderText(f.Writer)
		} else {
			fmt.Fprintln(f.Writer, data)
		}
	}
	if cliErr != nil {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", cliErr.Code, cliErr.Message)
	}
	return nil
}

// Fail reports a failure and returns the matching ExitError.
func (f *OutputFormatter) Fail(exitCode int, code, message string, err error) error {
	_ = f.Error(code, message)
	return WrapExitError(exitCode, code, err)
}

// FailAnchor reports an anchor.Error using its kind as the code. Rejections
// exit with ExitFailure; collaborator and internal failures with
// ExitCommandError.
func (f *OutputFormatter) FailAnchor(err error) error {
	kind := anchor.KindOf(err)
	message := err.Error()
	var anchorErr *anchor.Error
	if errors.As(err, &anchorErr) {
		message = anchorErr.Detail()
	}
	return f.Fail(exitCodeForKind(kind), string(kind), message, err)
}

// VerboseLog outputs a message to ErrWriter only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

func exitCodeForKind(kind anchor.ErrorKind) int {
	switch kind {
	case anchor.KindInvalidInput, anchor.KindUnauthorized, anchor.KindIdentityMismatch, anchor.KindReferenceNotFound:
		return ExitFailure
	default:
		return ExitCommandError
	}
}
