package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsicoop/ratings-anchor-go/pkg/anchor"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "MISMATCH")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "x"))))
}

func TestExitCodeForKind(t *testing.T) {
	cases := map[anchor.ErrorKind]int{
		anchor.KindInvalidInput:        ExitFailure,
		anchor.KindUnauthorized:        ExitFailure,
		anchor.KindIdentityMismatch:    ExitFailure,
		anchor.KindReferenceNotFound:   ExitFailure,
		anchor.KindCollaboratorFailure: ExitCommandError,
		anchor.KindInternal:            ExitCommandError,
	}
	for kind, expected := range cases {
		assert.Equal(t, expected, exitCodeForKind(kind), string(kind))
	}
}

func TestFormatterJSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Fail(ExitCommandError, ErrCodeLedger, "mirror node unreachable", errors.New("dial tcp"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	response := decodeResponse(t, buf.String())
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, ErrCodeLedger, response.Error.Code)
	assert.Equal(t, "mirror node unreachable", response.Error.Message)
}

func TestFormatterTextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	_ = formatter.Error(ErrCodeConfig, "bad config")
	assert.Equal(t, "Error [config-error]: bad config\n", buf.String())
}

func TestVerboseLogGoesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("anchoring %s", "1")
	assert.Empty(t, out.String())
	assert.Equal(t, "anchoring 1\n", errOut.String())
}

func TestFailAnchorIncludesCause(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	cause := &anchor.Error{
		Kind:    anchor.KindCollaboratorFailure,
		Message: "ledger read failed",
		Err:     errors.New("dial tcp 10.0.0.1:443: connection refused"),
	}
	err := formatter.FailAnchor(fmt.Errorf("verify: %w", cause))
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	response := decodeResponse(t, buf.String())
	assert.Equal(t, "collaborator-failure", response.Error.Code)
	assert.Equal(t, "ledger read failed: dial tcp 10.0.0.1:443: connection refused", response.Error.Message)
}
