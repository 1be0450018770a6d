package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandListsSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{"fingerprint", "anchor", "verify", "history", "topic", "keygen"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	_, err := run(t, "", "--format", "yaml", "keygen")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootRejectsInvalidLedger(t *testing.T) {
	_, err := run(t, "", "--ledger", "bitcoin", "keygen")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestKeygenJSON(t *testing.T) {
	output, err := run(t, "", "--format", "json", "keygen")
	require.NoError(t, err)

	response := decodeResponse(t, output)
	assert.Equal(t, "ok", response.Status)
	assert.Len(t, response.Data["publicKey"], 66)
	assert.Len(t, response.Data["privateKey"], 64)
}

func TestTopicCommandsNeedHedera(t *testing.T) {
	w := newWorkspace(t)

	output, err := run(t, "", "--config", w.config, "--format", "json", "topic", "create")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeUsage, decodeResponse(t, output).Error.Code)
}
