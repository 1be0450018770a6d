package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCredentials(t *testing.T) {
	w := newWorkspace(t)
	path := w.credentials(t, "2", "verified-auditor", testIssuer, "2")

	file, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "2", file.Identity)
	require.Len(t, file.Credentials, 1)
	assert.Equal(t, "verified-auditor", file.Credentials[0].Type)
	assert.Equal(t, testIssuer, file.Credentials[0].Issuer)
	assert.Equal(t, "2", file.Credentials[0].SubjectIdentity)
}

func TestLoadCredentialsRejectsUnknownFields(t *testing.T) {
	w := newWorkspace(t)
	path := w.write(t, "typo.yaml", "identity: \"2\"\ncredential:\n  - type: verified-auditor\n")

	_, err := LoadCredentials(path)
	require.Error(t, err)
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	_, err := LoadCredentials("/nonexistent/credentials.yaml")
	require.Error(t, err)
}
