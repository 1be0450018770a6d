package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	testIssuer      = "did:web:issuer.example"
	referenceRecord = `{"subjectId":"1","assessorId":"2","score":91.5,"assessmentDate":"2025-11-04T10:30:00Z","schemaVersion":"v1"}`
	referenceHex    = "d4913e70bd9a7e24dbd3095363f2e6960a82622afbc53b16e181b8691093afcf"
)

type workspace struct {
	dir    string
	config string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	for _, key := range []string{
		"RATINGS_ANCHOR_LEDGER",
		"RATINGS_ANCHOR_NETWORK",
		"RATINGS_ANCHOR_TOPIC_ID",
		"RATINGS_ANCHOR_MIRROR_URL",
		"RATINGS_ANCHOR_MIRROR_API_KEY",
		"RATINGS_ANCHOR_DEV_PATH",
		"RATINGS_ANCHOR_SEAL_PUBLIC_KEY",
		"RATINGS_ANCHOR_SEAL_PRIVATE_KEY",
		"RATINGS_ANCHOR_COMPRESS",
		"RATINGS_ANCHOR_TRUSTED_ISSUERS",
	} {
		t.Setenv(key, "")
	}

	w := &workspace{dir: t.TempDir()}
	w.config = w.write(t, "config.yaml", `
ledger: dev
dev:
  path: `+filepath.Join(w.dir, "ledger.db")+`
policy:
  required_type: verified-auditor
  trusted_issuers:
    - `+testIssuer+`
`)
	return w
}

func (w *workspace) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(w.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (w *workspace) credentials(t *testing.T, identity, credentialType, issuer, subject string) string {
	t.Helper()
	return w.write(t, "credentials-"+identity+"-"+credentialType+".yaml", `
identity: "`+identity+`"
credentials:
  - type: `+credentialType+`
    issuer: `+issuer+`
    subjectIdentity: "`+subject+`"
`)
}

// run executes the root command and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(&RootOptions{Logger: zaptest.NewLogger(t)})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type jsonResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
	Error  *CLIError      `json:"error"`
}

func decodeResponse(t *testing.T, output string) jsonResponse {
	t.Helper()
	var response jsonResponse
	require.NoError(t, json.Unmarshal([]byte(output), &response), "output: %s", output)
	return response
}
