package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryListsAnchors(t *testing.T) {
	w := newWorkspace(t)
	recordPath := w.write(t, "record.json", referenceRecord)
	first := anchorReference(t, w, recordPath)
	second := anchorReference(t, w, recordPath)
	require.NotEqual(t, first, second)

	output, err := run(t, "", "--config", w.config, "--format", "json", "history", recordPath)
	require.NoError(t, err)

	response := decodeResponse(t, output)
	assert.Equal(t, referenceHex, response.Data["fingerprint"])
	assert.Equal(t, "dev", response.Data["network"])

	anchors, ok := response.Data["anchors"].([]any)
	require.True(t, ok)
	require.Len(t, anchors, 2)
	references := []any{
		anchors[0].(map[string]any)["reference"],
		anchors[1].(map[string]any)["reference"],
	}
	assert.ElementsMatch(t, []any{first, second}, references)
	assert.Equal(t, "Rating anchor for subject:1", anchors[0].(map[string]any)["description"])
}

func TestHistoryEmpty(t *testing.T) {
	w := newWorkspace(t)
	recordPath := w.write(t, "record.json", referenceRecord)

	output, err := run(t, "", "--config", w.config, "history", recordPath)
	require.NoError(t, err)
	assert.Contains(t, output, "has 0 anchor(s) on dev")
}
