package hcsanchor

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

const dataURLPrefix = "data:application/json;base64,"

// maxDecompressedBytes bounds a decompressed payload. Anchor messages are a
// few hundred bytes, and HCS caps a submission well below this.
const maxDecompressedBytes = 64 * 1024

type wrappedPayload struct {
	Content string `json:"c"`
}

// CompressPayload brotli compresses payload and wraps it in a data URL.
func CompressPayload(payload []byte) ([]byte, error) {
	var compressed bytes.Buffer
	writer := brotli.NewWriterLevel(&compressed, brotli.BestCompression)
	if _, err := writer.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to compress anchor message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress anchor message: %w", err)
	}

	return json.Marshal(wrappedPayload{
		Content: dataURLPrefix + base64.StdEncoding.EncodeToString(compressed.Bytes()),
	})
}

// NormalizePayload unwraps a compressed payload. Anything else is returned
// unchanged.
func NormalizePayload(payload []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' || !bytes.Contains(trimmed, []byte(`"c"`)) {
		return payload, nil
	}

	var wrapped wrappedPayload
	if err := json.Unmarshal(trimmed, &wrapped); err != nil || strings.TrimSpace(wrapped.Content) == "" {
		return payload, nil
	}

	content := strings.TrimSpace(wrapped.Content)
	header, data, found := strings.Cut(content, ",")
	if !strings.HasPrefix(header, "data:") || !found {
		return nil, fmt.Errorf("unsupported wrapped payload format")
	}
	if !strings.Contains(strings.ToLower(header), ";base64") {
		return nil, fmt.Errorf("wrapped payload must be base64 encoded")
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped payload: %w", err)
	}

	reader := io.LimitReader(brotli.NewReader(bytes.NewReader(decoded)), maxDecompressedBytes+1)
	decompressed, err := io.ReadAll(reader)
	if len(decompressed) > maxDecompressedBytes {
		return nil, fmt.Errorf("decompressed payload exceeds %d bytes", maxDecompressedBytes)
	}
	if err == nil && len(decompressed) > 0 {
		return decompressed, nil
	}

	return decoded, nil
}
