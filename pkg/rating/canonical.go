package rating

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// canonicalRecord fixes the key order through struct field order.
type canonicalRecord struct {
	SubjectID      string  `json:"subjectId"`
	AssessorID     string  `json:"assessorId"`
	Score          float64 `json:"score"`
	AssessmentDate string  `json:"assessmentDate"`
	SchemaVersion  string  `json:"schemaVersion"`
}

// NormalizeText trims surrounding whitespace and applies NFC normalization.
func NormalizeText(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

// Canonicalize returns the canonical byte form of a validated record.
// Records that have not passed Validate may yield nil.
func Canonicalize(record RatingRecord) []byte {
	score := record.Score
	if score == 0 {
		// -0 and 0 must encode identically.
		score = 0
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(canonicalRecord{
		SubjectID:      NormalizeText(record.SubjectID),
		AssessorID:     NormalizeText(record.AssessorID),
		Score:          score,
		AssessmentDate: NormalizeText(record.AssessmentDate),
		SchemaVersion:  NormalizeText(record.SchemaVersion),
	}); err != nil {
		return nil
	}

	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n"))
}
