package rating

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// ParseRecord decodes a JSON object into a RatingRecord. Every field must be
// present with the right JSON type; null counts as absent. Values are not
// checked here, call Validate for that.
func ParseRecord(data []byte) (RatingRecord, error) {
	var record RatingRecord

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return record, &ValidationError{Message: "record must be a JSON object"}
	}
	// encoding/json would replace invalid bytes with U+FFFD.
	if !utf8.Valid(trimmed) {
		return record, &ValidationError{Message: "record must be valid UTF-8"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return record, &ValidationError{Message: fmt.Sprintf("record is not valid JSON: %v", err)}
	}

	targets := map[string]any{
		FieldSubjectID:      &record.SubjectID,
		FieldAssessorID:     &record.AssessorID,
		FieldScore:          &record.Score,
		FieldAssessmentDate: &record.AssessmentDate,
		FieldSchemaVersion:  &record.SchemaVersion,
	}
	for _, name := range Fields {
		raw, ok := fields[name]
		if !ok || string(bytes.TrimSpace(raw)) == "null" {
			return RatingRecord{}, &ValidationError{Field: name, Message: "is required"}
		}
		if err := json.Unmarshal(raw, targets[name]); err != nil {
			expected := "a string"
			if name == FieldScore {
				expected = "a number"
			}
			return RatingRecord{}, &ValidationError{Field: name, Message: "must be " + expected}
		}
	}

	return record, nil
}

// Validate checks field values. Fields are checked in canonical order and
// the first failure is returned.
func (r RatingRecord) Validate() error {
	if err := validateText(FieldSubjectID, r.SubjectID); err != nil {
		return err
	}
	if err := validateText(FieldAssessorID, r.AssessorID); err != nil {
		return err
	}
	if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
		return &ValidationError{Field: FieldScore, Message: "must be a finite number"}
	}

	if err := validateText(FieldAssessmentDate, r.AssessmentDate); err != nil {
		return err
	}
	if _, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(r.AssessmentDate)); err != nil {
		return &ValidationError{Field: FieldAssessmentDate, Message: "must be an ISO-8601 timestamp"}
	}

	return validateText(FieldSchemaVersion, r.SchemaVersion)
}

// validateText rejects blank values and invalid UTF-8, which the canonical
// encoding would otherwise collapse to U+FFFD.
func validateText(field, value string) error {
	if !utf8.ValidString(value) {
		return &ValidationError{Field: field, Message: "must be valid UTF-8"}
	}
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}
