package rating

const (
	FieldSubjectID      = "subjectId"
	FieldAssessorID     = "assessorId"
	FieldScore          = "score"
	FieldAssessmentDate = "assessmentDate"
	FieldSchemaVersion  = "schemaVersion"
)

// Fields lists the record fields in canonical order.
var Fields = []string{
	FieldSubjectID,
	FieldAssessorID,
	FieldScore,
	FieldAssessmentDate,
	FieldSchemaVersion,
}

// RatingRecord is the immutable payload protected by an anchor.
type RatingRecord struct {
	SubjectID      string  `json:"subjectId" yaml:"subjectId"`
	AssessorID     string  `json:"assessorId" yaml:"assessorId"`
	Score          float64 `json:"score" yaml:"score"`
	AssessmentDate string  `json:"assessmentDate" yaml:"assessmentDate"`
	SchemaVersion  string  `json:"schemaVersion" yaml:"schemaVersion"`
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}
