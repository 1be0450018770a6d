package anchor

import (
	"context"
	"time"

	"github.com/tsicoop/ratings-anchor-go/pkg/authz"
	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

// LedgerWriter publishes a fingerprint and returns an opaque reference.
type LedgerWriter interface {
	Submit(ctx context.Context, fingerprint rating.Fingerprint, description string) (string, error)
}

// LedgerReader resolves a reference to the fingerprint anchored under it.
// Unresolvable references must yield an error matching ErrNotFound.
type LedgerReader interface {
	Resolve(ctx context.Context, reference string) (rating.Fingerprint, error)
}

type Authorizer interface {
	Authorize(identity string, credentials []authz.Credential, record rating.RatingRecord) authz.Decision
}

type AnchorRequest struct {
	Identity    string
	Credentials []authz.Credential
	Record      rating.RatingRecord
}

type AnchorReceipt struct {
	Fingerprint rating.Fingerprint `json:"fingerprint"`
	Reference   string             `json:"reference"`
	SubjectID   string             `json:"subjectId"`
	CreatedAt   time.Time          `json:"createdAt"`
	ContentID   string             `json:"contentId,omitempty"`
	Network     string             `json:"network,omitempty"`
}

type Outcome string

const (
	OutcomeMatch    Outcome = "MATCH"
	OutcomeMismatch Outcome = "MISMATCH"
)

type VerificationResult struct {
	PresentedFingerprint rating.Fingerprint `json:"presentedFingerprint"`
	RetrievedFingerprint rating.Fingerprint `json:"retrievedFingerprint"`
	Outcome              Outcome            `json:"outcome"`
	Reference            string             `json:"reference"`
	SubjectID            string             `json:"subjectId"`
}

func (r VerificationResult) Matched() bool {
	return r.Outcome == OutcomeMatch
}

// Stage is a step of the per-request anchor state machine.
type Stage string

const (
	StageReceived      Stage = "received"
	StageValidated     Stage = "validated"
	StageAuthorized    Stage = "authorized"
	StageFingerprinted Stage = "fingerprinted"
	StageSubmitted     Stage = "submitted"
	StageReceipted     Stage = "receipted"
	StageRejected      Stage = "rejected"
	StageAnchorFailed  Stage = "anchor-failed"
)
