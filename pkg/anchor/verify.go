package anchor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

type VerifierConfig struct {
	Ledger LedgerReader
	// ReferenceFormat defaults to HexReference.
	ReferenceFormat ReferenceFormat
	Logger          *zap.Logger
}

type Verifier struct {
	ledger          LedgerReader
	referenceFormat ReferenceFormat
	logger          *zap.Logger
}

// NewVerifier creates a new Verifier.
func NewVerifier(config VerifierConfig) (*Verifier, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger reader is required")
	}

	referenceFormat := config.ReferenceFormat
	if referenceFormat == nil {
		referenceFormat = HexReference
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Verifier{
		ledger:          config.Ledger,
		referenceFormat: referenceFormat,
		logger:          logger,
	}, nil
}

// Verify recomputes the record fingerprint and compares it byte for byte
// with the one anchored under reference. Invalid input is rejected before
// the ledger is contacted.
func (v *Verifier) Verify(
	ctx context.Context,
	record rating.RatingRecord,
	reference string,
) (VerificationResult, error) {
	if err := record.Validate(); err != nil {
		return VerificationResult{}, newError(KindInvalidInput, err.Error(), nil)
	}
	reference = strings.TrimSpace(reference)
	if err := v.referenceFormat(reference); err != nil {
		return VerificationResult{}, newError(KindInvalidInput, err.Error(), nil)
	}

	presented := rating.FingerprintOf(record)

	retrieved, err := v.ledger.Resolve(ctx, reference)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			v.logger.Info("anchor reference not found", zap.String("reference", reference))
			return VerificationResult{}, newError(
				KindReferenceNotFound,
				fmt.Sprintf("reference %s does not resolve to an anchored fingerprint", reference),
				err,
			)
		}
		v.logger.Warn("anchor reference resolution failed", zap.String("reference", reference), zap.Error(err))
		return VerificationResult{}, newError(KindCollaboratorFailure, "ledger read failed", err)
	}

	outcome := OutcomeMismatch
	if presented.Equal(retrieved) {
		outcome = OutcomeMatch
	}

	v.logger.Info(
		"rating verified",
		zap.String("reference", reference),
		zap.String("outcome", string(outcome)),
	)

	return VerificationResult{
		PresentedFingerprint: presented,
		RetrievedFingerprint: retrieved,
		Outcome:              outcome,
		Reference:            reference,
		SubjectID:            rating.NormalizeText(record.SubjectID),
	}, nil
}
