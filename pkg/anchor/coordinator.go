package anchor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsicoop/ratings-anchor-go/pkg/authz"
	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

type CoordinatorConfig struct {
	Authorizer Authorizer
	Ledger     LedgerWriter
	// Network is copied into receipts for display; optional.
	Network string
	Logger  *zap.Logger
	Now     func() time.Time
}

type Coordinator struct {
	authorizer Authorizer
	ledger     LedgerWriter
	network    string
	logger     *zap.Logger
	now        func() time.Time
}

// NewCoordinator creates a new Coordinator.
func NewCoordinator(config CoordinatorConfig) (*Coordinator, error) {
	if config.Authorizer == nil {
		return nil, fmt.Errorf("authorizer is required")
	}
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger writer is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &Coordinator{
		authorizer: config.Authorizer,
		ledger:     config.Ledger,
		network:    strings.TrimSpace(config.Network),
		logger:     logger,
		now:        now,
	}, nil
}

// Anchor runs one request through received, validated, authorized,
// fingerprinted, submitted and receipted. A denial ends in the rejected
// stage before the ledger is touched; a ledger failure ends in the
// anchor-failed stage. Nothing is retried.
func (c *Coordinator) Anchor(ctx context.Context, request AnchorRequest) (AnchorReceipt, error) {
	log := c.logger.With(zap.String("subject", rating.NormalizeText(request.Record.SubjectID)))
	log.Debug("anchor request moved to stage", zap.String("stage", string(StageReceived)))

	if err := request.Record.Validate(); err != nil {
		return AnchorReceipt{}, c.reject(log, StageReceived, KindInvalidInput, err.Error())
	}
	log.Debug("anchor request moved to stage", zap.String("stage", string(StageValidated)))

	decision := c.authorizer.Authorize(request.Identity, request.Credentials, request.Record)
	if !decision.Allowed {
		from := StageValidated
		if decision.Reason == authz.ReasonInvalidInput {
			from = StageReceived
		}
		return AnchorReceipt{}, c.reject(log, from, kindForReason(decision.Reason), decision.Detail)
	}
	log.Debug("anchor request moved to stage", zap.String("stage", string(StageAuthorized)))

	fingerprint := rating.FingerprintOf(request.Record)
	log.Debug(
		"anchor request moved to stage",
		zap.String("stage", string(StageFingerprinted)),
		zap.Stringer("fingerprint", fingerprint),
	)

	if err := ctx.Err(); err != nil {
		return AnchorReceipt{}, c.fail(log, "anchor request cancelled before ledger submission", err)
	}

	reference, err := c.ledger.Submit(ctx, fingerprint, Description(request.Record))
	log.Debug("anchor request moved to stage", zap.String("stage", string(StageSubmitted)))
	if err != nil {
		message := "ledger write failed"
		if ctx.Err() != nil {
			message = "ledger write interrupted by cancellation; outcome unknown"
		}
		return AnchorReceipt{}, c.fail(log, message, err)
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return AnchorReceipt{}, c.fail(log, "ledger write returned an empty reference", nil)
	}

	receipt := AnchorReceipt{
		Fingerprint: fingerprint,
		Reference:   reference,
		SubjectID:   rating.NormalizeText(request.Record.SubjectID),
		CreatedAt:   c.now().UTC(),
		ContentID:   fingerprint.CID(),
		Network:     c.network,
	}
	log.Info(
		"rating anchored",
		zap.String("stage", string(StageReceipted)),
		zap.String("reference", reference),
		zap.Stringer("fingerprint", fingerprint),
	)

	return receipt, nil
}

// Description is the human readable text handed to the ledger with a
// fingerprint.
func Description(record rating.RatingRecord) string {
	return fmt.Sprintf("Rating anchor for subject:%s", rating.NormalizeText(record.SubjectID))
}

func (c *Coordinator) reject(log *zap.Logger, from Stage, kind ErrorKind, detail string) error {
	log.Warn(
		"anchor request rejected",
		zap.String("stage", string(StageRejected)),
		zap.String("from", string(from)),
		zap.String("kind", string(kind)),
		zap.String("detail", detail),
	)
	return &Error{Kind: kind, Message: detail, Stage: StageRejected}
}

func (c *Coordinator) fail(log *zap.Logger, message string, cause error) error {
	log.Warn(
		"anchor request failed",
		zap.String("stage", string(StageAnchorFailed)),
		zap.String("detail", message),
		zap.Error(cause),
	)
	return &Error{Kind: KindCollaboratorFailure, Message: message, Stage: StageAnchorFailed, Err: cause}
}

func kindForReason(reason authz.Reason) ErrorKind {
	switch reason {
	case authz.ReasonInvalidInput:
		return KindInvalidInput
	case authz.ReasonUnauthorized:
		return KindUnauthorized
	case authz.ReasonIdentityMismatch:
		return KindIdentityMismatch
	default:
		return KindInternal
	}
}
