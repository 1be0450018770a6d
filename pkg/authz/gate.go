package authz

import (
	"fmt"
	"strings"

	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

type Gate struct {
	requiredType   string
	trustedIssuers map[string]struct{}
}

// NewGate creates a new Gate. At least one trusted issuer is required.
func NewGate(policy Policy) (*Gate, error) {
	requiredType := strings.TrimSpace(policy.RequiredType)
	if requiredType == "" {
		requiredType = DefaultRequiredType
	}

	trusted := make(map[string]struct{}, len(policy.TrustedIssuers))
	for _, issuer := range policy.TrustedIssuers {
		normalized := normalizeIssuer(issuer)
		if normalized == "" {
			continue
		}
		trusted[normalized] = struct{}{}
	}
	if len(trusted) == 0 {
		return nil, fmt.Errorf("at least one trusted issuer is required")
	}

	return &Gate{
		requiredType:   requiredType,
		trustedIssuers: trusted,
	}, nil
}

// RequiredType returns the credential type the gate accepts.
func (g *Gate) RequiredType() string {
	return g.requiredType
}

// Authorize validates the record, looks for a qualifying credential and
// binds the record's assessor to the caller, in that order.
func (g *Gate) Authorize(
	identity string,
	credentials []Credential,
	record rating.RatingRecord,
) Decision {
	if err := record.Validate(); err != nil {
		return Deny(ReasonInvalidInput, err.Error())
	}

	caller := rating.NormalizeText(identity)
	if caller == "" {
		return Deny(ReasonUnauthorized, "caller identity is required")
	}
	if !g.hasQualifyingCredential(caller, credentials) {
		return Deny(
			ReasonUnauthorized,
			fmt.Sprintf("no %s credential from a trusted issuer is bound to the caller", g.requiredType),
		)
	}

	if rating.NormalizeText(record.AssessorID) != caller {
		return Deny(ReasonIdentityMismatch, "assessorId does not match the authenticated identity")
	}

	return Allow()
}

func (g *Gate) hasQualifyingCredential(caller string, credentials []Credential) bool {
	for _, credential := range credentials {
		if strings.TrimSpace(credential.Type) != g.requiredType {
			continue
		}
		if _, trusted := g.trustedIssuers[normalizeIssuer(credential.Issuer)]; !trusted {
			continue
		}
		if rating.NormalizeText(credential.SubjectIdentity) != caller {
			continue
		}
		return true
	}
	return false
}

func normalizeIssuer(issuer string) string {
	return strings.ToLower(strings.TrimSpace(issuer))
}
