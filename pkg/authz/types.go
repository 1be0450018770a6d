package authz

const DefaultRequiredType = "verified-auditor"

// Credential binds a subject identity to a role, as asserted by an issuer.
type Credential struct {
	Type            string `json:"type" yaml:"type"`
	Issuer          string `json:"issuer" yaml:"issuer"`
	SubjectIdentity string `json:"subjectIdentity" yaml:"subjectIdentity"`
}

type Policy struct {
	RequiredType   string   `json:"requiredType" yaml:"requiredType"`
	TrustedIssuers []string `json:"trustedIssuers" yaml:"trustedIssuers"`
}

type Reason string

const (
	ReasonInvalidInput     Reason = "invalid-input"
	ReasonUnauthorized     Reason = "unauthorized"
	ReasonIdentityMismatch Reason = "identity-mismatch"
)

type Decision struct {
	Allowed bool
	Reason  Reason
	Detail  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason Reason, detail string) Decision {
	return Decision{Reason: reason, Detail: detail}
}
