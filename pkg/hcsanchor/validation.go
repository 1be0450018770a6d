package hcsanchor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

var (
	topicIDPattern       = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	transactionIDPattern = regexp.MustCompile(`^\d+\.\d+\.\d+@\d+\.\d+$`)
	fingerprintPattern   = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// ValidateReference checks that reference is a Hedera transaction ID in SDK
// form, e.g. 0.0.1234@1700000000.123456789.
func ValidateReference(reference string) error {
	if !transactionIDPattern.MatchString(strings.TrimSpace(reference)) {
		return fmt.Errorf("reference %q is not a Hedera transaction ID", reference)
	}
	return nil
}

// ValidateTopicID checks the shard.realm.num form of a topic ID.
func ValidateTopicID(topicID string) error {
	if !topicIDPattern.MatchString(strings.TrimSpace(topicID)) {
		return fmt.Errorf("topic ID %q must be in shard.realm.num form", topicID)
	}
	return nil
}

// ValidateAnchorMessage validates the provided anchor message.
func ValidateAnchorMessage(message AnchorMessage) error {
	if message.P != Protocol {
		return fmt.Errorf("protocol must be %q", Protocol)
	}
	if message.Op != OperationAnchor {
		return fmt.Errorf("operation %q is not supported", message.Op)
	}
	if utf8.RuneCountInString(message.Memo) > MaxMemoRunes {
		return fmt.Errorf("memo must not exceed %d characters", MaxMemoRunes)
	}

	hasPlain := message.Fingerprint != ""
	hasSealed := message.Sealed != nil
	switch {
	case hasPlain && hasSealed:
		return fmt.Errorf("anchor must carry either fp or sfp, not both")
	case hasPlain:
		if !fingerprintPattern.MatchString(message.Fingerprint) {
			return fmt.Errorf("fp must be 64 lowercase hex characters")
		}
	case hasSealed:
		if err := message.Sealed.validate(); err != nil {
			return fmt.Errorf("invalid sfp: %w", err)
		}
	default:
		return fmt.Errorf("anchor requires fp or sfp")
	}

	return nil
}

// ParseAnchorMessage decodes and validates an anchor message payload.
func ParseAnchorMessage(payload []byte) (AnchorMessage, error) {
	var message AnchorMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return AnchorMessage{}, fmt.Errorf("failed to decode anchor message: %w", err)
	}
	if err := ValidateAnchorMessage(message); err != nil {
		return AnchorMessage{}, err
	}
	return message, nil
}

// PlainFingerprint returns the fingerprint of an unsealed message.
func (m AnchorMessage) PlainFingerprint() (rating.Fingerprint, error) {
	if m.Sealed != nil {
		return rating.Fingerprint{}, fmt.Errorf("anchor message is sealed")
	}
	return rating.ParseFingerprint(m.Fingerprint)
}
