package hcsanchor

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

type CreateTopicTxParams struct {
	TTL          int64
	AdminKey     hedera.Key
	SubmitKey    hedera.Key
	MemoOverride string
}

// BuildAnchorTopicTx builds the topic create transaction for an anchor topic.
func BuildAnchorTopicTx(params CreateTopicTxParams) *hedera.TopicCreateTransaction {
	ttl := params.TTL
	if ttl <= 0 {
		ttl = DefaultTopicTTL
	}

	memo := strings.TrimSpace(params.MemoOverride)
	if memo == "" {
		memo = BuildTopicMemo(ttl)
	}

	transaction := hedera.NewTopicCreateTransaction().SetTopicMemo(memo)
	if params.AdminKey != nil {
		transaction.SetAdminKey(params.AdminKey)
	}
	if params.SubmitKey != nil {
		transaction.SetSubmitKey(params.SubmitKey)
	}

	return transaction
}

// BuildAnchorMessage builds the message for fingerprint. With a sealer the
// fingerprint is encrypted; the description is truncated to MaxMemoRunes.
func BuildAnchorMessage(fingerprint rating.Fingerprint, description string, sealer *Sealer) (AnchorMessage, error) {
	message := AnchorMessage{
		P:    Protocol,
		Op:   OperationAnchor,
		Memo: truncateRunes(strings.TrimSpace(description), MaxMemoRunes),
	}

	if sealer == nil {
		message.Fingerprint = fingerprint.Hex()
		return message, nil
	}

	envelope, err := sealer.Seal(fingerprint)
	if err != nil {
		return AnchorMessage{}, err
	}
	message.Sealed = &envelope
	return message, nil
}

// EncodeAnchorMessage validates and serializes message, compressing it when
// asked. The result always fits in a single topic message chunk.
func EncodeAnchorMessage(message AnchorMessage, compress bool) ([]byte, error) {
	if err := ValidateAnchorMessage(message); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal anchor message: %w", err)
	}
	if compress {
		payload, err = CompressPayload(payload)
		if err != nil {
			return nil, err
		}
	}

	if len(payload) > MaxMessageBytes {
		return nil, fmt.Errorf("anchor message is %d bytes, limit is %d", len(payload), MaxMessageBytes)
	}

	return payload, nil
}

// BuildAnchorMessageTx builds the submit transaction for an encoded message.
func BuildAnchorMessageTx(topicID string, payload []byte) (*hedera.TopicMessageSubmitTransaction, error) {
	parsedTopicID, err := hedera.TopicIDFromString(strings.TrimSpace(topicID))
	if err != nil {
		return nil, fmt.Errorf("invalid anchor topic ID: %w", err)
	}

	return hedera.NewTopicMessageSubmitTransaction().
		SetTopicID(parsedTopicID).
		SetMessage(payload).
		SetTransactionMemo(BuildTransactionMemo()), nil
}

func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit])
}
