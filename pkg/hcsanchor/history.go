package hcsanchor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tsicoop/ratings-anchor-go/pkg/mirror"
	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

// historyPageSize is the mirror node page limit used when scanning a topic.
const historyPageSize = 100

// AnchorEntry is one anchor message found on the topic.
type AnchorEntry struct {
	Reference          string `json:"reference,omitempty"`
	SequenceNumber     int64  `json:"sequenceNumber"`
	ConsensusTimestamp string `json:"consensusTimestamp"`
	Description        string `json:"description,omitempty"`
	Sealed             bool   `json:"sealed"`
}

// History scans the anchor topic and returns every message anchoring
// fingerprint, oldest first. Sealed anchors are only matched when an opener
// is configured; other messages on the topic are skipped.
func (r *Reader) History(ctx context.Context, fingerprint rating.Fingerprint) ([]AnchorEntry, error) {
	topicID := r.TopicID()
	if topicID == "" {
		return nil, fmt.Errorf("anchor topic ID is not configured")
	}

	messages, err := r.mirrorClient.GetTopicMessages(ctx, topicID, mirror.MessageQueryOptions{
		Limit: historyPageSize,
		Order: "asc",
	})
	if err != nil {
		return nil, mirrorError(err, "topic messages", topicID)
	}

	entries := make([]AnchorEntry, 0)
	skipped := 0
	for _, topicMessage := range messages {
		message, err := decodeTopicMessage(topicMessage)
		if err != nil {
			skipped++
			continue
		}

		var anchored rating.Fingerprint
		switch {
		case message.Sealed == nil:
			anchored, err = message.PlainFingerprint()
		case r.opener != nil:
			anchored, err = r.opener.Open(*message.Sealed)
		default:
			skipped++
			continue
		}
		if err != nil || !anchored.Equal(fingerprint) {
			continue
		}

		entry := AnchorEntry{
			SequenceNumber:     topicMessage.SequenceNumber,
			ConsensusTimestamp: topicMessage.ConsensusTimestamp,
			Description:        message.Memo,
			Sealed:             message.Sealed != nil,
		}
		if topicMessage.ChunkInfo != nil && topicMessage.ChunkInfo.InitialTransactionID != nil {
			entry.Reference = topicMessage.ChunkInfo.InitialTransactionID.String()
		}
		entries = append(entries, entry)
	}

	r.logger.Debug("anchor topic scanned",
		zap.String("topic", topicID),
		zap.Int("messages", len(messages)),
		zap.Int("skipped", skipped),
		zap.Int("matches", len(entries)),
	)
	return entries, nil
}

// decodeTopicMessage unwraps a mirror node topic message into an anchor
// message.
func decodeTopicMessage(topicMessage mirror.TopicMessage) (AnchorMessage, error) {
	data, err := mirror.DecodeMessageData(topicMessage)
	if err != nil {
		return AnchorMessage{}, fmt.Errorf("no readable message: %w", err)
	}
	data, err = NormalizePayload(data)
	if err != nil {
		return AnchorMessage{}, err
	}
	message, err := ParseAnchorMessage(data)
	if err != nil {
		return AnchorMessage{}, fmt.Errorf("not an anchor message: %w", err)
	}
	return message, nil
}
