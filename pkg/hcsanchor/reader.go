package hcsanchor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tsicoop/ratings-anchor-go/pkg/anchor"
	"github.com/tsicoop/ratings-anchor-go/pkg/mirror"
	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
	"github.com/tsicoop/ratings-anchor-go/pkg/shared"
)

// Reader is an anchor.LedgerReader over the mirror node. It needs no
// operator account, so anyone can verify anchors with it.
type Reader struct {
	mirrorClient *mirror.Client
	topicID      string
	opener       *Opener
	logger       *zap.Logger
	mutex        sync.RWMutex
}

var _ anchor.LedgerReader = (*Reader)(nil)

// NewReader creates a new Reader.
func NewReader(config ReaderConfig) (*Reader, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	topicID := strings.TrimSpace(config.TopicID)
	if topicID != "" {
		if err := ValidateTopicID(topicID); err != nil {
			return nil, err
		}
	}

	mirrorClient, err := mirror.NewClient(mirror.Config{
		Network: network,
		BaseURL: config.MirrorBaseURL,
		APIKey:  config.MirrorAPIKey,
	})
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reader{
		mirrorClient: mirrorClient,
		topicID:      topicID,
		opener:       config.Opener,
		logger:       logger.Named("hcsanchor"),
	}, nil
}

// Close is a no-op; the mirror client holds no connections of its own.
func (r *Reader) Close() error {
	return nil
}

// TopicID returns the anchor topic, empty until one is configured or created.
func (r *Reader) TopicID() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.topicID
}

func (r *Reader) setTopicID(topicID string) {
	r.mutex.Lock()
	r.topicID = topicID
	r.mutex.Unlock()
}

// CheckTopic confirms through the mirror node that the configured topic is
// an anchor topic.
func (r *Reader) CheckTopic(ctx context.Context) (*TopicMemo, error) {
	topicID := r.TopicID()
	if topicID == "" {
		return nil, fmt.Errorf("anchor topic ID is not configured")
	}
	info, err := r.mirrorClient.GetTopicInfo(ctx, topicID)
	if err != nil {
		return nil, err
	}
	memo, ok := ParseTopicMemo(info.Memo)
	if !ok {
		return nil, fmt.Errorf("topic %s is not an anchor topic (memo %q)", topicID, info.Memo)
	}
	return memo, nil
}

// Resolve reads the fingerprint anchored by the transaction reference.
func (r *Reader) Resolve(ctx context.Context, reference string) (rating.Fingerprint, error) {
	if err := ValidateReference(reference); err != nil {
		return rating.Fingerprint{}, err
	}

	transactions, err := r.mirrorClient.GetTransactions(ctx, reference)
	if err != nil {
		return rating.Fingerprint{}, mirrorError(err, "transaction", reference)
	}
	transaction, err := selectAnchorTransaction(transactions, reference, r.TopicID())
	if err != nil {
		return rating.Fingerprint{}, err
	}

	topicMessage, err := r.mirrorClient.GetTopicMessageByTimestamp(ctx, transaction.ConsensusTimestamp)
	if err != nil {
		return rating.Fingerprint{}, mirrorError(err, "topic message", transaction.ConsensusTimestamp)
	}

	message, err := decodeTopicMessage(topicMessage)
	if err != nil {
		return rating.Fingerprint{}, fmt.Errorf("%w: %s: %v", anchor.ErrNotFound, reference, err)
	}

	if message.Sealed == nil {
		return message.PlainFingerprint()
	}
	if r.opener == nil {
		return rating.Fingerprint{}, fmt.Errorf("anchor %s is sealed and no seal private key is configured", reference)
	}
	return r.opener.Open(*message.Sealed)
}

// selectAnchorTransaction picks the successful topic message submission
// among the transactions recorded under reference. Failed duplicates are
// skipped.
func selectAnchorTransaction(transactions []mirror.Transaction, reference string, topicID string) (mirror.Transaction, error) {
	failedResult := ""
	for _, transaction := range transactions {
		if transaction.Name != mirror.TransactionNameSubmitMessage {
			continue
		}
		if transaction.Result != mirror.TransactionResultSuccess {
			failedResult = transaction.Result
			continue
		}
		if transaction.EntityID == nil {
			return mirror.Transaction{}, fmt.Errorf("%w: transaction %s has no topic", anchor.ErrNotFound, reference)
		}
		if topicID != "" && *transaction.EntityID != topicID {
			return mirror.Transaction{}, fmt.Errorf(
				"%w: transaction %s was submitted to topic %s, not %s",
				anchor.ErrNotFound,
				reference,
				*transaction.EntityID,
				topicID,
			)
		}
		return transaction, nil
	}

	if failedResult != "" {
		return mirror.Transaction{}, fmt.Errorf("%w: transaction %s failed with %s", anchor.ErrNotFound, reference, failedResult)
	}
	return mirror.Transaction{}, fmt.Errorf("%w: transaction %s is not a topic message submission", anchor.ErrNotFound, reference)
}

func mirrorError(err error, what string, key string) error {
	if errors.Is(err, mirror.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", anchor.ErrNotFound, what, key)
	}
	return fmt.Errorf("failed to read %s %s from mirror node: %w", what, key, err)
}

