package hcsanchor

import (
	"context"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"go.uber.org/zap"

	"github.com/tsicoop/ratings-anchor-go/pkg/anchor"
	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
	"github.com/tsicoop/ratings-anchor-go/pkg/shared"
)

// Client is an anchor.LedgerWriter backed by a Hedera topic. It embeds a
// Reader, so it resolves its own anchors too.
type Client struct {
	*Reader
	hederaClient *hedera.Client
	operatorKey  hedera.PrivateKey
	sealer       *Sealer
	compress     bool
}

var (
	_ anchor.LedgerWriter = (*Client)(nil)
	_ anchor.LedgerReader = (*Client)(nil)
)

// NewClient creates a new Client.
func NewClient(config ClientConfig) (*Client, error) {
	if strings.TrimSpace(config.OperatorAccountID) == "" {
		return nil, fmt.Errorf("operator account ID is required")
	}
	if strings.TrimSpace(config.OperatorPrivateKey) == "" {
		return nil, fmt.Errorf("operator private key is required")
	}

	reader, err := NewReader(ReaderConfig{
		Network:       config.Network,
		TopicID:       config.TopicID,
		MirrorBaseURL: config.MirrorBaseURL,
		MirrorAPIKey:  config.MirrorAPIKey,
		Opener:        config.Opener,
		Logger:        config.Logger,
	})
	if err != nil {
		return nil, err
	}

	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}
	hederaClient, operatorKey, err := shared.NewOperatorClient(shared.OperatorConfig{
		AccountID:  config.OperatorAccountID,
		PrivateKey: config.OperatorPrivateKey,
		Network:    network,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		Reader:       reader,
		hederaClient: hederaClient,
		operatorKey:  operatorKey,
		sealer:       config.Sealer,
		compress:     config.Compress,
	}, nil
}

// Close releases the Hedera network client.
func (c *Client) Close() error {
	return c.hederaClient.Close()
}

// CreateAnchorTopic creates a new anchor topic and makes it the client's
// submit target.
func (c *Client) CreateAnchorTopic(ctx context.Context, options CreateTopicOptions) (CreateTopicResult, error) {
	if err := ctx.Err(); err != nil {
		return CreateTopicResult{}, err
	}

	params := CreateTopicTxParams{TTL: options.TTL}
	adminKey, err := c.resolvePublicKey(options.AdminKey, options.UseOperatorAsAdmin)
	if err != nil {
		return CreateTopicResult{}, err
	}
	if adminKey != nil {
		params.AdminKey = *adminKey
	}
	submitKey, err := c.resolvePublicKey(options.SubmitKey, options.UseOperatorAsSubmit)
	if err != nil {
		return CreateTopicResult{}, err
	}
	if submitKey != nil {
		params.SubmitKey = *submitKey
	}

	response, err := BuildAnchorTopicTx(params).Execute(c.hederaClient)
	if err != nil {
		return CreateTopicResult{}, fmt.Errorf("failed to execute create topic transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return CreateTopicResult{}, fmt.Errorf("failed to get create topic receipt: %w", err)
	}
	if receipt.TopicID == nil {
		return CreateTopicResult{}, fmt.Errorf("topic ID missing in create topic receipt")
	}

	topicID := receipt.TopicID.String()
	c.setTopicID(topicID)
	c.logger.Info("anchor topic created", zap.String("topic", topicID))

	return CreateTopicResult{
		TopicID:       topicID,
		TransactionID: response.TransactionID.String(),
	}, nil
}

// Submit anchors fingerprint and returns the transaction ID as reference.
func (c *Client) Submit(ctx context.Context, fingerprint rating.Fingerprint, description string) (string, error) {
	topicID := c.TopicID()
	if topicID == "" {
		return "", fmt.Errorf("anchor topic ID is not configured")
	}

	message, err := BuildAnchorMessage(fingerprint, description, c.sealer)
	if err != nil {
		return "", err
	}
	payload, err := EncodeAnchorMessage(message, c.compress)
	if err != nil {
		return "", err
	}
	transaction, err := BuildAnchorMessageTx(topicID, payload)
	if err != nil {
		return "", err
	}

	// The SDK does not take a context; honour cancellation up to the send.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	response, err := transaction.Execute(c.hederaClient)
	if err != nil {
		return "", fmt.Errorf("failed to execute anchor submit transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return "", fmt.Errorf("failed to get anchor submit receipt: %w", err)
	}

	reference := response.TransactionID.String()
	c.logger.Debug("anchor submitted",
		zap.String("topic", topicID),
		zap.String("reference", reference),
		zap.Uint64("sequence", receipt.TopicSequenceNumber),
		zap.Bool("sealed", message.Sealed != nil),
	)

	return reference, nil
}

func (c *Client) resolvePublicKey(rawKey string, useOperator bool) (*hedera.PublicKey, error) {
	if useOperator {
		publicKey := c.operatorKey.PublicKey()
		return &publicKey, nil
	}

	if strings.TrimSpace(rawKey) == "" {
		return nil, nil
	}

	publicKey, pubErr := hedera.PublicKeyFromString(rawKey)
	if pubErr == nil {
		return &publicKey, nil
	}

	privateKey, prvErr := shared.ParsePrivateKey(rawKey)
	if prvErr != nil {
		return nil, fmt.Errorf("failed to parse key as public (%v) or private (%v)", pubErr, prvErr)
	}

	derivedPublicKey := privateKey.PublicKey()
	return &derivedPublicKey, nil
}
