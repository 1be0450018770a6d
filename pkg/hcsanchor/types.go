package hcsanchor

import (
	"go.uber.org/zap"
)

const (
	Protocol         = "tsi-anchor"
	OperationAnchor  = "anchor"
	DefaultTopicTTL  = int64(86400)
	MaxMessageBytes  = 1024
	MaxMemoRunes     = 200
	topicMemoVersion = 0
)

// AnchorMessage is the JSON document submitted to an anchor topic. Exactly
// one of Fingerprint and Sealed is set.
type AnchorMessage struct {
	P           string          `json:"p"`
	Op          string          `json:"op"`
	Fingerprint string          `json:"fp,omitempty"`
	Sealed      *SealedEnvelope `json:"sfp,omitempty"`
	Memo        string          `json:"m,omitempty"`
}

type ClientConfig struct {
	OperatorAccountID  string
	OperatorPrivateKey string
	Network            string
	TopicID            string
	MirrorBaseURL      string
	MirrorAPIKey       string
	Sealer             *Sealer
	Opener             *Opener
	Compress           bool
	Logger             *zap.Logger
}

// ReaderConfig configures a mirror node only Reader.
type ReaderConfig struct {
	Network       string
	TopicID       string
	MirrorBaseURL string
	MirrorAPIKey  string
	Opener        *Opener
	Logger        *zap.Logger
}

type CreateTopicOptions struct {
	TTL                 int64
	AdminKey            string
	SubmitKey           string
	UseOperatorAsAdmin  bool
	UseOperatorAsSubmit bool
}

type CreateTopicResult struct {
	TopicID       string `json:"topicId"`
	TransactionID string `json:"transactionId"`
}
