package mirror

type MessageQueryOptions struct {
	SequenceNumber string
	Limit          int
	Order          string
}

type TopicInfo struct {
	AdminKey         map[string]any `json:"admin_key"`
	AutoRenewAccount string         `json:"auto_renew_account"`
	CreatedTimestamp string         `json:"created_timestamp"`
	Deleted          bool           `json:"deleted"`
	Memo             string         `json:"memo"`
	SubmitKey        map[string]any `json:"submit_key"`
	TopicID          string         `json:"topic_id"`
}

type TopicMessage struct {
	ConsensusTimestamp string     `json:"consensus_timestamp"`
	ChunkInfo          *ChunkInfo `json:"chunk_info,omitempty"`
	Message            string     `json:"message"`
	PayerAccountID     string     `json:"payer_account_id"`
	RunningHash        string     `json:"running_hash"`
	RunningHashVersion int64      `json:"running_hash_version"`
	SequenceNumber     int64      `json:"sequence_number"`
	TopicID            string     `json:"topic_id"`
}

type ChunkInfo struct {
	InitialTransactionID *TransactionIDParts `json:"initial_transaction_id,omitempty"`
	Number               int                 `json:"number,omitempty"`
	Total                int                 `json:"total,omitempty"`
}

// TransactionIDParts is the structured transaction ID the mirror node
// reports for topic messages.
type TransactionIDParts struct {
	AccountID             string `json:"account_id"`
	Nonce                 int    `json:"nonce"`
	Scheduled             bool   `json:"scheduled"`
	TransactionValidStart string `json:"transaction_valid_start"`
}

// String returns the SDK form, 0.0.5@1700000000.123456789.
func (p TransactionIDParts) String() string {
	if p.AccountID == "" || p.TransactionValidStart == "" {
		return ""
	}
	return p.AccountID + "@" + p.TransactionValidStart
}

type topicMessagesResponse struct {
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
	Messages []TopicMessage `json:"messages"`
}

const (
	TransactionNameSubmitMessage = "CONSENSUSSUBMITMESSAGE"
	TransactionResultSuccess     = "SUCCESS"
)

type Transaction struct {
	ChargedTxFee       int64   `json:"charged_tx_fee"`
	ConsensusTimestamp string  `json:"consensus_timestamp"`
	EntityID           *string `json:"entity_id"`
	MemoBase64         string  `json:"memo_base64"`
	Name               string  `json:"name"`
	Node               string  `json:"node"`
	Result             string  `json:"result"`
	TransactionID      string  `json:"transaction_id"`
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Links        struct {
		Next string `json:"next"`
	} `json:"links"`
}
