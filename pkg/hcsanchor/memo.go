package hcsanchor

import (
	"fmt"
	"strconv"
	"strings"
)

type TopicMemo struct {
	Version int
	TTL     int64
}

// BuildTopicMemo returns the anchor topic memo for ttl.
func BuildTopicMemo(ttl int64) string {
	return fmt.Sprintf("%s:%d:%d", Protocol, topicMemoVersion, ttl)
}

// ParseTopicMemo parses an anchor topic memo.
func ParseTopicMemo(memo string) (*TopicMemo, bool) {
	parts := strings.Split(strings.TrimSpace(memo), ":")
	if len(parts) != 3 || parts[0] != Protocol {
		return nil, false
	}

	version, err := strconv.Atoi(parts[1])
	if err != nil || version != topicMemoVersion {
		return nil, false
	}
	ttl, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || ttl < 0 {
		return nil, false
	}

	return &TopicMemo{Version: version, TTL: ttl}, true
}

// BuildTransactionMemo returns the memo set on anchor submit transactions.
func BuildTransactionMemo() string {
	return fmt.Sprintf("%s:op:0", Protocol)
}
