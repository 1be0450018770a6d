package shared

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

const (
	mainnetMirrorBaseURL = "https://mainnet-public.mirrornode.hedera.com"
	testnetMirrorBaseURL = "https://testnet.mirrornode.hedera.com"
)

// NormalizeNetwork lower-cases network and defaults it to testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkMainnet, NetworkTestnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// DefaultMirrorBaseURL returns the public mirror node for a normalized network.
func DefaultMirrorBaseURL(network string) string {
	if network == NetworkMainnet {
		return mainnetMirrorBaseURL
	}
	return testnetMirrorBaseURL
}

// NewHederaClient creates a new HederaClient.
func NewHederaClient(network string) (*hedera.Client, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return nil, err
	}

	if normalized == NetworkMainnet {
		return hedera.ClientForMainnet(), nil
	}

	return hedera.ClientForTestnet(), nil
}

// NewOperatorClient returns a Hedera client paying with the operator account.
func NewOperatorClient(operator OperatorConfig) (*hedera.Client, hedera.PrivateKey, error) {
	accountID, err := hedera.AccountIDFromString(strings.TrimSpace(operator.AccountID))
	if err != nil {
		return nil, hedera.PrivateKey{}, fmt.Errorf("invalid operator account ID: %w", err)
	}
	privateKey, err := ParsePrivateKey(operator.PrivateKey)
	if err != nil {
		return nil, hedera.PrivateKey{}, fmt.Errorf("invalid operator private key: %w", err)
	}

	client, err := NewHederaClient(operator.Network)
	if err != nil {
		return nil, hedera.PrivateKey{}, err
	}
	client.SetOperator(accountID, privateKey)

	return client, privateKey, nil
}
