package shared

import (
	"reflect"
	"sync"
	"testing"
)

const testPrivateKey = "302e020100300506032b65700422042091132178e72057a1d7528025956fe39b0b847f200ab59b2fdd367017f3087137"

func resetOperatorEnv(t *testing.T) {
	t.Helper()
	dotenvLoadOnce = sync.Once{}
	dotenvLoadOnce.Do(func() {})
	t.Setenv("HEDERA_NETWORK", "")
	t.Setenv("NETWORK", "")
	for _, network := range []string{NetworkMainnet, NetworkTestnet} {
		for _, key := range scopedEnvKeys(network, "HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "OPERATOR_ID") {
			t.Setenv(key, "")
		}
		for _, key := range scopedEnvKeys(network, "HEDERA_PRIVATE_KEY", "HEDERA_OPERATOR_KEY", "OPERATOR_KEY") {
			t.Setenv(key, "")
		}
	}
}

func TestScopedEnvKeys(t *testing.T) {
	keys := scopedEnvKeys(NetworkTestnet, "HEDERA_ACCOUNT_ID", "OPERATOR_ID")
	expected := []string{"TESTNET_HEDERA_ACCOUNT_ID", "TESTNET_OPERATOR_ID", "HEDERA_ACCOUNT_ID", "OPERATOR_ID"}
	if !reflect.DeepEqual(keys, expected) {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestIsValidEnvKey(t *testing.T) {
	for _, key := range []string{"A", "a_b", "A1", "HEDERA_NETWORK", "_LEADING_UNDERSCORE"} {
		if !isValidEnvKey(key) {
			t.Fatalf("expected %q to be valid", key)
		}
	}
	for _, key := range []string{"", "1ABC", "A B", "A-B", "A.B"} {
		if isValidEnvKey(key) {
			t.Fatalf("expected %q to be invalid", key)
		}
	}
}

func TestFirstNonEmptyEnvTrimsWhitespace(t *testing.T) {
	t.Setenv("_TEST_FIRST_A", "   ")
	t.Setenv("_TEST_FIRST_B", "  hello  ")

	if result := firstNonEmptyEnv("_TEST_FIRST_A", "_TEST_FIRST_B"); result != "hello" {
		t.Fatalf("expected 'hello', got %q", result)
	}
}

func TestOperatorConfigFromEnvMissingAccountID(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("HEDERA_PRIVATE_KEY", testPrivateKey)

	if _, err := OperatorConfigFromEnv(); err == nil {
		t.Fatal("expected error for missing account ID")
	}
}

func TestOperatorConfigFromEnvMissingPrivateKey(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("HEDERA_ACCOUNT_ID", "0.0.12345")

	if _, err := OperatorConfigFromEnv(); err == nil {
		t.Fatal("expected error for missing private key")
	}
}

func TestOperatorConfigFromEnvUnsupportedNetwork(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("HEDERA_NETWORK", "previewnet")
	t.Setenv("HEDERA_ACCOUNT_ID", "0.0.12345")
	t.Setenv("HEDERA_PRIVATE_KEY", testPrivateKey)

	if _, err := OperatorConfigFromEnv(); err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestOperatorConfigFromEnvDefaultNetwork(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("HEDERA_ACCOUNT_ID", "0.0.12345")
	t.Setenv("HEDERA_PRIVATE_KEY", testPrivateKey)

	config, err := OperatorConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Network != NetworkTestnet {
		t.Fatalf("expected default network 'testnet', got %q", config.Network)
	}
	if config.AccountID != "0.0.12345" {
		t.Fatalf("expected account ID '0.0.12345', got %q", config.AccountID)
	}
}

func TestOperatorConfigFromEnvScopedMainnet(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("HEDERA_NETWORK", "MAINNET")
	t.Setenv("HEDERA_ACCOUNT_ID", "0.0.11111")
	t.Setenv("HEDERA_PRIVATE_KEY", testPrivateKey)
	t.Setenv("MAINNET_HEDERA_ACCOUNT_ID", "0.0.99999")

	config, err := OperatorConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.AccountID != "0.0.99999" {
		t.Fatalf("expected scoped mainnet account ID '0.0.99999', got %q", config.AccountID)
	}
	if config.Network != NetworkMainnet {
		t.Fatalf("expected normalized network 'mainnet', got %q", config.Network)
	}
}

func TestOperatorConfigFromEnvFallbackOperatorKeys(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("OPERATOR_ID", "0.0.77777")
	t.Setenv("OPERATOR_KEY", testPrivateKey)

	config, err := OperatorConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.AccountID != "0.0.77777" {
		t.Fatalf("expected '0.0.77777', got %q", config.AccountID)
	}
}

func TestParsePrivateKey(t *testing.T) {
	for _, raw := range []string{"", "   ", "0xinvalidhex"} {
		if _, err := ParsePrivateKey(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}

	key, err := ParsePrivateKey(testPrivateKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key.String() == "" {
		t.Fatal("expected non-empty key string")
	}
}
