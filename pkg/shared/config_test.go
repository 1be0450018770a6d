package shared

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RATINGS_ANCHOR_LEDGER",
		"RATINGS_ANCHOR_NETWORK",
		"RATINGS_ANCHOR_TOPIC_ID",
		"RATINGS_ANCHOR_MIRROR_URL",
		"RATINGS_ANCHOR_MIRROR_API_KEY",
		"RATINGS_ANCHOR_DEV_PATH",
		"RATINGS_ANCHOR_SEAL_PUBLIC_KEY",
		"RATINGS_ANCHOR_SEAL_PRIVATE_KEY",
		"RATINGS_ANCHOR_COMPRESS",
		"RATINGS_ANCHOR_TRUSTED_ISSUERS",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Ledger != LedgerDev || config.Network != NetworkTestnet {
		t.Fatalf("unexpected defaults: %+v", config)
	}
	if config.Dev.Path != DefaultDevLedgerPath {
		t.Fatalf("unexpected dev path: %s", config.Dev.Path)
	}
	if config.Hedera.TopicTTL != DefaultTopicTTL {
		t.Fatalf("unexpected topic ttl: %d", config.Hedera.TopicTTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, `
ledger: Hedera
network: MAINNET
hedera:
  topic_id: 0.0.4242
  compress: true
policy:
  required_type: verified-auditor
  trusted_issuers:
    - did:web:issuer.example
seal:
  recipient_public_key: 02abcdef
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Ledger != LedgerHedera || config.Network != NetworkMainnet {
		t.Fatalf("expected normalized ledger and network, got %+v", config)
	}
	if config.Hedera.TopicID != "0.0.4242" || !config.Hedera.Compress {
		t.Fatalf("unexpected hedera config: %+v", config.Hedera)
	}
	if !reflect.DeepEqual(config.Policy.TrustedIssuers, []string{"did:web:issuer.example"}) {
		t.Fatalf("unexpected issuers: %v", config.Policy.TrustedIssuers)
	}
	if config.Seal.RecipientPublicKey != "02abcdef" {
		t.Fatalf("unexpected seal key: %s", config.Seal.RecipientPublicKey)
	}
	if config.Hedera.TopicTTL != DefaultTopicTTL {
		t.Fatalf("expected default topic ttl to survive, got %d", config.Hedera.TopicTTL)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	clearConfigEnv(t)

	config, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Ledger != LedgerDev {
		t.Fatalf("expected default ledger, got %s", config.Ledger)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	clearConfigEnv(t)

	if _, err := LoadConfig(writeConfig(t, "ledgr: dev\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadConfigRejectsUnknownLedger(t *testing.T) {
	clearConfigEnv(t)

	if _, err := LoadConfig(writeConfig(t, "ledger: bitcoin\n")); err == nil {
		t.Fatal("expected error for unsupported ledger")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearConfigEnv(t)

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("RATINGS_ANCHOR_LEDGER", "hedera")
	t.Setenv("RATINGS_ANCHOR_TOPIC_ID", "0.0.99")
	t.Setenv("RATINGS_ANCHOR_COMPRESS", "true")
	t.Setenv("RATINGS_ANCHOR_TRUSTED_ISSUERS", " issuer-a , ,issuer-b")

	config, err := LoadConfig(writeConfig(t, "ledger: dev\nhedera:\n  topic_id: 0.0.1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Ledger != LedgerHedera {
		t.Fatalf("expected env ledger override, got %s", config.Ledger)
	}
	if config.Hedera.TopicID != "0.0.99" || !config.Hedera.Compress {
		t.Fatalf("unexpected hedera overrides: %+v", config.Hedera)
	}
	if !reflect.DeepEqual(config.Policy.TrustedIssuers, []string{"issuer-a", "issuer-b"}) {
		t.Fatalf("unexpected issuers: %v", config.Policy.TrustedIssuers)
	}
}

func TestLoadConfigInvalidCompressOverride(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("RATINGS_ANCHOR_COMPRESS", "sometimes")

	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for invalid boolean override")
	}
}
