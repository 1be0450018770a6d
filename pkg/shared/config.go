package shared

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	LedgerHedera = "hedera"
	LedgerDev    = "dev"
)

const (
	DefaultDevLedgerPath = "ratings-anchor.db"
	DefaultTopicTTL      = 86400
)

// Config is the ratings-anchor configuration file.
type Config struct {
	Ledger  string       `yaml:"ledger"`
	Network string       `yaml:"network"`
	Hedera  HederaConfig `yaml:"hedera"`
	Dev     DevConfig    `yaml:"dev"`
	Policy  PolicyConfig `yaml:"policy"`
	Seal    SealConfig   `yaml:"seal"`
}

type HederaConfig struct {
	TopicID       string `yaml:"topic_id"`
	MirrorBaseURL string `yaml:"mirror_base_url"`
	MirrorAPIKey  string `yaml:"mirror_api_key"`
	Compress      bool   `yaml:"compress"`
	TopicTTL      int64  `yaml:"topic_ttl"`
}

type DevConfig struct {
	Path string `yaml:"path"`
}

type PolicyConfig struct {
	RequiredType   string   `yaml:"required_type"`
	TrustedIssuers []string `yaml:"trusted_issuers"`
}

// SealConfig holds hex encoded secp256k1 keys. The anchoring side needs only
// the recipient public key; the verifying side needs the private key.
type SealConfig struct {
	RecipientPublicKey string `yaml:"recipient_public_key"`
	PrivateKey         string `yaml:"private_key"`
}

// DefaultConfig returns a dev ledger configuration on testnet.
func DefaultConfig() Config {
	return Config{
		Ledger:  LedgerDev,
		Network: NetworkTestnet,
		Hedera:  HederaConfig{TopicTTL: DefaultTopicTTL},
		Dev:     DevConfig{Path: DefaultDevLedgerPath},
	}
}

// LoadConfig reads the YAML file at path over the defaults and applies
// RATINGS_ANCHOR_* environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}

		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate normalizes the ledger kind and network in place.
func (c *Config) Validate() error {
	c.Ledger = strings.ToLower(strings.TrimSpace(c.Ledger))
	switch c.Ledger {
	case LedgerHedera, LedgerDev:
	case "":
		c.Ledger = LedgerDev
	default:
		return fmt.Errorf("unsupported ledger %q", c.Ledger)
	}

	network, err := NormalizeNetwork(c.Network)
	if err != nil {
		return err
	}
	c.Network = network

	if c.Hedera.TopicTTL < 0 {
		return fmt.Errorf("hedera.topic_ttl must not be negative")
	}
	if c.Ledger == LedgerDev && strings.TrimSpace(c.Dev.Path) == "" {
		return fmt.Errorf("dev.path is required for the dev ledger")
	}

	return nil
}

func (c *Config) applyEnv() error {
	overrides := []struct {
		key    string
		target *string
	}{
		{"RATINGS_ANCHOR_LEDGER", &c.Ledger},
		{"RATINGS_ANCHOR_NETWORK", &c.Network},
		{"RATINGS_ANCHOR_TOPIC_ID", &c.Hedera.TopicID},
		{"RATINGS_ANCHOR_MIRROR_URL", &c.Hedera.MirrorBaseURL},
		{"RATINGS_ANCHOR_MIRROR_API_KEY", &c.Hedera.MirrorAPIKey},
		{"RATINGS_ANCHOR_DEV_PATH", &c.Dev.Path},
		{"RATINGS_ANCHOR_SEAL_PUBLIC_KEY", &c.Seal.RecipientPublicKey},
		{"RATINGS_ANCHOR_SEAL_PRIVATE_KEY", &c.Seal.PrivateKey},
	}
	for _, override := range overrides {
		if value := strings.TrimSpace(os.Getenv(override.key)); value != "" {
			*override.target = value
		}
	}

	if value := strings.TrimSpace(os.Getenv("RATINGS_ANCHOR_COMPRESS")); value != "" {
		compress, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("RATINGS_ANCHOR_COMPRESS: %w", err)
		}
		c.Hedera.Compress = compress
	}

	if value := strings.TrimSpace(os.Getenv("RATINGS_ANCHOR_TRUSTED_ISSUERS")); value != "" {
		issuers := make([]string, 0)
		for _, issuer := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(issuer); trimmed != "" {
				issuers = append(issuers, trimmed)
			}
		}
		c.Policy.TrustedIssuers = issuers
	}

	return nil
}
