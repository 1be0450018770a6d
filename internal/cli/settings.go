package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsicoop/ratings-anchor-go/pkg/anchor"
	"github.com/tsicoop/ratings-anchor-go/pkg/devledger"
	"github.com/tsicoop/ratings-anchor-go/pkg/hcsanchor"
	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
	"github.com/tsicoop/ratings-anchor-go/pkg/shared"
)

// ledgerBackend is the ledger selected by configuration.
type ledgerBackend struct {
	Writer          anchor.LedgerWriter
	Reader          anchor.LedgerReader
	ReferenceFormat anchor.ReferenceFormat
	Network         string
	history         func(ctx context.Context, fingerprint rating.Fingerprint) ([]historyEntry, error)
	close           func() error
}

func (b *ledgerBackend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

func loadSettings(opts *RootOptions) (shared.Config, error) {
	config, err := shared.LoadConfig(opts.ConfigPath)
	if err != nil {
		return shared.Config{}, err
	}
	if opts.Ledger != "" {
		config.Ledger = opts.Ledger
		if err := config.Validate(); err != nil {
			return shared.Config{}, fmt.Errorf("invalid config: %w", err)
		}
	}
	return config, nil
}

func newLogger(opts *RootOptions) (*zap.Logger, error) {
	if opts.Logger != nil {
		return opts.Logger, nil
	}
	if opts.Verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}

// ledgerAccess says whether a command writes anchors or only reads them.
type ledgerAccess int

const (
	readOnly ledgerAccess = iota
	readWrite
)

func openLedger(config shared.Config, logger *zap.Logger, access ledgerAccess) (*ledgerBackend, error) {
	switch config.Ledger {
	case shared.LedgerDev:
		ledger, err := devledger.Open(devledger.Config{Path: config.Dev.Path, Logger: logger})
		if err != nil {
			return nil, err
		}
		return &ledgerBackend{
			Writer:          ledger,
			Reader:          ledger,
			ReferenceFormat: anchor.HexReference,
			Network:         devledger.Network,
			history: func(ctx context.Context, fingerprint rating.Fingerprint) ([]historyEntry, error) {
				entries, err := ledger.FindByFingerprint(ctx, fingerprint)
				if err != nil {
					return nil, err
				}
				result := make([]historyEntry, 0, len(entries))
				for _, entry := range entries {
					result = append(result, historyEntry{
						Reference:   entry.Reference,
						AnchoredAt:  entry.CreatedAt.UTC().Format(time.RFC3339),
						Description: entry.Description,
					})
				}
				return result, nil
			},
			close: ledger.Close,
		}, nil
	case shared.LedgerHedera:
		if access == readOnly {
			reader, err := newHederaReader(config, logger)
			if err != nil {
				return nil, err
			}
			return &ledgerBackend{
				Reader:          reader,
				ReferenceFormat: hcsanchor.ValidateReference,
				Network:         "hedera-" + config.Network,
				history:         hederaHistory(reader),
				close:           reader.Close,
			}, nil
		}

		client, err := newHederaClient(config, logger)
		if err != nil {
			return nil, err
		}
		return &ledgerBackend{
			Writer:          client,
			Reader:          client,
			ReferenceFormat: hcsanchor.ValidateReference,
			Network:         "hedera-" + config.Network,
			history:         hederaHistory(client.Reader),
			close:           client.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported ledger %q", config.Ledger)
	}
}

func hederaHistory(reader *hcsanchor.Reader) func(context.Context, rating.Fingerprint) ([]historyEntry, error) {
	return func(ctx context.Context, fingerprint rating.Fingerprint) ([]historyEntry, error) {
		entries, err := reader.History(ctx, fingerprint)
		if err != nil {
			return nil, err
		}
		result := make([]historyEntry, 0, len(entries))
		for _, entry := range entries {
			result = append(result, historyEntry{
				Reference:   entry.Reference,
				AnchoredAt:  entry.ConsensusTimestamp,
				Description: entry.Description,
				Sealed:      entry.Sealed,
			})
		}
		return result, nil
	}
}

// newHederaReader builds a mirror node reader. No operator account is
// needed to read anchors.
func newHederaReader(config shared.Config, logger *zap.Logger) (*hcsanchor.Reader, error) {
	opener, err := sealOpener(config)
	if err != nil {
		return nil, err
	}
	return hcsanchor.NewReader(hcsanchor.ReaderConfig{
		Network:       config.Network,
		TopicID:       config.Hedera.TopicID,
		MirrorBaseURL: config.Hedera.MirrorBaseURL,
		MirrorAPIKey:  config.Hedera.MirrorAPIKey,
		Opener:        opener,
		Logger:        logger,
	})
}

func newHederaClient(config shared.Config, logger *zap.Logger) (*hcsanchor.Client, error) {
	operator, err := shared.OperatorConfigFromEnv()
	if err != nil {
		return nil, err
	}
	opener, err := sealOpener(config)
	if err != nil {
		return nil, err
	}

	clientConfig := hcsanchor.ClientConfig{
		OperatorAccountID:  operator.AccountID,
		OperatorPrivateKey: operator.PrivateKey,
		Network:            config.Network,
		TopicID:            config.Hedera.TopicID,
		MirrorBaseURL:      config.Hedera.MirrorBaseURL,
		MirrorAPIKey:       config.Hedera.MirrorAPIKey,
		Opener:             opener,
		Compress:           config.Hedera.Compress,
		Logger:             logger,
	}
	if strings.TrimSpace(config.Seal.RecipientPublicKey) != "" {
		clientConfig.Sealer, err = hcsanchor.NewSealer(config.Seal.RecipientPublicKey)
		if err != nil {
			return nil, err
		}
	}

	return hcsanchor.NewClient(clientConfig)
}

func sealOpener(config shared.Config) (*hcsanchor.Opener, error) {
	if strings.TrimSpace(config.Seal.PrivateKey) == "" {
		return nil, nil
	}
	return hcsanchor.NewOpener(config.Seal.PrivateKey)
}

// readRecord parses a rating record from path, or stdin when path is "-".
func readRecord(path string, stdin io.Reader) (rating.RatingRecord, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return rating.RatingRecord{}, fmt.Errorf("failed to read record: %w", err)
	}
	return rating.ParseRecord(data)
}

// failRecord reports a record that could not be read (exit 2) or that is
// not a valid rating record (exit 1, invalid-input).
func failRecord(formatter *OutputFormatter, err error) error {
	var validationErr *rating.ValidationError
	if errors.As(err, &validationErr) {
		return formatter.Fail(ExitFailure, string(anchor.KindInvalidInput), err.Error(), err)
	}
	return formatter.Fail(ExitCommandError, ErrCodeInput, err.Error(), err)
}
