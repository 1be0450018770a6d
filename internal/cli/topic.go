package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsicoop/ratings-anchor-go/pkg/hcsanchor"
	"github.com/tsicoop/ratings-anchor-go/pkg/shared"
)

type topicCreateOptions struct {
	TTL                 int64
	UseOperatorAsAdmin  bool
	UseOperatorAsSubmit bool
}

type topicCreateOutput struct {
	hcsanchor.CreateTopicResult
}

func (o topicCreateOutput) renderText(w io.Writer) {
	fmt.Fprintf(w, "topic:       %s\n", o.TopicID)
	fmt.Fprintf(w, "transaction: %s\n", o.TransactionID)
}

type topicCheckOutput struct {
	TopicID string `json:"topicId"`
	TTL     int64  `json:"ttl"`
}

func (o topicCheckOutput) renderText(w io.Writer) {
	fmt.Fprintf(w, "topic %s is an anchor topic (ttl %d)\n", o.TopicID, o.TTL)
}

// NewTopicCommand creates the topic command group (Hedera only).
func NewTopicCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Manage the Hedera anchor topic",
	}
	cmd.AddCommand(newTopicCreateCommand(rootOpts))
	cmd.AddCommand(newTopicCheckCommand(rootOpts))
	return cmd
}

func newTopicCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &topicCreateOptions{}

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "Create a new anchor topic paid by the operator account",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			backend, cleanup, err := openHederaBackend(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer cleanup()

			ttl := opts.TTL
			if ttl <= 0 {
				ttl = backend.ttl
			}
			result, err := backend.client.CreateAnchorTopic(cmd.Context(), hcsanchor.CreateTopicOptions{
				TTL:                 ttl,
				UseOperatorAsAdmin:  opts.UseOperatorAsAdmin,
				UseOperatorAsSubmit: opts.UseOperatorAsSubmit,
			})
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeLedger, err.Error(), err)
			}
			return formatter.Success(topicCreateOutput{result})
		},
	}

	cmd.Flags().Int64Var(&opts.TTL, "ttl", 0, "topic TTL in seconds (defaults to hedera.topic_ttl)")
	cmd.Flags().BoolVar(&opts.UseOperatorAsAdmin, "operator-admin", true, "set the operator key as topic admin key")
	cmd.Flags().BoolVar(&opts.UseOperatorAsSubmit, "operator-submit", true, "restrict submissions to the operator key")

	return cmd
}

func newTopicCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "check",
		Short:         "Confirm the configured topic is an anchor topic",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			backend, cleanup, err := openHederaBackend(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer cleanup()

			memo, err := backend.client.CheckTopic(cmd.Context())
			if err != nil {
				return formatter.Fail(ExitFailure, ErrCodeLedger, err.Error(), err)
			}
			return formatter.Success(topicCheckOutput{TopicID: backend.client.TopicID(), TTL: memo.TTL})
		},
	}
}

type hederaBackend struct {
	client *hcsanchor.Client
	ttl    int64
}

func openHederaBackend(rootOpts *RootOptions, formatter *OutputFormatter) (*hederaBackend, func(), error) {
	config, err := loadSettings(rootOpts)
	if err != nil {
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}
	if config.Ledger != shared.LedgerHedera {
		err := fmt.Errorf("topic commands need the hedera ledger, got %q", config.Ledger)
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), err)
	}

	logger, err := newLogger(rootOpts)
	if err != nil {
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}
	client, err := newHederaClient(config, logger)
	if err != nil {
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeLedger, err.Error(), err)
	}

	cleanup := func() {
		client.Close()
		logger.Sync()
	}
	return &hederaBackend{client: client, ttl: config.Hedera.TopicTTL}, cleanup, nil
}
