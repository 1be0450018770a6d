package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsicoop/ratings-anchor-go/pkg/anchor"
	"github.com/tsicoop/ratings-anchor-go/pkg/authz"
)

type anchorOptions struct {
	CredentialsPath string
	Identity        string
}

type receiptOutput struct {
	anchor.AnchorReceipt
}

func (r receiptOutput) renderText(w io.Writer) {
	fmt.Fprintf(w, "anchored subject %s\n", r.SubjectID)
	fmt.Fprintf(w, "fingerprint: %s\n", r.Fingerprint)
	fmt.Fprintf(w, "reference:   %s\n", r.Reference)
	fmt.Fprintf(w, "content id:  %s\n", r.ContentID)
	fmt.Fprintf(w, "network:     %s\n", r.Network)
	fmt.Fprintf(w, "created at:  %s\n", r.CreatedAt.Format(time.RFC3339))
}

// NewAnchorCommand creates the anchor command.
func NewAnchorCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &anchorOptions{}

	cmd := &cobra.Command{
		Use:   "anchor <record.json|->",
		Short: "Anchor a rating record's fingerprint on the ledger",
		Long: `Validate a rating record, check the caller's credentials against the
configured policy, and anchor the record's fingerprint on the ledger.

The credentials file holds the caller identity and the credentials the
authentication layer verified for it:

  identity: "2"
  credentials:
    - type: verified-auditor
      issuer: did:web:issuer.example
      subjectIdentity: "2"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnchor(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CredentialsPath, "credentials", "", "path to the credentials YAML file")
	cmd.Flags().StringVar(&opts.Identity, "identity", "", "caller identity, overrides the credentials file")
	_ = cmd.MarkFlagRequired("credentials")

	return cmd
}

func runAnchor(rootOpts *RootOptions, opts *anchorOptions, recordPath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	config, err := loadSettings(rootOpts)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}
	gate, err := authz.NewGate(authz.Policy{
		RequiredType:   config.Policy.RequiredType,
		TrustedIssuers: config.Policy.TrustedIssuers,
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}

	credentials, err := LoadCredentials(opts.CredentialsPath)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, err.Error(), err)
	}
	identity := credentials.Identity
	if strings.TrimSpace(opts.Identity) != "" {
		identity = strings.TrimSpace(opts.Identity)
	}

	record, err := readRecord(recordPath, cmd.InOrStdin())
	if err != nil {
		return failRecord(formatter, err)
	}

	logger, err := newLogger(rootOpts)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}
	defer logger.Sync()

	backend, err := openLedger(config, logger, readWrite)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLedger, err.Error(), err)
	}
	defer backend.Close()

	coordinator, err := anchor.NewCoordinator(anchor.CoordinatorConfig{
		Authorizer: gate,
		Ledger:     backend.Writer,
		Network:    backend.Network,
		Logger:     logger,
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
	}

	formatter.VerboseLog("anchoring subject %s on %s", record.SubjectID, backend.Network)
	receipt, err := coordinator.Anchor(cmd.Context(), anchor.AnchorRequest{
		Identity:    identity,
		Credentials: credentials.Credentials,
		Record:      record,
	})
	if err != nil {
		return formatter.FailAnchor(err)
	}

	return formatter.Success(receiptOutput{receipt})
}
