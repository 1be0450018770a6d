package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

type historyEntry struct {
	Reference   string `json:"reference"`
	AnchoredAt  string `json:"anchoredAt"`
	Description string `json:"description,omitempty"`
	Sealed      bool   `json:"sealed,omitempty"`
}

type historyOutput struct {
	Fingerprint rating.Fingerprint `json:"fingerprint"`
	Network     string             `json:"network"`
	Anchors     []historyEntry     `json:"anchors"`
}

func (h historyOutput) renderText(w io.Writer) {
	fmt.Fprintf(w, "fingerprint %s has %d anchor(s) on %s\n", h.Fingerprint, len(h.Anchors), h.Network)
	for _, entry := range h.Anchors {
		reference := entry.Reference
		if reference == "" {
			reference = "(unknown reference)"
		}
		fmt.Fprintf(w, "  %s  %s  %s\n", entry.AnchoredAt, reference, entry.Description)
	}
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <record.json|->",
		Short: "List the anchors recorded for a rating record",
		Long: `Fingerprint a rating record and list every anchor of that fingerprint
on the configured ledger, oldest first.

On Hedera this scans the anchor topic through the mirror node. A record
that was never anchored is not an error; the list is simply empty.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			config, err := loadSettings(rootOpts)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
			}
			record, err := readRecord(args[0], cmd.InOrStdin())
			if err != nil {
				return failRecord(formatter, err)
			}
			if err := record.Validate(); err != nil {
				return failRecord(formatter, err)
			}

			logger, err := newLogger(rootOpts)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
			}
			defer logger.Sync()

			backend, err := openLedger(config, logger, readOnly)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeLedger, err.Error(), err)
			}
			defer backend.Close()

			fingerprint := rating.FingerprintOf(record)
			anchors, err := backend.history(cmd.Context(), fingerprint)
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeLedger, err.Error(), err)
			}

			return formatter.Success(historyOutput{
				Fingerprint: fingerprint,
				Network:     backend.Network,
				Anchors:     anchors,
			})
		},
	}
}
