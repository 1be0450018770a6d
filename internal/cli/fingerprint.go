package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

// FingerprintResult is the output of the fingerprint command.
type FingerprintResult struct {
	Fingerprint rating.Fingerprint `json:"fingerprint"`
	ContentID   string             `json:"contentId"`
	Canonical   string             `json:"canonical"`
}

func (r FingerprintResult) renderText(w io.Writer) {
	fmt.Fprintf(w, "fingerprint: %s\n", r.Fingerprint)
	fmt.Fprintf(w, "content id:  %s\n", r.ContentID)
	fmt.Fprintf(w, "canonical:   %s\n", r.Canonical)
}

// NewFingerprintCommand creates the fingerprint command.
func NewFingerprintCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <record.json|->",
		Short: "Print the canonical form and fingerprint of a rating record",
		Long: `Canonicalize a rating record and print its SHA-256 fingerprint.

No ledger is contacted. Use "-" to read the record from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			record, err := readRecord(args[0], cmd.InOrStdin())
			if err != nil {
				return failRecord(formatter, err)
			}
			if err := record.Validate(); err != nil {
				return failRecord(formatter, err)
			}

			canonical := rating.Canonicalize(record)
			fingerprint := rating.ComputeFingerprint(canonical)
			return formatter.Success(FingerprintResult{
				Fingerprint: fingerprint,
				ContentID:   fingerprint.CID(),
				Canonical:   string(canonical),
			})
		},
	}
}
