package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsicoop/ratings-anchor-go/pkg/anchor"
)

type verificationOutput struct {
	anchor.VerificationResult
}

func (v verificationOutput) renderText(w io.Writer) {
	fmt.Fprintf(w, "%s\n", v.Outcome)
	fmt.Fprintf(w, "subject:   %s\n", v.SubjectID)
	fmt.Fprintf(w, "reference: %s\n", v.Reference)
	fmt.Fprintf(w, "presented: %s\n", v.PresentedFingerprint)
	fmt.Fprintf(w, "anchored:  %s\n", v.RetrievedFingerprint)
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <record.json|-> <reference>",
		Short: "Check a rating record against its anchored fingerprint",
		Long: `Recompute the fingerprint of a presented rating record and compare it with
the fingerprint anchored under reference.

Exits 0 on MATCH and 1 on MISMATCH or when the reference does not resolve.
Ledger failures exit 2 and are never reported as MISMATCH.`,
		Args:          cobra.ExactArgs(2),
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

			verifier, err := anchor.NewVerifier(anchor.VerifierConfig{
				Ledger:          backend.Reader,
				ReferenceFormat: backend.ReferenceFormat,
				Logger:          logger,
			})
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), err)
			}

			result, err := verifier.Verify(cmd.Context(), record, args[1])
			if err != nil {
				return formatter.FailAnchor(err)
			}

			if err := formatter.Success(verificationOutput{result}); err != nil {
				return err
			}
			if !result.Matched() {
				return NewExitError(ExitFailure, string(anchor.OutcomeMismatch))
			}
			return nil
		},
	}
}
