package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsicoop/ratings-anchor-go/pkg/shared"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Ledger     string // overrides the config file when set

	// Logger replaces the flag-driven logger; used by tests.
	Logger *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the ratings-anchor CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings-anchor",
		Short: "Anchor and verify rating fingerprints",
		Long: `ratings-anchor fingerprints rating records, anchors the fingerprint on a
ledger on behalf of an authorized assessor, and later verifies a presented
record against the anchored fingerprint.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			switch opts.Ledger {
			case "", shared.LedgerHedera, shared.LedgerDev:
			default:
				return fmt.Errorf("invalid ledger %q: must be hedera or dev", opts.Ledger)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Ledger, "ledger", "", "ledger to use (hedera|dev), overrides the config file")

	cmd.AddCommand(NewFingerprintCommand(opts))
	cmd.AddCommand(NewAnchorCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTopicCommand(opts))
	cmd.AddCommand(NewKeygenCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
