package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsicoop/ratings-anchor-go/pkg/hcsanchor"
)

type keygenOutput struct {
	hcsanchor.SealKeyPair
}

func (o keygenOutput) renderText(w io.Writer) {
	fmt.Fprintf(w, "recipient_public_key: %s\n", o.PublicKey)
	fmt.Fprintf(w, "private_key:          %s\n", o.PrivateKey)
}

// NewKeygenCommand creates the keygen command.
func NewKeygenCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a secp256k1 key pair for sealed anchors",
		Long: `Generate a key pair for sealing fingerprints before they are anchored.

Put the public key in seal.recipient_public_key on the anchoring side and
the private key in seal.private_key wherever anchors are verified.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			keyPair, err := hcsanchor.GenerateSealKeyPair()
			if err != nil {
				return formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), err)
			}
			return formatter.Success(keygenOutput{keyPair})
		},
	}
}
