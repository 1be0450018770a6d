// Package anchor implements the anchor-and-verify protocol for rating
// records.
//
// A Coordinator validates and authorizes an anchor request, fingerprints the
// record and hands only the fingerprint to a LedgerWriter. A Verifier
// recomputes the fingerprint of a presented record and compares it with the
// fingerprint a LedgerReader resolves for a reference. Neither keeps state
// between requests; durability lives in the ledger.
//
//	coordinator, err := anchor.NewCoordinator(anchor.CoordinatorConfig{
//		Authorizer: gate,
//		Ledger:     ledger,
//	})
//	receipt, err := coordinator.Anchor(ctx, anchor.AnchorRequest{
//		Identity:    "2",
//		Credentials: credentials,
//		Record:      record,
//	})
//
//	verifier, err := anchor.NewVerifier(anchor.VerifierConfig{Ledger: ledger})
//	result, err := verifier.Verify(ctx, record, receipt.Reference)
package anchor
