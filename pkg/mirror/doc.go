// Package mirror is a small Hedera Mirror Node REST client. It resolves
// transaction IDs, fetches topic metadata and reads topic messages, which is
// everything the anchor reader needs from the read-only view of the ledger.
//
// A 404 from the mirror node is reported as an error wrapping ErrNotFound so
// callers can tell a missing anchor from an unreachable node.
package mirror
