// Package devledger is a SQLite backed anchor ledger for local development
// and demos. It satisfies anchor.LedgerWriter and anchor.LedgerReader without
// any network: every submission becomes a row whose reference is the SHA-256
// of a fresh UUIDv7 entry ID and the fingerprint, so references are 64 hex
// characters and never repeat.
//
// It gives none of the tamper evidence of a public ledger and must not be
// used to anchor production ratings.
package devledger
