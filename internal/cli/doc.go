// Package cli implements the ratings-anchor command line tool.
//
// Every command writes either text or, with --format json, a single
// {"status", "data", "error"} document to stdout. Exit codes are 0 for
// success, 1 for a rejected request or a MISMATCH, and 2 for usage,
// configuration or ledger failures.
package cli
