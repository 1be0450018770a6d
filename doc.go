// Ratings Anchor for Go anchors the SHA-256 fingerprint of a rating record
// on a public ledger so that anyone holding the record can later prove it
// was not altered. The record itself never leaves the caller; only its
// fingerprint is published.
//
// # Packages
//
//   - rating: record validation, canonical form and fingerprints
//   - authz: credential policy for who may anchor a rating
//   - anchor: the anchor coordinator and the verifier
//   - hcsanchor: Hedera Consensus Service ledger backed by the mirror node
//   - devledger: SQLite ledger for local development and tests
//   - mirror: Hedera mirror node REST client
//   - shared: network, operator and configuration helpers
//
// The ratings-anchor command under cmd/ wires these together:
//
//	ratings-anchor fingerprint record.json
//	ratings-anchor anchor record.json --credentials creds.yaml
//	ratings-anchor verify record.json <reference>
//	ratings-anchor history record.json
//
// # Installation
//
//	go install github.com/tsicoop/ratings-anchor-go/cmd/ratings-anchor@latest
package ratings_anchor_go
