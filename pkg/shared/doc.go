// Package shared holds the settings every ledger adapter needs: network
// normalization, Hedera client construction, operator credentials from the
// environment (with .env discovery) and the YAML configuration file read by
// the command line tool.
package shared
