package anchor

import (
	"fmt"
	"regexp"
	"strings"
)

// ReferenceFormat checks the syntax of a ledger reference before any
// collaborator call is made.
type ReferenceFormat func(reference string) error

var hexReferencePattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// HexReference accepts 64 character hex transaction identifiers.
func HexReference(reference string) error {
	if !hexReferencePattern.MatchString(strings.TrimSpace(reference)) {
		return fmt.Errorf("reference must be a 64 character hex identifier")
	}
	return nil
}
