package rating

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

const FingerprintSize = sha256.Size

// Fingerprint is the SHA-256 digest of a record's canonical form.
type Fingerprint [FingerprintSize]byte

// ComputeFingerprint hashes canonical bytes.
func ComputeFingerprint(canonical []byte) Fingerprint {
	return Fingerprint(sha256.Sum256(canonical))
}

// FingerprintOf canonicalizes and hashes a validated record.
func FingerprintOf(record RatingRecord) Fingerprint {
	return ComputeFingerprint(Canonicalize(record))
}

// ParseFingerprint decodes a 64 character hex fingerprint. Case is ignored.
func ParseFingerprint(value string) (Fingerprint, error) {
	var fingerprint Fingerprint

	trimmed := strings.TrimSpace(value)
	if len(trimmed) != hex.EncodedLen(FingerprintSize) {
		return fingerprint, fmt.Errorf(
			"fingerprint must be %d hex characters, got %d",
			hex.EncodedLen(FingerprintSize),
			len(trimmed),
		)
	}
	if _, err := hex.Decode(fingerprint[:], []byte(strings.ToLower(trimmed))); err != nil {
		return Fingerprint{}, fmt.Errorf("fingerprint is not valid hex: %w", err)
	}

	return fingerprint, nil
}

// FingerprintFromBytes copies a raw 32-byte digest.
func FingerprintFromBytes(raw []byte) (Fingerprint, error) {
	var fingerprint Fingerprint
	if len(raw) != FingerprintSize {
		return fingerprint, fmt.Errorf("fingerprint must be %d bytes, got %d", FingerprintSize, len(raw))
	}
	copy(fingerprint[:], raw)
	return fingerprint, nil
}

func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f[:])
}

func (f Fingerprint) String() string {
	return f.Hex()
}

func (f Fingerprint) Bytes() []byte {
	out := make([]byte, FingerprintSize)
	copy(out, f[:])
	return out
}

func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

// Equal compares two fingerprints byte for byte in constant time.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return subtle.ConstantTimeCompare(f[:], other[:]) == 1
}

// CID returns the CIDv1 (raw codec, sha2-256 multihash) naming the same
// canonical bytes as the fingerprint.
func (f Fingerprint) CID() string {
	encoded, err := multihash.Encode(f[:], multihash.SHA2_256)
	if err != nil {
		return ""
	}
	return cid.NewCidV1(cid.Raw, multihash.Multihash(encoded)).String()
}

func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.Hex()), nil
}

func (f *Fingerprint) UnmarshalText(text []byte) error {
	parsed, err := ParseFingerprint(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
