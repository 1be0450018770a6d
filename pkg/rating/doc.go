// Package rating defines the rating record that is anchored to a ledger,
// together with its canonical byte encoding and SHA-256 fingerprint.
//
// The canonical form is the only input ever hashed. It is a compact JSON
// object whose keys always appear in the order subjectId, assessorId, score,
// assessmentDate, schemaVersion. String fields are trimmed and NFC
// normalized, and the score uses the shortest round-trip number formatting,
// so equal records hash to equal fingerprints on every host.
//
//	record, err := rating.ParseRecord(payload)
//	if err != nil {
//		return err
//	}
//	if err := record.Validate(); err != nil {
//		return err
//	}
//	fingerprint := rating.FingerprintOf(record)
//	fmt.Println(fingerprint.Hex(), fingerprint.CID())
package rating
