package hcsanchor

import (
	"strings"
	"testing"
)

const referenceFingerprintHex = "d4913e70bd9a7e24dbd3095363f2e6960a82622afbc53b16e181b8691093afcf"

func TestValidateReference(t *testing.T) {
	for _, reference := range []string{
		"0.0.1234@1700000000.123456789",
		" 0.0.5@1.0 ",
	} {
		if err := ValidateReference(reference); err != nil {
			t.Fatalf("expected %q to be valid: %v", reference, err)
		}
	}
	for _, reference := range []string{
		"",
		"0.0.1234",
		"0.0.1234-1700000000-123456789",
		referenceFingerprintHex,
		"0.0.1234@1700000000.123456789?scheduled",
	} {
		if err := ValidateReference(reference); err == nil {
			t.Fatalf("expected %q to be rejected", reference)
		}
	}
}

func TestValidateTopicID(t *testing.T) {
	if err := ValidateTopicID("0.0.42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateTopicID("42"); err == nil {
		t.Fatal("expected error for bare number")
	}
}

func TestValidateAnchorMessage(t *testing.T) {
	valid := AnchorMessage{P: Protocol, Op: OperationAnchor, Fingerprint: referenceFingerprintHex}
	if err := ValidateAnchorMessage(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]AnchorMessage{
		"wrong protocol":  {P: "hcs-2", Op: OperationAnchor, Fingerprint: referenceFingerprintHex},
		"wrong operation": {P: Protocol, Op: "register", Fingerprint: referenceFingerprintHex},
		"no fingerprint":  {P: Protocol, Op: OperationAnchor},
		"uppercase hex":   {P: Protocol, Op: OperationAnchor, Fingerprint: strings.ToUpper(referenceFingerprintHex)},
		"short hex":       {P: Protocol, Op: OperationAnchor, Fingerprint: "abcd"},
		"long memo": {
			P: Protocol, Op: OperationAnchor, Fingerprint: referenceFingerprintHex,
			Memo: strings.Repeat("x", MaxMemoRunes+1),
		},
		"both forms": {
			P: Protocol, Op: OperationAnchor, Fingerprint: referenceFingerprintHex,
			Sealed: &SealedEnvelope{EphemeralPublicKey: "02", Nonce: "AAAAAAAAAAAAAAAA", Ciphertext: "AA=="},
		},
		"bad envelope": {
			P: Protocol, Op: OperationAnchor,
			Sealed: &SealedEnvelope{EphemeralPublicKey: "zz", Nonce: "AAAAAAAAAAAAAAAA", Ciphertext: "AA=="},
		},
	}
	for name, message := range cases {
		if err := ValidateAnchorMessage(message); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestParseAnchorMessage(t *testing.T) {
	payload := []byte(`{"p":"tsi-anchor","op":"anchor","fp":"` + referenceFingerprintHex + `","m":"Rating anchor for subject:1"}`)

	message, err := ParseAnchorMessage(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fingerprint, err := message.PlainFingerprint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fingerprint.Hex() != referenceFingerprintHex {
		t.Fatalf("unexpected fingerprint: %s", fingerprint.Hex())
	}

	if _, err := ParseAnchorMessage([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := ParseAnchorMessage([]byte(`{"p":"tsi-anchor","op":"anchor"}`)); err == nil {
		t.Fatal("expected validation error")
	}
}
