package hcsanchor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

const gcmNonceSize = 12

// SealedEnvelope is an encrypted fingerprint. EphemeralPublicKey is a
// compressed secp256k1 point in hex; Nonce and Ciphertext are base64.
type SealedEnvelope struct {
	EphemeralPublicKey string `json:"epk"`
	Nonce              string `json:"iv"`
	Ciphertext         string `json:"ct"`
}

type SealKeyPair struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

// Sealer encrypts fingerprints to a single recipient public key.
type Sealer struct {
	recipient *btcec.PublicKey
}

// Opener decrypts envelopes addressed to its private key.
type Opener struct {
	privateKey *btcec.PrivateKey
}

// GenerateSealKeyPair creates a new secp256k1 key pair in hex.
func GenerateSealKeyPair() (SealKeyPair, error) {
	privateKey, err := btcec.NewPrivateKey()
	if err != nil {
		return SealKeyPair{}, err
	}
	return SealKeyPair{
		PrivateKey: hex.EncodeToString(privateKey.Serialize()),
		PublicKey:  hex.EncodeToString(privateKey.PubKey().SerializeCompressed()),
	}, nil
}

// NewSealer creates a new Sealer.
func NewSealer(recipientPublicKeyHex string) (*Sealer, error) {
	raw, err := parseHexKey(recipientPublicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient public key: %w", err)
	}
	publicKey, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient public key: %w", err)
	}
	return &Sealer{recipient: publicKey}, nil
}

// NewOpener creates a new Opener.
func NewOpener(privateKeyHex string) (*Opener, error) {
	raw, err := parseHexKey(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid seal private key: %w", err)
	}
	if len(raw) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("invalid seal private key: must be %d bytes", btcec.PrivKeyBytesLen)
	}
	privateKey, _ := btcec.PrivKeyFromBytes(raw)
	return &Opener{privateKey: privateKey}, nil
}

// PublicKey returns the compressed public key envelopes must be sealed to.
func (o *Opener) PublicKey() string {
	return hex.EncodeToString(o.privateKey.PubKey().SerializeCompressed())
}

// Seal encrypts fingerprint under a fresh ephemeral key.
func (s *Sealer) Seal(fingerprint rating.Fingerprint) (SealedEnvelope, error) {
	ephemeral, err := btcec.NewPrivateKey()
	if err != nil {
		return SealedEnvelope{}, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}

	gcm, err := newGCM(btcec.GenerateSharedSecret(ephemeral, s.recipient))
	if err != nil {
		return SealedEnvelope{}, err
	}

	nonce := make([]byte, gcmNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return SealedEnvelope{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, fingerprint.Bytes(), []byte(Protocol))
	return SealedEnvelope{
		EphemeralPublicKey: hex.EncodeToString(ephemeral.PubKey().SerializeCompressed()),
		Nonce:              base64.StdEncoding.EncodeToString(nonce),
		Ciphertext:         base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// Open decrypts envelope back into the anchored fingerprint.
func (o *Opener) Open(envelope SealedEnvelope) (rating.Fingerprint, error) {
	if err := envelope.validate(); err != nil {
		return rating.Fingerprint{}, err
	}

	ephemeralRaw, _ := hex.DecodeString(envelope.EphemeralPublicKey)
	ephemeral, err := btcec.ParsePubKey(ephemeralRaw)
	if err != nil {
		return rating.Fingerprint{}, fmt.Errorf("invalid ephemeral public key: %w", err)
	}
	nonce, _ := base64.StdEncoding.DecodeString(envelope.Nonce)
	ciphertext, _ := base64.StdEncoding.DecodeString(envelope.Ciphertext)

	gcm, err := newGCM(btcec.GenerateSharedSecret(o.privateKey, ephemeral))
	if err != nil {
		return rating.Fingerprint{}, err
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, []byte(Protocol))
	if err != nil {
		return rating.Fingerprint{}, fmt.Errorf("failed to open sealed fingerprint: %w", err)
	}

	return rating.FingerprintFromBytes(plaintext)
}

func (e SealedEnvelope) validate() error {
	if _, err := hex.DecodeString(e.EphemeralPublicKey); err != nil || e.EphemeralPublicKey == "" {
		return fmt.Errorf("epk must be a hex encoded public key")
	}
	nonce, err := base64.StdEncoding.DecodeString(e.Nonce)
	if err != nil || len(nonce) != gcmNonceSize {
		return fmt.Errorf("iv must be a base64 encoded %d byte nonce", gcmNonceSize)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(e.Ciphertext)
	if err != nil || len(ciphertext) == 0 {
		return fmt.Errorf("ct must be base64 encoded ciphertext")
	}
	return nil
}

func newGCM(sharedSecret []byte) (cipher.AEAD, error) {
	key := sha256.Sum256(sharedSecret)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func parseHexKey(value string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "0x")
	if trimmed == "" {
		return nil, fmt.Errorf("hex key is required")
	}
	return hex.DecodeString(trimmed)
}
