package anchor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"testing"

	"github.com/tsicoop/ratings-anchor-go/pkg/authz"
	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
)

const testIssuer = "0220529dc803041a83f4357864a09c717daa24397cf2f3fc3a5745ae08d30924fd"

type memoryLedger struct {
	mu          sync.Mutex
	entries     map[string]rating.Fingerprint
	submits     int
	resolves    int
	submitErr   error
	resolveErr  error
	lastMessage string
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{entries: map[string]rating.Fingerprint{}}
}

func (l *memoryLedger) Submit(ctx context.Context, fingerprint rating.Fingerprint, description string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.submits++
	if l.submitErr != nil {
		return "", l.submitErr
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", l.submits, fingerprint.Hex())))
	reference := hex.EncodeToString(sum[:])
	l.entries[reference] = fingerprint
	l.lastMessage = description
	return reference, nil
}

func (l *memoryLedger) Resolve(ctx context.Context, reference string) (rating.Fingerprint, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.resolves++
	if l.resolveErr != nil {
		return rating.Fingerprint{}, l.resolveErr
	}
	fingerprint, ok := l.entries[reference]
	if !ok {
		return rating.Fingerprint{}, fmt.Errorf("lookup %s: %w", reference, ErrNotFound)
	}
	return fingerprint, nil
}

func testRecord() rating.RatingRecord {
	return rating.RatingRecord{
		SubjectID:      "1",
		AssessorID:     "2",
		Score:          91.5,
		AssessmentDate: "2025-11-04T10:30:00Z",
		SchemaVersion:  "v1",
	}
}

func validCredentials(subject string) []authz.Credential {
	return []authz.Credential{{
		Type:            authz.DefaultRequiredType,
		Issuer:          testIssuer,
		SubjectIdentity: subject,
	}}
}

func newTestGate(t *testing.T) *authz.Gate {
	t.Helper()
	gate, err := authz.NewGate(authz.Policy{TrustedIssuers: []string{testIssuer}})
	if err != nil {
		t.Fatalf("NewGate failed: %v", err)
	}
	return gate
}
