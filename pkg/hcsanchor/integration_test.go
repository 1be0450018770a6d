package hcsanchor

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tsicoop/ratings-anchor-go/pkg/anchor"
	"github.com/tsicoop/ratings-anchor-go/pkg/rating"
	"github.com/tsicoop/ratings-anchor-go/pkg/shared"
)

func TestHCSAnchorIntegration_EndToEnd(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") != "1" {
		t.Skip("set RUN_INTEGRATION=1 to run live Hedera integration tests")
	}

	operatorConfig, err := shared.OperatorConfigFromEnv()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	if strings.EqualFold(operatorConfig.Network, shared.NetworkMainnet) && os.Getenv("ALLOW_MAINNET_INTEGRATION") != "1" {
		t.Skip("resolved mainnet credentials; set ALLOW_MAINNET_INTEGRATION=1 to allow live mainnet writes")
	}

	keyPair, err := GenerateSealKeyPair()
	if err != nil {
		t.Fatalf("failed to generate seal key pair: %v", err)
	}
	sealer, _ := NewSealer(keyPair.PublicKey)
	opener, _ := NewOpener(keyPair.PrivateKey)

	client, err := NewClient(ClientConfig{
		OperatorAccountID:  operatorConfig.AccountID,
		OperatorPrivateKey: operatorConfig.PrivateKey,
		Network:            operatorConfig.Network,
		Sealer:             sealer,
		Opener:             opener,
		Compress:           true,
	})
	if err != nil {
		t.Fatalf("failed to create anchor client: %v", err)
	}

	ctx := context.Background()
	topic, err := client.CreateAnchorTopic(ctx, CreateTopicOptions{TTL: 3600, UseOperatorAsSubmit: true})
	if err != nil {
		t.Fatalf("failed to create anchor topic: %v", err)
	}
	t.Logf("created anchor topic: %s", topic.TopicID)

	record := rating.RatingRecord{
		SubjectID:      "1",
		AssessorID:     "2",
		Score:          91.5,
		AssessmentDate: "2025-11-04T10:30:00Z",
		SchemaVersion:  "v1",
	}
	fingerprint := rating.FingerprintOf(record)
	reference, err := client.Submit(ctx, fingerprint, "Rating anchor for subject:1")
	if err != nil {
		t.Fatalf("failed to submit anchor: %v", err)
	}
	t.Logf("anchored %s as %s", fingerprint, reference)

	var resolved rating.Fingerprint
	deadline := time.Now().Add(60 * time.Second)
	for {
		resolved, err = client.Resolve(ctx, reference)
		if err == nil || !errors.Is(err, anchor.ErrNotFound) || time.Now().After(deadline) {
			break
		}
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		t.Fatalf("failed to resolve anchor: %v", err)
	}
	if !resolved.Equal(fingerprint) {
		t.Fatalf("resolved %s, expected %s", resolved, fingerprint)
	}
}
