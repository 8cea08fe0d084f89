package spots

import (
	"strings"
	"testing"
)

func TestSharePayloadRoundTrip(t *testing.T) {
	payload := SignSharePayload("s1234567890")

	spotID, ok := VerifySharePayload(payload)
	if !ok {
		t.Fatal("expected valid payload to verify")
	}
	if spotID != "s1234567890" {
		t.Fatalf("expected spot ID s1234567890, got %q", spotID)
	}
}

func TestSharePayloadTamperRejected(t *testing.T) {
	payload := SignSharePayload("s1234567890")

	tampered := strings.Replace(payload, "s1234567890", "s0000000000", 1)
	if _, ok := VerifySharePayload(tampered); ok {
		t.Error("tampered payload should not verify")
	}

	if _, ok := VerifySharePayload("no-separator"); ok {
		t.Error("payload without separator should not verify")
	}
	if _, ok := VerifySharePayload("|sig-only"); ok {
		t.Error("payload without ID should not verify")
	}
}
