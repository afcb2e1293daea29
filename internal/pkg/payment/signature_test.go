package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signFor(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	orderID := "order_MhYz1x2abc"
	paymentID := "pay_NqXw9y8def"
	secret := "top-secret"

	valid := signFor(orderID, paymentID, secret)

	if !VerifyPaymentSignature(orderID, paymentID, secret, valid) {
		t.Fatalf("expected signature to validate")
	}
	// Deterministic: verifying the same inputs twice gives the same outcome.
	if !VerifyPaymentSignature(orderID, paymentID, secret, valid) {
		t.Fatalf("expected repeated verification to validate")
	}

	if VerifyPaymentSignature(orderID, paymentID, "other-secret", valid) {
		t.Fatalf("expected wrong secret to fail")
	}
	if VerifyPaymentSignature(orderID, paymentID, secret, "") {
		t.Fatalf("expected empty signature to fail")
	}
	if VerifyPaymentSignature(orderID, paymentID, "", valid) {
		t.Fatalf("expected empty secret to fail")
	}
}

func TestVerifyPaymentSignature_SingleCharacterMutations(t *testing.T) {
	orderID := "order_MhYz1x2abc"
	paymentID := "pay_NqXw9y8def"
	secret := "top-secret"

	valid := signFor(orderID, paymentID, secret)

	for i := 0; i < len(valid); i++ {
		mutated := []byte(valid)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		if VerifyPaymentSignature(orderID, paymentID, secret, string(mutated)) {
			t.Fatalf("expected signature mutated at index %d to fail", i)
		}
	}
}
