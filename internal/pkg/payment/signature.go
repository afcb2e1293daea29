package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyPaymentSignature checks the signature Razorpay attaches to a
// completed checkout: HMAC-SHA256 over "<orderID>|<paymentID>" keyed with
// the key secret, rendered as lowercase hex. A mismatch returns false,
// never an error.
func VerifyPaymentSignature(orderID, paymentID, secret, claimedSignature string) bool {
	claimed := strings.TrimSpace(claimedSignature)
	if claimed == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(claimed))
}
