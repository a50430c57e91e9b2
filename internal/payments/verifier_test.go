package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	const secret = "test_key_secret"
	verifier := NewVerifier(secret)

	t.Run("valid signature passes", func(t *testing.T) {
		sig := signPayload(secret, "order_abc", "pay_xyz")
		assert.True(t, verifier.Verify("order_abc", "pay_xyz", sig))
	})

	t.Run("tampered signature fails", func(t *testing.T) {
		sig := signPayload(secret, "order_abc", "pay_xyz")

		// Flip the last hex character
		last := sig[len(sig)-1]
		flipped := byte('0')
		if last == '0' {
			flipped = '1'
		}
		tampered := sig[:len(sig)-1] + string(flipped)

		assert.False(t, verifier.Verify("order_abc", "pay_xyz", tampered))
	})

	t.Run("signature for another payment fails", func(t *testing.T) {
		sig := signPayload(secret, "order_abc", "pay_other")
		assert.False(t, verifier.Verify("order_abc", "pay_xyz", sig))
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		sig := signPayload("another_secret", "order_abc", "pay_xyz")
		assert.False(t, verifier.Verify("order_abc", "pay_xyz", sig))
	})

	t.Run("empty inputs fail", func(t *testing.T) {
		sig := signPayload(secret, "order_abc", "pay_xyz")

		assert.False(t, verifier.Verify("", "pay_xyz", sig))
		assert.False(t, verifier.Verify("order_abc", "", sig))
		assert.False(t, verifier.Verify("order_abc", "pay_xyz", ""))
	})

	t.Run("non-hex garbage fails", func(t *testing.T) {
		assert.False(t, verifier.Verify("order_abc", "pay_xyz", "not a signature"))
	})
}
