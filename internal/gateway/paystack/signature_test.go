package paystack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"topup_1_abcd1234"}}`)
	sig := Sign("sk_test_secret", body)
	assert.True(t, VerifySignature("sk_test_secret", body, sig))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"topup_1_abcd1234"}}`)
	sig := Sign("sk_test_secret", body)

	tampered := append([]byte{}, body...)
	tampered[10] ^= 0x01
	assert.False(t, VerifySignature("sk_test_secret", tampered, sig))

	assert.False(t, VerifySignature("wrong-secret", body, sig))
	assert.False(t, VerifySignature("sk_test_secret", body, ""))
}
