package cryptox

import (
	"testing"

	"github.com/notezapp/notez/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	plaintext := []byte(`{"title":"Groceries","content":"<p>milk, eggs</p>"}`)

	sealed, err := Seal(plaintext, "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, sealed)

	recovered, err := Open(sealed, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, plaintext, recovered)
}

func TestSeal_DistinctBlobsForSamePlaintext(t *testing.T) {
	plaintext := []byte("same input")

	a, err := Seal(plaintext, "pw")
	require.NoError(t, err)
	b, err := Seal(plaintext, "pw")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpen_WrongPassphrase(t *testing.T) {
	sealed, err := Seal([]byte("secret"), "right")
	require.NoError(t, err)

	_, err = Open(sealed, "wrong")
	assert.ErrorIs(t, err, common.ErrDecryptionFailed)
}

func TestOpen_MalformedBlob(t *testing.T) {
	tests := []struct {
		name   string
		sealed string
	}{
		{name: "not base64", sealed: "%%%not-base64%%%"},
		{name: "too short", sealed: "AAAA"},
		{name: "empty", sealed: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.sealed, "pw")
			assert.ErrorIs(t, err, common.ErrDecryptionFailed)
		})
	}
}

func TestOpen_TamperedCiphertext(t *testing.T) {
	sealed, err := Seal([]byte("secret"), "pw")
	require.NoError(t, err)

	// flip a character near the end of the base64 payload
	tampered := []byte(sealed)
	if tampered[len(tampered)-5] == 'A' {
		tampered[len(tampered)-5] = 'B'
	} else {
		tampered[len(tampered)-5] = 'A'
	}

	_, err = Open(string(tampered), "pw")
	assert.ErrorIs(t, err, common.ErrDecryptionFailed)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")

	k1 := DeriveKey([]byte("pw"), salt)
	k2 := DeriveKey([]byte("pw"), salt)
	k3 := DeriveKey([]byte("other"), salt)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Len(t, k1, 32)
}
