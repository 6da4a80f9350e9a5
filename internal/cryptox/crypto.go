// Package cryptox implements the passphrase encryption used for locking
// individual notes. A note's {title, content} pair is serialized to JSON by
// the caller and sealed here with AES-256-GCM under a key derived from the
// user's passphrase via argon2id. The sealed blob is self-contained
// (salt ∥ nonce ∥ ciphertext, base64-encoded) so it can travel through the
// note API and the local cache as an opaque string.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/notezapp/notez/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

// DeriveKey derives a 32-byte AES key from a passphrase and salt using
// argon2id (time=1, memory=64MiB, threads=4).
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

// Seal encrypts plaintext with the given passphrase and returns an opaque
// base64 string embedding the KDF salt and the AES-GCM nonce. A fresh random
// salt and nonce are generated per call, so sealing the same plaintext twice
// yields different blobs.
func Seal(plaintext []byte, passphrase string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	key := DeriveKey([]byte(passphrase), salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, saltSize+nonceSize+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open decrypts a blob produced by Seal. A wrong passphrase, a truncated
// blob, or tampered ciphertext all fail the GCM authentication check and
// return common.ErrDecryptionFailed; callers can rely on errors.Is to
// distinguish that from I/O-level problems.
func Open(sealed string, passphrase string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed blob", common.ErrDecryptionFailed)
	}
	if len(blob) < saltSize+nonceSize+1 {
		return nil, fmt.Errorf("%w: blob too short", common.ErrDecryptionFailed)
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]

	key := DeriveKey([]byte(passphrase), salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryptionFailed, err)
	}

	return plaintext, nil
}
