package filestore

import (
	"bytes"
	"crypto/rand"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/vegasq/mochadb/errors"
)

const (
	SaltSize = 16
	KeySize  = chacha20poly1305.KeySize

	// scrypt cost parameters
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// cipherKey is a derived key and the salt it was derived with. The key is
// reused across saves; every save draws a fresh random nonce.
type cipherKey struct {
	salt []byte
	key  []byte
}

// deriveKey stretches secret with salt into a cipher key.
func deriveKey(secret string, salt []byte) (*cipherKey, error) {
	key, err := scrypt.Key([]byte(secret), salt, scryptN, scryptR, scryptP, KeySize)
	if err != nil {
		return nil, errors.Wrap(err, "derive key")
	}
	return &cipherKey{salt: append([]byte(nil), salt...), key: key}, nil
}

// newKey derives a key with a fresh random salt.
func newKey(secret string) (*cipherKey, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return deriveKey(secret, salt)
}

// seal encrypts plaintext.
// Returns: [Salt (16)] + [Nonce (24)] + [Ciphertext (N)] + [Tag (16)]
func (k *cipherKey) seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(k.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, SaltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, k.salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// open decrypts data produced by seal. cached is reused when its salt
// matches; otherwise a key is derived and returned for reuse.
func open(secret string, cached *cipherKey, data []byte) ([]byte, *cipherKey, error) {
	if len(data) < SaltSize+chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		return nil, nil, errors.New("data too short")
	}
	salt := data[:SaltSize]
	k := cached
	if k == nil || !bytes.Equal(k.salt, salt) {
		var err error
		if k, err = deriveKey(secret, salt); err != nil {
			return nil, nil, err
		}
	}
	aead, err := chacha20poly1305.NewX(k.key)
	if err != nil {
		return nil, nil, err
	}
	rest := data[SaltSize:]
	nonce := rest[:aead.NonceSize()]
	plaintext, err := aead.Open(nil, nonce, rest[aead.NonceSize():], nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decrypt (wrong key or corrupted file)")
	}
	return plaintext, k, nil
}
