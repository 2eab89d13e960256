package viewing

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	ecies "github.com/ecies/go/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/sip-protocol/sip-go/secure"
	"github.com/sip-protocol/sip-go/types"
)

// hkdfSalt domain-separates the symmetric encryption key from every other
// use of the viewing private key.
const hkdfSalt = "SIP-VIEWING-ENCRYPTION-v1"

// Sentinel causes carried inside CryptoError, distinguishable with
// errors.Is.
var (
	// ErrKeyMismatch: the payload was encrypted for a different viewing
	// key (hash check failed before any decryption attempt).
	ErrKeyMismatch = errors.New("viewing key hash mismatch")
	// ErrAuthenticationFailed: the AEAD tag did not verify; the payload
	// was tampered with or the key material is wrong.
	ErrAuthenticationFailed = errors.New("payload authentication failed")
)

// Encrypt seals transaction metadata for holders of the viewing key. A
// 32-byte symmetric key is derived via HKDF-SHA256 over the viewing
// private key with a fixed domain salt, then the data is sealed with
// XChaCha20-Poly1305 under a fresh random nonce.
func Encrypt(data []byte, key *ViewingKey) (*types.EncryptedPayload, error) {
	symKey, err := symmetricKey(key)
	if err != nil {
		return nil, err
	}
	defer secure.Zeroize(symKey)

	aead, err := chacha20poly1305.NewX(symKey)
	if err != nil {
		return nil, types.NewCryptoError("cipher construction", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, types.NewCryptoError("nonce generation", err)
	}

	ciphertext := aead.Seal(nil, nonce, data, nil)
	return &types.EncryptedPayload{
		Ciphertext:     types.EncodeHex(ciphertext),
		Nonce:          types.EncodeHex(nonce),
		ViewingKeyHash: key.Hash,
	}, nil
}

// Decrypt opens a payload with the matching viewing key. A payload keyed to
// a different viewing key is rejected by hash before any key derivation;
// ErrAuthenticationFailed and ErrKeyMismatch surface through errors.Is,
// structural malformation as ValidationError.
func Decrypt(payload *types.EncryptedPayload, key *ViewingKey) ([]byte, error) {
	if payload == nil {
		return nil, types.NewValidationError("payload", "nil")
	}
	if payload.ViewingKeyHash != key.Hash {
		return nil, types.NewCryptoError("decrypt", ErrKeyMismatch)
	}

	nonce, err := types.DecodeHexField("nonce", payload.Nonce, chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}
	ciphertext, err := types.DecodeHexField("ciphertext", payload.Ciphertext, 0)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < chacha20poly1305.Overhead {
		return nil, types.NewValidationError("ciphertext", "shorter than authentication tag")
	}

	symKey, err := symmetricKey(key)
	if err != nil {
		return nil, err
	}
	defer secure.Zeroize(symKey)

	aead, err := chacha20poly1305.NewX(symKey)
	if err != nil {
		return nil, types.NewCryptoError("cipher construction", err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, types.NewCryptoError("decrypt", ErrAuthenticationFailed)
	}
	return plaintext, nil
}

// EncryptForRecipient seals data against a viewing *public* key via ECIES,
// so a payer can attach an encrypted memo without ever holding the viewing
// private key. Supported on secp256k1 chains only.
func EncryptForRecipient(data []byte, viewingPublicKey types.HexString) (*types.EncryptedPayload, error) {
	pubBytes, err := types.DecodeHexField("viewing_public_key", viewingPublicKey, 33)
	if err != nil {
		return nil, err
	}
	pub, err := ecies.NewPublicKeyFromBytes(pubBytes)
	if err != nil {
		return nil, types.WrapValidation("viewing_public_key", err)
	}

	ciphertext, err := ecies.Encrypt(pub, data)
	if err != nil {
		return nil, types.NewCryptoError("ecies encrypt", err)
	}

	hash := sha256.Sum256(pubBytes)
	return &types.EncryptedPayload{
		Ciphertext: types.EncodeHex(ciphertext),
		// ECIES embeds its own ephemeral key and nonce in the ciphertext.
		Nonce:          "0x",
		ViewingKeyHash: types.EncodeHex(hash[:]),
	}, nil
}

// DecryptAsRecipient opens an ECIES payload with the viewing private key.
func DecryptAsRecipient(payload *types.EncryptedPayload, key *ViewingKey) ([]byte, error) {
	if payload == nil {
		return nil, types.NewValidationError("payload", "nil")
	}
	if payload.ViewingKeyHash != key.Hash {
		return nil, types.NewCryptoError("decrypt", ErrKeyMismatch)
	}
	ciphertext, err := types.DecodeHexField("ciphertext", payload.Ciphertext, 0)
	if err != nil {
		return nil, err
	}

	privBytes, err := types.DecodeHexField("private_key", key.PrivateKey, 32)
	if err != nil {
		return nil, err
	}
	defer secure.Zeroize(privBytes)

	plaintext, err := ecies.Decrypt(ecies.NewPrivateKeyFromBytes(privBytes), ciphertext)
	if err != nil {
		return nil, types.NewCryptoError("decrypt", ErrAuthenticationFailed)
	}
	return plaintext, nil
}

func symmetricKey(key *ViewingKey) ([]byte, error) {
	if key == nil {
		return nil, types.NewValidationError("viewing_key", "nil")
	}
	privBytes, err := types.DecodeHexField("private_key", key.PrivateKey, 0)
	if err != nil {
		return nil, err
	}
	defer secure.Zeroize(privBytes)

	reader := hkdf.New(sha256.New, privBytes, []byte(hkdfSalt), nil)
	symKey := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(reader, symKey); err != nil {
		return nil, types.NewCryptoError("key derivation", err)
	}
	return symKey, nil
}
