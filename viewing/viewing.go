// Package viewing implements the viewing-key hierarchy for selective
// disclosure. A viewing key authorizes payment detection and metadata
// decryption but never spending: it is derived one-way from a spending key
// (or sampled independently) and can spawn child keys scoped by an
// application-chosen path.
package viewing

import (
	"crypto/hmac"
	"crypto/sha256"
	"time"

	"github.com/sip-protocol/sip-go/chains"
	"github.com/sip-protocol/sip-go/core/curves"
	"github.com/sip-protocol/sip-go/secure"
	"github.com/sip-protocol/sip-go/types"
)

// derivationDomain keys the HMAC that maps a spending key to its viewing
// key. Frozen: changing it orphans every derived viewing key.
const derivationDomain = "SIP-VIEWING-KEY-v1"

// ViewingKey is a viewing keypair with its lookup hash. Immutable once
// created.
type ViewingKey struct {
	PrivateKey types.HexString `json:"private_key"`
	PublicKey  types.HexString `json:"public_key"`
	// Hash is SHA-256 of the public key encoding; payloads carry it so a
	// holder of several keys can pick the right one without trial
	// decryption.
	Hash      types.HexString `json:"hash"`
	Chain     types.ChainID   `json:"chain"`
	Label     string          `json:"label,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

// Generate samples an independent viewing key for a chain.
func Generate(chain types.ChainID, label string) (*ViewingKey, error) {
	curve, err := chains.CurveFor(chain)
	if err != nil {
		return nil, err
	}
	priv, err := curve.RandomScalar()
	if err != nil {
		return nil, types.NewCryptoError("viewing key generation", err)
	}
	defer priv.Zeroize()
	return fromScalar(curve, chain, priv, label), nil
}

// DeriveFromSpending derives the viewing key for a spending private key:
// privateKey = HMAC-SHA256(domainTag, spendingPriv) reduced to a scalar.
// Deterministic, so the key is regenerable from the spending seed without
// separate storage; one-way by the PRF property of HMAC, so observing the
// viewing key reveals nothing about the spending key.
func DeriveFromSpending(chain types.ChainID, spendingPriv types.HexString, label string) (*ViewingKey, error) {
	curve, err := chains.CurveFor(chain)
	if err != nil {
		return nil, err
	}
	spendBytes, err := types.DecodeHexField("spending_private_key", spendingPriv, curve.ScalarSize())
	if err != nil {
		return nil, err
	}
	defer secure.Zeroize(spendBytes)

	return deriveKey(curve, chain, []byte(derivationDomain), spendBytes, label)
}

// DeriveChild derives independent child key material scoped by childPath
// (e.g. an audit period): childPriv = HMAC-SHA256(childPath, parentPriv).
//
// The scoping is advisory: a child key is separate key material, but
// nothing cryptographically restricts which payloads it may be handed for
// decryption. Enforcement is the application's responsibility.
func DeriveChild(parent *ViewingKey, childPath, label string) (*ViewingKey, error) {
	if parent == nil {
		return nil, types.NewValidationError("parent", "nil")
	}
	if childPath == "" {
		return nil, types.NewValidationError("child_path", "empty")
	}
	curve, err := chains.CurveFor(parent.Chain)
	if err != nil {
		return nil, err
	}
	parentBytes, err := types.DecodeHexField("private_key", parent.PrivateKey, curve.ScalarSize())
	if err != nil {
		return nil, err
	}
	defer secure.Zeroize(parentBytes)

	return deriveKey(curve, parent.Chain, []byte(childPath), parentBytes, label)
}

func deriveKey(curve curves.Curve, chain types.ChainID, macKey, seed []byte, label string) (*ViewingKey, error) {
	mac := hmac.New(sha256.New, macKey)
	mac.Write(seed)
	digest := mac.Sum(nil)
	defer secure.Zeroize(digest)

	priv, err := curve.ReduceScalar(digest)
	if err != nil {
		return nil, types.NewCryptoError("viewing key derivation", err)
	}
	defer priv.Zeroize()
	if priv.IsZero() {
		return nil, types.NewCryptoError("viewing key derivation: derived zero scalar", nil)
	}
	return fromScalar(curve, chain, priv, label), nil
}

func fromScalar(curve curves.Curve, chain types.ChainID, priv curves.Scalar, label string) *ViewingKey {
	pubBytes := curve.ScalarBaseMult(priv).Encode()
	hash := sha256.Sum256(pubBytes)
	return &ViewingKey{
		PrivateKey: types.EncodeHex(priv.Bytes()),
		PublicKey:  types.EncodeHex(pubBytes),
		Hash:       types.EncodeHex(hash[:]),
		Chain:      chain,
		Label:      label,
		CreatedAt:  time.Now().UnixMilli(),
	}
}

// HashOf recomputes the lookup hash for a viewing public key.
func HashOf(publicKey types.HexString) (types.HexString, error) {
	pubBytes, err := types.DecodeHexField("public_key", publicKey, 0)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(pubBytes)
	return types.EncodeHex(hash[:]), nil
}
