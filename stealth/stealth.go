// Package stealth implements the Dual-Key Stealth Address Protocol (DKSAP).
//
// A recipient publishes a meta-address holding two public keys. A payer
// derives a fresh one-time destination from it with an ephemeral ECDH
// exchange against the viewing key; only the holder of both private keys
// can later detect the payment and derive the spending key for it. Holding
// just the viewing private key allows detection but not spending.
package stealth

import (
	"crypto/sha256"

	"github.com/sip-protocol/sip-go/chains"
	"github.com/sip-protocol/sip-go/core/curves"
	"github.com/sip-protocol/sip-go/secure"
	"github.com/sip-protocol/sip-go/types"
)

// GenerateMetaAddress samples a fresh meta-address for a chain. Returns the
// public meta-address plus the hex-encoded spending and viewing private
// keys; the two scalars are sampled independently, so neither is derivable
// from the other.
func GenerateMetaAddress(chain types.ChainID, label string) (*types.MetaAddress, types.HexString, types.HexString, error) {
	curve, err := chains.CurveFor(chain)
	if err != nil {
		return nil, "", "", err
	}

	spendPriv, err := curve.RandomScalar()
	if err != nil {
		return nil, "", "", types.NewCryptoError("spending key generation", err)
	}
	viewPriv, err := curve.RandomScalar()
	if err != nil {
		spendPriv.Zeroize()
		return nil, "", "", types.NewCryptoError("viewing key generation", err)
	}

	meta := &types.MetaAddress{
		SpendingPublicKey: types.EncodeHex(curve.ScalarBaseMult(spendPriv).Encode()),
		ViewingPublicKey:  types.EncodeHex(curve.ScalarBaseMult(viewPriv).Encode()),
		Chain:             chain,
		Label:             label,
	}

	spendHex := types.EncodeHex(spendPriv.Bytes())
	viewHex := types.EncodeHex(viewPriv.Bytes())
	spendPriv.Zeroize()
	viewPriv.Zeroize()

	return meta, spendHex, viewHex, nil
}

// GenerateStealthAddress derives a one-time stealth address from a
// meta-address (sender side).
//
// With ephemeral scalar e: sharedSecret = e * ViewingPublicKey,
// digest = SHA-256(compress(sharedSecret)), stealth = SpendingPublicKey +
// reduce(digest) * G. The view tag is byte 0 of the same big-endian digest
// that feeds the tweak scalar; the recipient recomputes it identically or
// detection silently fails.
//
// Returns the stealth address and the hex-encoded shared-secret digest.
func GenerateStealthAddress(meta *types.MetaAddress) (*types.StealthAddress, types.HexString, error) {
	curve, spendPub, viewPub, err := decodeMetaAddress(meta)
	if err != nil {
		return nil, "", err
	}

	ephemeral, err := curve.RandomScalar()
	if err != nil {
		return nil, "", types.NewCryptoError("ephemeral key generation", err)
	}
	defer ephemeral.Zeroize()

	sharedEncoded := viewPub.Mul(ephemeral).Encode()
	digest := sha256.Sum256(sharedEncoded)
	secure.Zeroize(sharedEncoded)

	tweak, err := curve.ReduceScalar(digest[:])
	if err != nil {
		return nil, "", types.NewCryptoError("shared secret reduction", err)
	}
	defer tweak.Zeroize()

	stealthPub := spendPub.Add(curve.ScalarBaseMult(tweak))

	sa := &types.StealthAddress{
		Address:            types.EncodeHex(stealthPub.Encode()),
		EphemeralPublicKey: types.EncodeHex(curve.ScalarBaseMult(ephemeral).Encode()),
		ViewTag:            digest[0],
	}
	return sa, types.EncodeHex(digest[:]), nil
}

// CheckOwnership reports whether a stealth address belongs to the holder of
// the given private keys (recipient side). The view tag is checked first
// and rules out ~255/256 foreign announcements before any point
// multiplication on the spending path. Cryptographic uncertainty (a
// malformed address encoding) yields false, never a guess.
func CheckOwnership(chain types.ChainID, sa *types.StealthAddress, spendingPriv, viewingPriv types.HexString) (bool, error) {
	curve, err := chains.CurveFor(chain)
	if err != nil {
		return false, err
	}

	spendScalar, viewScalar, err := decodeKeyMaterial(curve, spendingPriv, viewingPriv)
	if err != nil {
		return false, err
	}
	defer spendScalar.Zeroize()
	defer viewScalar.Zeroize()

	digest, err := sharedSecretDigest(curve, viewScalar, sa.EphemeralPublicKey)
	if err != nil {
		return false, err
	}
	defer secure.Zeroize(digest[:])

	if digest[0] != sa.ViewTag {
		return false, nil
	}

	tweak, err := curve.ReduceScalar(digest[:])
	if err != nil {
		return false, types.NewCryptoError("shared secret reduction", err)
	}
	defer tweak.Zeroize()

	stealthScalar := spendScalar.Add(tweak)
	defer stealthScalar.Zeroize()
	expected := curve.ScalarBaseMult(stealthScalar)

	addressBytes, err := types.DecodeHex(sa.Address)
	if err != nil {
		return false, nil
	}
	provided, err := curve.DecodePoint(addressBytes)
	if err != nil {
		return false, nil
	}
	return expected.Equal(provided), nil
}

// DeriveStealthPrivateKey derives the one-time private key controlling a
// stealth address: (spendingPriv + reduce(digest)) mod order. The result is
// meaningful only when CheckOwnership holds for the same inputs; its public
// key then equals the stealth address.
func DeriveStealthPrivateKey(chain types.ChainID, sa *types.StealthAddress, spendingPriv, viewingPriv types.HexString) (types.HexString, error) {
	curve, err := chains.CurveFor(chain)
	if err != nil {
		return "", err
	}

	spendScalar, viewScalar, err := decodeKeyMaterial(curve, spendingPriv, viewingPriv)
	if err != nil {
		return "", err
	}
	defer spendScalar.Zeroize()
	defer viewScalar.Zeroize()

	digest, err := sharedSecretDigest(curve, viewScalar, sa.EphemeralPublicKey)
	if err != nil {
		return "", err
	}
	defer secure.Zeroize(digest[:])

	tweak, err := curve.ReduceScalar(digest[:])
	if err != nil {
		return "", types.NewCryptoError("shared secret reduction", err)
	}
	defer tweak.Zeroize()

	stealthScalar := spendScalar.Add(tweak)
	out := types.EncodeHex(stealthScalar.Bytes())
	stealthScalar.Zeroize()
	return out, nil
}

// sharedSecretDigest recomputes SHA-256(compress(viewingPriv * ephemeral)).
// By ECDH commutativity this equals the sender's digest of
// e * ViewingPublicKey.
func sharedSecretDigest(curve curves.Curve, viewingPriv curves.Scalar, ephemeralPub types.HexString) ([32]byte, error) {
	var digest [32]byte
	ephBytes, err := types.DecodeHexField("ephemeral_public_key", ephemeralPub, curve.PointSize())
	if err != nil {
		return digest, err
	}
	eph, err := curve.DecodePoint(ephBytes)
	if err != nil {
		return digest, types.WrapValidation("ephemeral_public_key", err)
	}
	if eph.IsIdentity() {
		return digest, types.NewValidationError("ephemeral_public_key", "identity point")
	}

	sharedEncoded := eph.Mul(viewingPriv).Encode()
	digest = sha256.Sum256(sharedEncoded)
	secure.Zeroize(sharedEncoded)
	return digest, nil
}

func decodeKeyMaterial(curve curves.Curve, spendingPriv, viewingPriv types.HexString) (curves.Scalar, curves.Scalar, error) {
	spendBytes, err := types.DecodeHexField("spending_private_key", spendingPriv, curve.ScalarSize())
	if err != nil {
		return nil, nil, err
	}
	defer secure.Zeroize(spendBytes)
	viewBytes, err := types.DecodeHexField("viewing_private_key", viewingPriv, curve.ScalarSize())
	if err != nil {
		return nil, nil, err
	}
	defer secure.Zeroize(viewBytes)

	spendScalar, err := curve.DecodeScalar(spendBytes)
	if err != nil {
		return nil, nil, types.WrapValidation("spending_private_key", err)
	}
	viewScalar, err := curve.DecodeScalar(viewBytes)
	if err != nil {
		spendScalar.Zeroize()
		return nil, nil, types.WrapValidation("viewing_private_key", err)
	}
	return spendScalar, viewScalar, nil
}

// decodeMetaAddress resolves the curve and validates both public keys as
// non-identity points on it.
func decodeMetaAddress(meta *types.MetaAddress) (curves.Curve, curves.Point, curves.Point, error) {
	if meta == nil {
		return nil, nil, nil, types.NewValidationError("meta_address", "nil")
	}
	curve, err := chains.CurveFor(meta.Chain)
	if err != nil {
		return nil, nil, nil, err
	}

	spendPub, err := decodePublicKey(curve, "spending_key", meta.SpendingPublicKey)
	if err != nil {
		return nil, nil, nil, err
	}
	viewPub, err := decodePublicKey(curve, "viewing_key", meta.ViewingPublicKey)
	if err != nil {
		return nil, nil, nil, err
	}
	return curve, spendPub, viewPub, nil
}

func decodePublicKey(curve curves.Curve, field string, key types.HexString) (curves.Point, error) {
	keyBytes, err := types.DecodeHexField(field, key, curve.PointSize())
	if err != nil {
		return nil, err
	}
	p, err := curve.DecodePoint(keyBytes)
	if err != nil {
		return nil, types.WrapValidation(field, err)
	}
	if p.IsIdentity() {
		return nil, types.NewValidationError(field, "identity point")
	}
	return p, nil
}
