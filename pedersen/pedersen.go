// Package pedersen implements Pedersen value commitments over the protocol
// curves: C = v*G + r*H for value v, blinding r, base point G and an
// independently constructed generator H. Commitments are computationally
// binding, unconditionally hiding, and additively homomorphic.
package pedersen

import (
	"math/big"

	"github.com/sip-protocol/sip-go/core/curves"
	"github.com/sip-protocol/sip-go/secure"
	"github.com/sip-protocol/sip-go/types"
)

// Commitment is a commitment point together with its (secret) blinding
// factor. The blinding opens the commitment; the point alone reveals
// nothing about the value.
type Commitment struct {
	Commitment types.HexString `json:"commitment"`
	Blinding   types.HexString `json:"blinding"`
}

// CommitOptions configures Commit. The zero value (and nil) means: sample a
// fresh non-zero blinding factor from the CSPRNG.
type CommitOptions struct {
	// Blinding, when non-nil, is the caller-supplied blinding factor. It
	// must be the curve's scalar width and must not reduce to zero.
	Blinding []byte
}

// Commit commits to value in [0, curve order).
//
// value = 0 is computed directly as r*H. A sampled blinding that reduces to
// zero modulo the curve order is resampled; a supplied one is rejected.
func Commit(curve curves.Curve, value *big.Int, opts *CommitOptions) (*Commitment, error) {
	if value == nil || value.Sign() < 0 || value.Cmp(curve.Order()) >= 0 {
		return nil, types.NewValidationError("value", "out of range [0, curve order)")
	}

	var blinding curves.Scalar
	if opts != nil && opts.Blinding != nil {
		if len(opts.Blinding) != curve.ScalarSize() {
			return nil, types.NewValidationError("blinding", "wrong length")
		}
		var err error
		blinding, err = curve.ReduceScalar(opts.Blinding)
		if err != nil {
			return nil, types.WrapValidation("blinding", err)
		}
		if blinding.IsZero() {
			return nil, types.NewValidationError("blinding", "reduces to zero")
		}
	} else {
		var err error
		// RandomScalar already rejects zero internally.
		blinding, err = curve.RandomScalar()
		if err != nil {
			return nil, types.NewCryptoError("blinding generation", err)
		}
	}
	defer blinding.Zeroize()

	hPoint, err := H(curve)
	if err != nil {
		return nil, err
	}

	point, err := commitPoint(curve, hPoint, value, blinding)
	if err != nil {
		return nil, err
	}

	return &Commitment{
		Commitment: types.EncodeHex(point.Encode()),
		Blinding:   types.EncodeHex(blinding.Bytes()),
	}, nil
}

// Verify recomputes v*G + r*H and compares it to the commitment. It never
// returns an error: a commitment that is malformed and one that does not
// open to (value, blinding) are indistinguishable to a verifier, so both
// report false.
func Verify(curve curves.Curve, commitment types.HexString, value *big.Int, blinding types.HexString) bool {
	if value == nil || value.Sign() < 0 || value.Cmp(curve.Order()) >= 0 {
		return false
	}

	commitmentBytes, err := types.DecodeHex(commitment)
	if err != nil || len(commitmentBytes) != curve.PointSize() {
		return false
	}
	provided, err := curve.DecodePoint(commitmentBytes)
	if err != nil {
		return false
	}

	blindingBytes, err := types.DecodeHex(blinding)
	if err != nil || len(blindingBytes) != curve.ScalarSize() {
		return false
	}
	defer secure.Zeroize(blindingBytes)
	blindingScalar, err := curve.DecodeScalar(blindingBytes)
	if err != nil {
		return false
	}
	defer blindingScalar.Zeroize()

	hPoint, err := H(curve)
	if err != nil {
		return false
	}
	expected, err := commitPoint(curve, hPoint, value, blindingScalar)
	if err != nil {
		return false
	}
	return expected.Equal(provided)
}

// AddCommitments adds two commitment points:
// Commit(v1,r1) + Commit(v2,r2) = Commit(v1+v2, r1+r2).
func AddCommitments(curve curves.Curve, c1, c2 types.HexString) (types.HexString, error) {
	p1, err := decodeCommitment(curve, "c1", c1)
	if err != nil {
		return "", err
	}
	p2, err := decodeCommitment(curve, "c2", c2)
	if err != nil {
		return "", err
	}
	return types.EncodeHex(p1.Add(p2).Encode()), nil
}

// SubtractCommitments subtracts commitment points. Subtracting equal
// commitments yields the curve's canonical identity encoding.
func SubtractCommitments(curve curves.Curve, c1, c2 types.HexString) (types.HexString, error) {
	p1, err := decodeCommitment(curve, "c1", c1)
	if err != nil {
		return "", err
	}
	p2, err := decodeCommitment(curve, "c2", c2)
	if err != nil {
		return "", err
	}
	return types.EncodeHex(p1.Sub(p2).Encode()), nil
}

// AddBlindings adds blinding factors modulo the curve order.
func AddBlindings(curve curves.Curve, b1, b2 types.HexString) (types.HexString, error) {
	s1, err := decodeBlinding(curve, "b1", b1)
	if err != nil {
		return "", err
	}
	defer s1.Zeroize()
	s2, err := decodeBlinding(curve, "b2", b2)
	if err != nil {
		return "", err
	}
	defer s2.Zeroize()
	sum := s1.Add(s2)
	out := types.EncodeHex(sum.Bytes())
	sum.Zeroize()
	return out, nil
}

// SubtractBlindings subtracts blinding factors modulo the curve order; the
// subtrahend is negated first, so the result never underflows.
func SubtractBlindings(curve curves.Curve, b1, b2 types.HexString) (types.HexString, error) {
	s1, err := decodeBlinding(curve, "b1", b1)
	if err != nil {
		return "", err
	}
	defer s1.Zeroize()
	s2, err := decodeBlinding(curve, "b2", b2)
	if err != nil {
		return "", err
	}
	defer s2.Zeroize()
	diff := s1.Sub(s2)
	out := types.EncodeHex(diff.Bytes())
	diff.Zeroize()
	return out, nil
}

func commitPoint(curve curves.Curve, hPoint curves.Point, value *big.Int, blinding curves.Scalar) (curves.Point, error) {
	blindingTerm := hPoint.Mul(blinding)
	if value.Sign() == 0 {
		return blindingTerm, nil
	}
	valueScalar, err := curve.ScalarFromBigInt(value)
	if err != nil {
		return nil, types.WrapValidation("value", err)
	}
	return curve.ScalarBaseMult(valueScalar).Add(blindingTerm), nil
}

func decodeCommitment(curve curves.Curve, field string, c types.HexString) (curves.Point, error) {
	b, err := types.DecodeHexField(field, c, curve.PointSize())
	if err != nil {
		return nil, err
	}
	p, err := curve.DecodePoint(b)
	if err != nil {
		return nil, types.WrapValidation(field, err)
	}
	return p, nil
}

func decodeBlinding(curve curves.Curve, field string, b types.HexString) (curves.Scalar, error) {
	raw, err := types.DecodeHexField(field, b, curve.ScalarSize())
	if err != nil {
		return nil, err
	}
	defer secure.Zeroize(raw)
	s, err := curve.DecodeScalar(raw)
	if err != nil {
		return nil, types.WrapValidation(field, err)
	}
	return s, nil
}
