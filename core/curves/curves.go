// Package curves provides a uniform adapter over the elliptic curves used by
// the SIP protocol. All higher-level components (stealth addresses, Pedersen
// commitments, viewing keys, scanning) are written once against the Curve,
// Scalar and Point interfaces and instantiated per curve, so the secp256k1
// and ed25519 code paths cannot drift apart.
package curves

import (
	"fmt"
	"math/big"
)

// Supported curve names.
const (
	K256Name    = "secp256k1"
	ED25519Name = "ed25519"
)

// Scalar is an integer modulo the curve order. Implementations carry a
// fixed-width canonical byte encoding (big-endian for secp256k1,
// little-endian for ed25519). Operations never mutate their receiver.
type Scalar interface {
	// Add returns (s + other) mod the curve order.
	Add(other Scalar) Scalar
	// Sub returns (s - other) mod the curve order. The subtrahend is
	// negated first, so the result never underflows.
	Sub(other Scalar) Scalar
	// IsZero reports whether the scalar reduces to zero.
	IsZero() bool
	// Bytes returns the canonical fixed-width encoding.
	Bytes() []byte
	// Zeroize overwrites the scalar's internal state with zeros. The
	// scalar must not be used afterwards.
	Zeroize()
}

// Point is a group element on the curve, including the identity.
type Point interface {
	// Add returns p + other.
	Add(other Point) Point
	// Sub returns p - other. Subtracting a point from itself yields the
	// identity.
	Sub(other Point) Point
	// Mul returns s * p.
	Mul(s Scalar) Point
	// Equal reports whether both points encode the same group element.
	Equal(other Point) bool
	// IsIdentity reports whether the point is the group identity.
	IsIdentity() bool
	// Encode returns the canonical compressed encoding. The secp256k1
	// identity, which has no SEC1 encoding, encodes as all-zero bytes.
	Encode() []byte
}

// Curve bundles the scalar and point arithmetic of one curve.
type Curve interface {
	// Name returns the curve name (K256Name or ED25519Name).
	Name() string
	// ScalarSize returns the canonical scalar encoding length in bytes.
	ScalarSize() int
	// PointSize returns the canonical compressed point encoding length.
	PointSize() int
	// Order returns the group order as a big integer. Callers must not
	// mutate the returned value.
	Order() *big.Int

	// RandomScalar samples a uniform non-zero scalar from crypto/rand.
	RandomScalar() (Scalar, error)
	// DecodeScalar parses a canonical fixed-width scalar encoding,
	// rejecting wrong lengths and values at or above the curve order.
	DecodeScalar(b []byte) (Scalar, error)
	// ReduceScalar interprets b as an integer and reduces it modulo the
	// curve order. Accepts 32-byte (hash digest) input. Deterministic:
	// both protocol sides reduce the same digest to the same scalar.
	ReduceScalar(b []byte) (Scalar, error)
	// ScalarFromBigInt converts v in [0, Order) to a scalar.
	ScalarFromBigInt(v *big.Int) (Scalar, error)

	// Generator returns the curve base point G.
	Generator() Point
	// Identity returns the group identity element.
	Identity() Point
	// ScalarBaseMult returns s * G.
	ScalarBaseMult(s Scalar) Point
	// DecodePoint parses a canonical compressed point encoding.
	DecodePoint(b []byte) (Point, error)
	// ClearCofactor maps p into the prime-order subgroup. A no-op on
	// prime-order curves (secp256k1); multiplies by 8 on ed25519.
	ClearCofactor(p Point) Point
}

// ByName resolves a curve by its name.
func ByName(name string) (Curve, error) {
	switch name {
	case K256Name:
		return K256(), nil
	case ED25519Name:
		return ED25519(), nil
	default:
		return nil, fmt.Errorf("unsupported curve: %q", name)
	}
}
