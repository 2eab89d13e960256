package curves

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"filippo.io/edwards25519"
)

const (
	ed25519ScalarSize = 32
	ed25519PointSize  = 32
)

// ed25519Order is l = 2^252 + 27742317777372353535851937790883648493, the
// order of the prime-order subgroup.
var ed25519Order, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

type ed25519Curve struct{}

var ed25519Instance = &ed25519Curve{}

// ED25519 returns the ed25519 curve adapter.
func ED25519() Curve { return ed25519Instance }

func (c *ed25519Curve) Name() string    { return ED25519Name }
func (c *ed25519Curve) ScalarSize() int { return ed25519ScalarSize }
func (c *ed25519Curve) PointSize() int  { return ed25519PointSize }
func (c *ed25519Curve) Order() *big.Int { return ed25519Order }

func (c *ed25519Curve) RandomScalar() (Scalar, error) {
	var wide [64]byte
	for {
		if _, err := io.ReadFull(rand.Reader, wide[:]); err != nil {
			return nil, fmt.Errorf("ed25519 scalar sampling: %w", err)
		}
		s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
		if err != nil {
			return nil, fmt.Errorf("ed25519 scalar sampling: %w", err)
		}
		if s.Equal(edwards25519.NewScalar()) == 0 {
			return &ed25519Scalar{s: s}, nil
		}
	}
}

func (c *ed25519Curve) DecodeScalar(b []byte) (Scalar, error) {
	if len(b) != ed25519ScalarSize {
		return nil, fmt.Errorf("ed25519 scalar must be %d bytes, got %d", ed25519ScalarSize, len(b))
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("ed25519 scalar not canonical: %w", err)
	}
	return &ed25519Scalar{s: s}, nil
}

func (c *ed25519Curve) ReduceScalar(b []byte) (Scalar, error) {
	var wide [64]byte
	switch len(b) {
	case 32:
		// Zero-extend the digest; interpretation is little-endian, fixed
		// identically on both protocol sides.
		copy(wide[:32], b)
	case 64:
		copy(wide[:], b)
	default:
		return nil, fmt.Errorf("ed25519 scalar reduction needs 32 or 64 bytes, got %d", len(b))
	}
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return nil, fmt.Errorf("ed25519 scalar reduction: %w", err)
	}
	return &ed25519Scalar{s: s}, nil
}

func (c *ed25519Curve) ScalarFromBigInt(v *big.Int) (Scalar, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(ed25519Order) >= 0 {
		return nil, fmt.Errorf("ed25519 scalar out of range [0, order)")
	}
	var be [32]byte
	v.FillBytes(be[:])
	le := make([]byte, 32)
	for i := range be {
		le[i] = be[31-i]
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(le)
	if err != nil {
		return nil, fmt.Errorf("ed25519 scalar conversion: %w", err)
	}
	return &ed25519Scalar{s: s}, nil
}

func (c *ed25519Curve) Generator() Point {
	return &ed25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (c *ed25519Curve) Identity() Point {
	return &ed25519Point{p: edwards25519.NewIdentityPoint()}
}

func (c *ed25519Curve) ScalarBaseMult(s Scalar) Point {
	es := s.(*ed25519Scalar)
	return &ed25519Point{p: edwards25519.NewIdentityPoint().ScalarBaseMult(es.s)}
}

func (c *ed25519Curve) DecodePoint(b []byte) (Point, error) {
	if len(b) != ed25519PointSize {
		return nil, fmt.Errorf("ed25519 point must be %d bytes, got %d", ed25519PointSize, len(b))
	}
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("ed25519 point decoding: %w", err)
	}
	return &ed25519Point{p: p}, nil
}

func (c *ed25519Curve) ClearCofactor(p Point) Point {
	ep := p.(*ed25519Point)
	return &ed25519Point{p: edwards25519.NewIdentityPoint().MultByCofactor(ep.p)}
}

type ed25519Scalar struct {
	s *edwards25519.Scalar
}

func (a *ed25519Scalar) Add(other Scalar) Scalar {
	b := other.(*ed25519Scalar)
	return &ed25519Scalar{s: edwards25519.NewScalar().Add(a.s, b.s)}
}

func (a *ed25519Scalar) Sub(other Scalar) Scalar {
	b := other.(*ed25519Scalar)
	return &ed25519Scalar{s: edwards25519.NewScalar().Subtract(a.s, b.s)}
}

func (a *ed25519Scalar) IsZero() bool {
	return a.s.Equal(edwards25519.NewScalar()) == 1
}

func (a *ed25519Scalar) Bytes() []byte { return a.s.Bytes() }

func (a *ed25519Scalar) Zeroize() { a.s.Set(edwards25519.NewScalar()) }

type ed25519Point struct {
	p *edwards25519.Point
}

func (a *ed25519Point) Add(other Point) Point {
	b := other.(*ed25519Point)
	return &ed25519Point{p: edwards25519.NewIdentityPoint().Add(a.p, b.p)}
}

func (a *ed25519Point) Sub(other Point) Point {
	b := other.(*ed25519Point)
	return &ed25519Point{p: edwards25519.NewIdentityPoint().Subtract(a.p, b.p)}
}

func (a *ed25519Point) Mul(s Scalar) Point {
	es := s.(*ed25519Scalar)
	return &ed25519Point{p: edwards25519.NewIdentityPoint().ScalarMult(es.s, a.p)}
}

func (a *ed25519Point) Equal(other Point) bool {
	b := other.(*ed25519Point)
	return a.p.Equal(b.p) == 1
}

func (a *ed25519Point) IsIdentity() bool {
	return a.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (a *ed25519Point) Encode() []byte { return a.p.Bytes() }
