package curves

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	k256ScalarSize = 32
	k256PointSize  = 33
)

type k256Curve struct{}

var k256Instance = &k256Curve{}

// K256 returns the secp256k1 curve adapter.
func K256() Curve { return k256Instance }

func (c *k256Curve) Name() string    { return K256Name }
func (c *k256Curve) ScalarSize() int { return k256ScalarSize }
func (c *k256Curve) PointSize() int  { return k256PointSize }
func (c *k256Curve) Order() *big.Int { return secp256k1.S256().N }

func (c *k256Curve) RandomScalar() (Scalar, error) {
	// GeneratePrivateKey already guarantees a non-zero scalar below the
	// curve order.
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("secp256k1 scalar sampling: %w", err)
	}
	s := new(secp256k1.ModNScalar).Set(&priv.Key)
	priv.Zero()
	return &k256Scalar{s: s}, nil
}

func (c *k256Curve) DecodeScalar(b []byte) (Scalar, error) {
	if len(b) != k256ScalarSize {
		return nil, fmt.Errorf("secp256k1 scalar must be %d bytes, got %d", k256ScalarSize, len(b))
	}
	var buf [32]byte
	copy(buf[:], b)
	s := new(secp256k1.ModNScalar)
	if overflow := s.SetBytes(&buf); overflow != 0 {
		return nil, fmt.Errorf("secp256k1 scalar not canonical: value exceeds curve order")
	}
	return &k256Scalar{s: s}, nil
}

func (c *k256Curve) ReduceScalar(b []byte) (Scalar, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("secp256k1 scalar reduction: empty input")
	}
	s := new(secp256k1.ModNScalar)
	if len(b) <= 32 {
		s.SetByteSlice(b)
		return &k256Scalar{s: s}, nil
	}
	v := new(big.Int).SetBytes(b)
	v.Mod(v, c.Order())
	var buf [32]byte
	v.FillBytes(buf[:])
	s.SetBytes(&buf)
	return &k256Scalar{s: s}, nil
}

func (c *k256Curve) ScalarFromBigInt(v *big.Int) (Scalar, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(c.Order()) >= 0 {
		return nil, fmt.Errorf("secp256k1 scalar out of range [0, order)")
	}
	var buf [32]byte
	v.FillBytes(buf[:])
	s := new(secp256k1.ModNScalar)
	s.SetBytes(&buf)
	return &k256Scalar{s: s}, nil
}

var k256Generator = func() secp256k1.JacobianPoint {
	one := new(secp256k1.ModNScalar)
	one.SetInt(1)
	var j secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(one, &j)
	j.ToAffine()
	return j
}()

func (c *k256Curve) Generator() Point {
	return &k256Point{p: k256Generator}
}

func (c *k256Curve) Identity() Point {
	return &k256Point{inf: true}
}

func (c *k256Curve) ScalarBaseMult(s Scalar) Point {
	ks := s.(*k256Scalar)
	if ks.s.IsZero() {
		return c.Identity()
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(ks.s, &r)
	r.ToAffine()
	return &k256Point{p: r}
}

func (c *k256Curve) DecodePoint(b []byte) (Point, error) {
	if len(b) != k256PointSize {
		return nil, fmt.Errorf("secp256k1 point must be %d bytes, got %d", k256PointSize, len(b))
	}
	if allZero(b) {
		return c.Identity(), nil
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("secp256k1 point decoding: %w", err)
	}
	var j secp256k1.JacobianPoint
	pub.AsJacobian(&j)
	return &k256Point{p: j}, nil
}

// ClearCofactor is a no-op: secp256k1 has cofactor 1.
func (c *k256Curve) ClearCofactor(p Point) Point { return p }

type k256Scalar struct {
	s *secp256k1.ModNScalar
}

func (a *k256Scalar) Add(other Scalar) Scalar {
	b := other.(*k256Scalar)
	r := new(secp256k1.ModNScalar).Set(a.s)
	r.Add(b.s)
	return &k256Scalar{s: r}
}

func (a *k256Scalar) Sub(other Scalar) Scalar {
	b := other.(*k256Scalar)
	neg := new(secp256k1.ModNScalar).Set(b.s)
	neg.Negate()
	r := new(secp256k1.ModNScalar).Set(a.s)
	r.Add(neg)
	neg.SetInt(0)
	return &k256Scalar{s: r}
}

func (a *k256Scalar) IsZero() bool { return a.s.IsZero() }

func (a *k256Scalar) Bytes() []byte {
	b := a.s.Bytes()
	return b[:]
}

func (a *k256Scalar) Zeroize() { a.s.SetInt(0) }

type k256Point struct {
	p   secp256k1.JacobianPoint // affine form (Z = 1) unless inf
	inf bool
}

func (a *k256Point) Add(other Point) Point {
	b := other.(*k256Point)
	if a.inf {
		return b.clone()
	}
	if b.inf {
		return a.clone()
	}
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a.p, &b.p, &r)
	if r.Z.IsZero() {
		return &k256Point{inf: true}
	}
	r.ToAffine()
	return &k256Point{p: r}
}

func (a *k256Point) Sub(other Point) Point {
	b := other.(*k256Point)
	if b.inf {
		return a.clone()
	}
	neg := b.p
	neg.Y.Negate(1)
	neg.Y.Normalize()
	if a.inf {
		return &k256Point{p: neg}
	}
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a.p, &neg, &r)
	if r.Z.IsZero() {
		return &k256Point{inf: true}
	}
	r.ToAffine()
	return &k256Point{p: r}
}

func (a *k256Point) Mul(s Scalar) Point {
	ks := s.(*k256Scalar)
	if a.inf || ks.s.IsZero() {
		return &k256Point{inf: true}
	}
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(ks.s, &a.p, &r)
	if r.Z.IsZero() {
		return &k256Point{inf: true}
	}
	r.ToAffine()
	return &k256Point{p: r}
}

func (a *k256Point) Equal(other Point) bool {
	b := other.(*k256Point)
	if a.inf || b.inf {
		return a.inf == b.inf
	}
	return a.p.X.Equals(&b.p.X) && a.p.Y.Equals(&b.p.Y)
}

func (a *k256Point) IsIdentity() bool { return a.inf }

func (a *k256Point) Encode() []byte {
	if a.inf {
		// The identity has no SEC1 encoding; all-zero bytes are the
		// protocol's canonical placeholder.
		return make([]byte, k256PointSize)
	}
	pub := secp256k1.NewPublicKey(&a.p.X, &a.p.Y)
	return pub.SerializeCompressed()
}

func (a *k256Point) clone() *k256Point {
	return &k256Point{p: a.p, inf: a.inf}
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
