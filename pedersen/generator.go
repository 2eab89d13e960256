package pedersen

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/sip-protocol/sip-go/core/curves"
	"github.com/sip-protocol/sip-go/types"
)

// HDomainTag seeds the NUMS construction of the second generator. Frozen:
// changing it changes every commitment ever made.
const HDomainTag = "SIP-PEDERSEN-GENERATOR-H-v1"

// maxHAttempts bounds the hash-and-decode loop. Roughly half of all
// candidate encodings decode to a point, so 256 attempts failing is a
// ~2^-256 event treated as a fatal invariant violation.
const maxHAttempts = 256

type hEntry struct {
	point curves.Point
	err   error
}

var (
	hMu    sync.Mutex
	hCache = map[string]*hEntry{}
)

// H returns the curve's second Pedersen generator, constructed once per
// process via nothing-up-my-sleeve hashing: SHA-256 of "<domain>:<counter>"
// for increasing counters, decoded as a compressed point, cofactor cleared,
// first candidate that is neither the identity nor the base point. No party
// can know a discrete-log relation between G and H.
func H(curve curves.Curve) (curves.Point, error) {
	hMu.Lock()
	defer hMu.Unlock()
	entry, ok := hCache[curve.Name()]
	if !ok {
		point, err := deriveH(curve)
		entry = &hEntry{point: point, err: err}
		hCache[curve.Name()] = entry
	}
	return entry.point, entry.err
}

func deriveH(curve curves.Curve) (curves.Point, error) {
	generator := curve.Generator()
	for counter := 0; counter < maxHAttempts; counter++ {
		digest := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", HDomainTag, counter)))

		candidate := make([]byte, curve.PointSize())
		if curve.PointSize() == 33 {
			// SEC1 compressed encoding with even y.
			candidate[0] = 0x02
			copy(candidate[1:], digest[:])
		} else {
			copy(candidate, digest[:])
		}

		point, err := curve.DecodePoint(candidate)
		if err != nil {
			continue
		}
		point = curve.ClearCofactor(point)
		if point.IsIdentity() || point.Equal(generator) {
			continue
		}
		return point, nil
	}
	return nil, types.NewCryptoError("generator construction",
		errors.Errorf("no valid H candidate for %s within %d attempts", curve.Name(), maxHAttempts))
}

// Generators exposes the hex encodings of G and H for external proof
// systems. No proof machinery lives in this library.
func Generators(curve curves.Curve) (g, h types.HexString, err error) {
	hPoint, err := H(curve)
	if err != nil {
		return "", "", err
	}
	return types.EncodeHex(curve.Generator().Encode()), types.EncodeHex(hPoint.Encode()), nil
}
