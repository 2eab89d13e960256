package viewing

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/sip-protocol/sip-go/chains"
	"github.com/sip-protocol/sip-go/secure"
	"github.com/sip-protocol/sip-go/types"
)

// ExportVersion is the current viewing-key export format version.
const ExportVersion = 1

// ExportBlob is the versioned JSON form of a viewing key. It contains the
// private key and must be handled as a secret.
type ExportBlob struct {
	Version    int             `json:"version"`
	Chain      types.ChainID   `json:"chain"`
	PrivateKey types.HexString `json:"private_key"`
	PublicKey  types.HexString `json:"public_key"`
	Hash       types.HexString `json:"hash"`
	Label      string          `json:"label,omitempty"`
	CreatedAt  int64           `json:"created_at"`
}

// Export serializes a viewing key.
func Export(key *ViewingKey) ([]byte, error) {
	if key == nil {
		return nil, types.NewValidationError("viewing_key", "nil")
	}
	return json.Marshal(&ExportBlob{
		Version:    ExportVersion,
		Chain:      key.Chain,
		PrivateKey: key.PrivateKey,
		PublicKey:  key.PublicKey,
		Hash:       key.Hash,
		Label:      key.Label,
		CreatedAt:  key.CreatedAt,
	})
}

// Import parses an export blob. The public key is re-derived from the
// private key and the hash from the public key, so a tampered or corrupted
// blob fails with an internal mismatch. Unknown versions and chains are
// rejected.
func Import(blob []byte) (*ViewingKey, error) {
	var e ExportBlob
	if err := json.Unmarshal(blob, &e); err != nil {
		return nil, types.WrapValidation("blob", err)
	}
	if e.Version != ExportVersion {
		return nil, types.NewValidationError("version", "unknown export version")
	}
	curve, err := chains.CurveFor(e.Chain)
	if err != nil {
		return nil, err
	}

	privBytes, err := types.DecodeHexField("private_key", e.PrivateKey, curve.ScalarSize())
	if err != nil {
		return nil, err
	}
	defer secure.Zeroize(privBytes)
	priv, err := curve.DecodeScalar(privBytes)
	if err != nil {
		return nil, types.WrapValidation("private_key", err)
	}
	defer priv.Zeroize()

	pubBytes := curve.ScalarBaseMult(priv).Encode()
	if types.EncodeHex(pubBytes) != e.PublicKey {
		return nil, types.NewValidationError("public_key", "does not match private key")
	}
	hash := sha256.Sum256(pubBytes)
	if types.EncodeHex(hash[:]) != e.Hash {
		return nil, types.NewValidationError("hash", "does not match public key")
	}

	return &ViewingKey{
		PrivateKey: e.PrivateKey,
		PublicKey:  e.PublicKey,
		Hash:       e.Hash,
		Chain:      e.Chain,
		Label:      e.Label,
		CreatedAt:  e.CreatedAt,
	}, nil
}
