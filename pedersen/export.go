package pedersen

import (
	"encoding/json"

	"github.com/sip-protocol/sip-go/chains"
	"github.com/sip-protocol/sip-go/types"
)

// ExportVersion is the current commitment export format version.
const ExportVersion = 1

// ExportBlob is the versioned JSON form of a commitment opening. It
// contains the blinding factor and must be handled as a secret.
type ExportBlob struct {
	Version    int             `json:"version"`
	Chain      types.ChainID   `json:"chain"`
	Commitment types.HexString `json:"commitment"`
	Blinding   types.HexString `json:"blinding"`
}

// Export serializes a commitment opening for a chain.
func Export(chain types.ChainID, c *Commitment) ([]byte, error) {
	if c == nil {
		return nil, types.NewValidationError("commitment", "nil")
	}
	if _, err := chains.CurveFor(chain); err != nil {
		return nil, err
	}
	return json.Marshal(&ExportBlob{
		Version:    ExportVersion,
		Chain:      chain,
		Commitment: c.Commitment,
		Blinding:   c.Blinding,
	})
}

// Import parses an export blob, rejecting unknown versions and chains and
// re-validating both encodings on the chain's curve.
func Import(blob []byte) (types.ChainID, *Commitment, error) {
	var e ExportBlob
	if err := json.Unmarshal(blob, &e); err != nil {
		return "", nil, types.WrapValidation("blob", err)
	}
	if e.Version != ExportVersion {
		return "", nil, types.NewValidationError("version", "unknown export version")
	}
	curve, err := chains.CurveFor(e.Chain)
	if err != nil {
		return "", nil, err
	}
	if _, err := decodeCommitment(curve, "commitment", e.Commitment); err != nil {
		return "", nil, err
	}
	s, err := decodeBlinding(curve, "blinding", e.Blinding)
	if err != nil {
		return "", nil, err
	}
	s.Zeroize()
	return e.Chain, &Commitment{Commitment: e.Commitment, Blinding: e.Blinding}, nil
}
