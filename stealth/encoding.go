package stealth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sip-protocol/sip-go/types"
)

// Boundary text formats. Meta-addresses travel as
// sip:<chain>:<spendingKeyHex>:<viewingKeyHex>[:<label>] and announcements
// embed in chain memos as SIP:<version>:<ephemeralHex>:<viewTagHex>.
const (
	MetaAddressPrefix = "sip"
	MemoPrefix        = "SIP"
	MemoVersion       = 1
)

// EncodeMetaAddress renders a meta-address in SIP text format. The label
// segment is omitted when empty.
func EncodeMetaAddress(meta *types.MetaAddress) string {
	if meta.Label != "" {
		return fmt.Sprintf("%s:%s:%s:%s:%s", MetaAddressPrefix, meta.Chain,
			meta.SpendingPublicKey, meta.ViewingPublicKey, meta.Label)
	}
	return fmt.Sprintf("%s:%s:%s:%s", MetaAddressPrefix, meta.Chain,
		meta.SpendingPublicKey, meta.ViewingPublicKey)
}

// DecodeMetaAddress parses the SIP text format and validates that both keys
// are canonical non-identity points on the chain's curve.
func DecodeMetaAddress(encoded string) (*types.MetaAddress, error) {
	parts := strings.Split(encoded, ":")
	if len(parts) != 4 && len(parts) != 5 {
		return nil, types.NewValidationError("meta_address", "want sip:<chain>:<spending>:<viewing>[:<label>]")
	}
	if parts[0] != MetaAddressPrefix {
		return nil, types.NewValidationError("meta_address", "missing sip: prefix")
	}

	meta := &types.MetaAddress{
		Chain:             parts[1],
		SpendingPublicKey: strings.ToLower(parts[2]),
		ViewingPublicKey:  strings.ToLower(parts[3]),
	}
	if len(parts) == 5 {
		meta.Label = parts[4]
	}

	if _, _, _, err := decodeMetaAddress(meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// EncodeAnnouncementMemo renders the announcement memo for a stealth
// address: the ephemeral public key without its 0x prefix followed by the
// two-digit view tag, both lowercase fixed-width hex.
func EncodeAnnouncementMemo(sa *types.StealthAddress) string {
	ephemeral := strings.TrimPrefix(sa.EphemeralPublicKey, "0x")
	return fmt.Sprintf("%s:%d:%s:%02x", MemoPrefix, MemoVersion, ephemeral, sa.ViewTag)
}

// DecodeAnnouncementMemo parses an announcement memo back into the
// ephemeral public key and view tag. Unknown memo versions are rejected.
func DecodeAnnouncementMemo(memo string) (types.HexString, byte, error) {
	parts := strings.Split(memo, ":")
	if len(parts) != 4 || parts[0] != MemoPrefix {
		return "", 0, types.NewValidationError("memo", "want SIP:<version>:<ephemeral>:<view_tag>")
	}
	version, err := strconv.Atoi(parts[1])
	if err != nil || version != MemoVersion {
		return "", 0, types.NewValidationError("memo_version", "unknown version "+parts[1])
	}

	ephemeralBytes, err := types.DecodeHexField("ephemeral_public_key", parts[2], 0)
	if err != nil {
		return "", 0, err
	}
	// 32 bytes on ed25519 chains, 33 on secp256k1 chains.
	if len(ephemeralBytes) != 32 && len(ephemeralBytes) != 33 {
		return "", 0, types.NewValidationError("ephemeral_public_key", "wrong length")
	}

	tagBytes, err := types.DecodeHexField("view_tag", parts[3], 1)
	if err != nil {
		return "", 0, err
	}
	return types.EncodeHex(ephemeralBytes), tagBytes[0], nil
}
