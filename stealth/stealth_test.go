package stealth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sip-protocol/sip-go/chains"
	"github.com/sip-protocol/sip-go/types"
)

var protocolChains = []types.ChainID{chains.ChainEthereum, chains.ChainSolana}

func TestGenerateMetaAddress(t *testing.T) {
	for _, chain := range protocolChains {
		t.Run(chain, func(t *testing.T) {
			meta, spendPriv, viewPriv, err := GenerateMetaAddress(chain, "savings")
			require.NoError(t, err)
			require.Equal(t, chain, meta.Chain)
			require.Equal(t, "savings", meta.Label)
			require.NotEqual(t, meta.SpendingPublicKey, meta.ViewingPublicKey)
			require.NotEqual(t, spendPriv, viewPriv)

			curve, err := chains.CurveFor(chain)
			require.NoError(t, err)
			for _, key := range []types.HexString{meta.SpendingPublicKey, meta.ViewingPublicKey} {
				b, err := types.DecodeHex(key)
				require.NoError(t, err)
				require.Len(t, b, curve.PointSize())
			}
			for _, key := range []types.HexString{spendPriv, viewPriv} {
				b, err := types.DecodeHex(key)
				require.NoError(t, err)
				require.Len(t, b, curve.ScalarSize())
			}
		})
	}
}

func TestGenerateMetaAddressUnknownChain(t *testing.T) {
	_, _, _, err := GenerateMetaAddress("", "")
	require.Error(t, err)
	require.True(t, types.IsValidationError(err))
}

func TestStealthAddressRoundTrip(t *testing.T) {
	for _, chain := range protocolChains {
		t.Run(chain, func(t *testing.T) {
			meta, spendPriv, viewPriv, err := GenerateMetaAddress(chain, "")
			require.NoError(t, err)

			sa, sharedSecret, err := GenerateStealthAddress(meta)
			require.NoError(t, err)
			require.NotEmpty(t, sharedSecret)
			require.NotEqual(t, meta.SpendingPublicKey, sa.Address)

			// Recipient with both keys detects the payment.
			owned, err := CheckOwnership(chain, sa, spendPriv, viewPriv)
			require.NoError(t, err)
			require.True(t, owned)

			// The derived private key controls exactly the stealth address.
			stealthPriv, err := DeriveStealthPrivateKey(chain, sa, spendPriv, viewPriv)
			require.NoError(t, err)
			curve, err := chains.CurveFor(chain)
			require.NoError(t, err)
			privBytes, err := types.DecodeHex(stealthPriv)
			require.NoError(t, err)
			scalar, err := curve.DecodeScalar(privBytes)
			require.NoError(t, err)
			require.Equal(t, sa.Address, types.EncodeHex(curve.ScalarBaseMult(scalar).Encode()))
		})
	}
}

func TestStealthAddressesAreUnlinkable(t *testing.T) {
	meta, _, _, err := GenerateMetaAddress(chains.ChainEthereum, "")
	require.NoError(t, err)

	first, _, err := GenerateStealthAddress(meta)
	require.NoError(t, err)
	second, _, err := GenerateStealthAddress(meta)
	require.NoError(t, err)

	require.NotEqual(t, first.Address, second.Address)
	require.NotEqual(t, first.EphemeralPublicKey, second.EphemeralPublicKey)
}

func TestCheckOwnershipRejectsForeignKeys(t *testing.T) {
	meta, _, _, err := GenerateMetaAddress(chains.ChainEthereum, "")
	require.NoError(t, err)
	sa, _, err := GenerateStealthAddress(meta)
	require.NoError(t, err)

	_, otherSpend, otherView, err := GenerateMetaAddress(chains.ChainEthereum, "")
	require.NoError(t, err)

	owned, err := CheckOwnership(chains.ChainEthereum, sa, otherSpend, otherView)
	require.NoError(t, err)
	require.False(t, owned)
}

func TestCheckOwnershipViewKeyAlone(t *testing.T) {
	// Holding the viewing key but a wrong spending key must not grant a
	// match even though the view tag passes.
	meta, _, viewPriv, err := GenerateMetaAddress(chains.ChainEthereum, "")
	require.NoError(t, err)
	sa, _, err := GenerateStealthAddress(meta)
	require.NoError(t, err)

	_, foreignSpend, _, err := GenerateMetaAddress(chains.ChainEthereum, "")
	require.NoError(t, err)

	owned, err := CheckOwnership(chains.ChainEthereum, sa, foreignSpend, viewPriv)
	require.NoError(t, err)
	require.False(t, owned)
}

func TestCheckOwnershipMalformedAddress(t *testing.T) {
	meta, spendPriv, viewPriv, err := GenerateMetaAddress(chains.ChainEthereum, "")
	require.NoError(t, err)
	sa, _, err := GenerateStealthAddress(meta)
	require.NoError(t, err)

	// A mangled stealth address encoding yields false without an error.
	sa.Address = "0xzz" + string(sa.Address[4:])
	owned, err := CheckOwnership(chains.ChainEthereum, sa, spendPriv, viewPriv)
	require.NoError(t, err)
	require.False(t, owned)
}

func TestCheckOwnershipBadEphemeral(t *testing.T) {
	meta, spendPriv, viewPriv, err := GenerateMetaAddress(chains.ChainEthereum, "")
	require.NoError(t, err)
	sa, _, err := GenerateStealthAddress(meta)
	require.NoError(t, err)

	sa.EphemeralPublicKey = "0x00"
	_, err = CheckOwnership(chains.ChainEthereum, sa, spendPriv, viewPriv)
	require.Error(t, err)
	require.True(t, types.IsValidationError(err))
}

func TestGenerateStealthAddressValidatesMeta(t *testing.T) {
	tests := []struct {
		name string
		meta *types.MetaAddress
	}{
		{"nil", nil},
		{"unknown chain", &types.MetaAddress{Chain: ""}},
		{"bad spending key", &types.MetaAddress{
			Chain:             chains.ChainEthereum,
			SpendingPublicKey: "0x02",
			ViewingPublicKey:  "0x02",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GenerateStealthAddress(tt.meta)
			require.Error(t, err)
		})
	}
}

func TestMetaAddressEncoding(t *testing.T) {
	for _, label := range []string{"", "donations"} {
		meta, _, _, err := GenerateMetaAddress(chains.ChainSolana, label)
		require.NoError(t, err)

		encoded := EncodeMetaAddress(meta)
		require.True(t, strings.HasPrefix(encoded, "sip:solana:"))

		decoded, err := DecodeMetaAddress(encoded)
		require.NoError(t, err)
		require.Equal(t, meta, decoded)
	}
}

func TestDecodeMetaAddressRejects(t *testing.T) {
	meta, _, _, err := GenerateMetaAddress(chains.ChainEthereum, "")
	require.NoError(t, err)
	valid := EncodeMetaAddress(meta)

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"wrong prefix", "pis" + valid[3:]},
		{"too few segments", "sip:ethereum:0xabc"},
		{"bad keys", "sip:ethereum:0x02:0x03"},
		{"identity spending key", "sip:ethereum:0x" + strings.Repeat("00", 33) + ":" + string(meta.ViewingPublicKey)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMetaAddress(tt.encoded)
			require.Error(t, err)
			require.True(t, types.IsValidationError(err))
		})
	}
}

func TestAnnouncementMemoRoundTrip(t *testing.T) {
	for _, chain := range protocolChains {
		t.Run(chain, func(t *testing.T) {
			meta, _, _, err := GenerateMetaAddress(chain, "")
			require.NoError(t, err)
			sa, _, err := GenerateStealthAddress(meta)
			require.NoError(t, err)

			memo := EncodeAnnouncementMemo(sa)
			require.True(t, strings.HasPrefix(memo, "SIP:1:"))

			ephemeral, tag, err := DecodeAnnouncementMemo(memo)
			require.NoError(t, err)
			require.Equal(t, sa.EphemeralPublicKey, ephemeral)
			require.Equal(t, sa.ViewTag, tag)
		})
	}
}

func TestDecodeAnnouncementMemoRejects(t *testing.T) {
	tests := []struct {
		name string
		memo string
	}{
		{"empty", ""},
		{"wrong prefix", "XYZ:1:0xab:0x01"},
		{"unknown version", "SIP:2:" + strings.Repeat("ab", 33) + ":01"},
		{"bad ephemeral length", "SIP:1:abcd:01"},
		{"bad view tag", "SIP:1:" + strings.Repeat("ab", 33) + ":0102"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeAnnouncementMemo(tt.memo)
			require.Error(t, err)
		})
	}
}
