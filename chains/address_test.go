package chains

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sip-protocol/sip-go/core/curves"
	"github.com/sip-protocol/sip-go/types"
)

func TestEthereumAddressKnownKey(t *testing.T) {
	// The generator point is the public key of private key 1; its Ethereum
	// address is a well-known fixture.
	g := types.EncodeHex(curves.K256().Generator().Encode())
	address, err := EthereumAddress(g)
	require.NoError(t, err)
	require.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", address)
}

func TestEthereumAddressShape(t *testing.T) {
	s, err := curves.K256().RandomScalar()
	require.NoError(t, err)
	pub := types.EncodeHex(curves.K256().ScalarBaseMult(s).Encode())

	a1, err := EthereumAddress(pub)
	require.NoError(t, err)
	a2, err := EthereumAddress(pub)
	require.NoError(t, err)

	require.Equal(t, a1, a2, "deterministic")
	require.Len(t, a1, 42)
	require.True(t, strings.HasPrefix(a1, "0x"))
	for _, c := range a1[2:] {
		require.Contains(t, "0123456789abcdefABCDEF", string(c))
	}
}

func TestEthereumAddressRejects(t *testing.T) {
	_, err := EthereumAddress("0x02abcd")
	require.Error(t, err)
	require.True(t, types.IsValidationError(err))

	_, err = EthereumAddress("not hex")
	require.Error(t, err)
}

func TestSolanaAddress(t *testing.T) {
	zero := types.EncodeHex(make([]byte, 32))
	address, err := SolanaAddress(zero)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("1", 32), address, "all-zero key is the system program address")

	s, err := curves.ED25519().RandomScalar()
	require.NoError(t, err)
	pub := types.EncodeHex(curves.ED25519().ScalarBaseMult(s).Encode())
	address, err = SolanaAddress(pub)
	require.NoError(t, err)
	require.NotEmpty(t, address)

	_, err = SolanaAddress("0xabcd")
	require.Error(t, err, "wrong length")
}
