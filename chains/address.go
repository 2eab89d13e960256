package chains

import (
	"encoding/hex"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/sip-protocol/sip-go/types"
)

// EthereumAddress renders a compressed secp256k1 public key as an EIP-55
// checksummed Ethereum address: keccak256 of the uncompressed key without
// its 0x04 prefix, last 20 bytes, mixed-case checksum.
func EthereumAddress(publicKey types.HexString) (types.HexString, error) {
	keyBytes, err := types.DecodeHexField("public_key", publicKey, 0)
	if err != nil {
		return "", err
	}
	pub, err := secp256k1.ParsePubKey(keyBytes)
	if err != nil {
		return "", types.WrapValidation("public_key", err)
	}

	uncompressed := pub.SerializeUncompressed()
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(uncompressed[1:])
	digest := hasher.Sum(nil)
	addressHex := hex.EncodeToString(digest[12:])

	checksumHasher := sha3.NewLegacyKeccak256()
	checksumHasher.Write([]byte(addressHex))
	checksum := checksumHasher.Sum(nil)

	var out strings.Builder
	for i, c := range addressHex {
		if c >= '0' && c <= '9' {
			out.WriteByte(byte(c))
			continue
		}
		nibble := (checksum[i/2] >> (4 * (1 - uint(i%2)))) & 0x0f
		if nibble >= 8 {
			out.WriteByte(byte(c) - 32) // uppercase
		} else {
			out.WriteByte(byte(c))
		}
	}
	return "0x" + out.String(), nil
}

// SolanaAddress renders a 32-byte ed25519 public key as a base58 Solana
// account address.
func SolanaAddress(publicKey types.HexString) (string, error) {
	keyBytes, err := types.DecodeHexField("public_key", publicKey, 32)
	if err != nil {
		return "", err
	}
	return base58.Encode(keyBytes), nil
}
