// Package types defines the shared data model of the SIP protocol: stealth
// meta-addresses, one-time stealth addresses, payment announcements, and the
// encrypted payloads exchanged with viewing-key holders. It also carries the
// hex conventions used at every module boundary: fixed-width, zero-padded,
// lowercase, 0x-prefixed.
package types

// HexString is a lowercase hex string with a 0x prefix.
type HexString = string

// ChainID is a chain identifier (e.g. "ethereum", "solana", "near").
type ChainID = string

// MetaAddress is a recipient's long-lived, publicly shareable stealth
// meta-address. Both keys are canonical compressed curve points on the
// curve implied by Chain; neither may be the identity.
type MetaAddress struct {
	// SpendingPublicKey controls spend authority over derived addresses.
	SpendingPublicKey HexString `json:"spending_key"`
	// ViewingPublicKey lets a scanner detect incoming payments.
	ViewingPublicKey HexString `json:"viewing_key"`
	// Chain is the blockchain this address is published for.
	Chain ChainID `json:"chain"`
	// Label is an optional human-readable label.
	Label string `json:"label,omitempty"`
}

// StealthAddress is a one-time destination derived from a meta-address and a
// fresh ephemeral key. Reusing one degrades unlinkability but is not
// prevented by the protocol.
type StealthAddress struct {
	// Address is the derived one-time public key.
	Address HexString `json:"address"`
	// EphemeralPublicKey is the sender's ephemeral public key; the
	// recipient needs it to recompute the shared secret.
	EphemeralPublicKey HexString `json:"ephemeral_public_key"`
	// ViewTag is the leading byte of the shared-secret hash, a public
	// scanning pre-filter.
	ViewTag byte `json:"view_tag"`
}

// Announcement is the public broadcast that makes a stealth payment
// discoverable. Immutable once emitted; consumed by scanners.
type Announcement struct {
	StealthAddress     HexString `json:"stealth_address"`
	EphemeralPublicKey HexString `json:"ephemeral_public_key"`
	ViewTag            byte      `json:"view_tag"`
	Chain              ChainID   `json:"chain"`
	BlockHeight        uint64    `json:"block_height,omitempty"`
	TxHash             HexString `json:"tx_hash,omitempty"`
}

// PaymentMetadata is optional amount/token enrichment supplied by a
// collaborator (e.g. an RPC balance lookup outside this library).
type PaymentMetadata struct {
	Amount string    `json:"amount,omitempty"`
	Token  HexString `json:"token,omitempty"`
}

// DetectedPayment is a scan hit: the announcement that matched, the label of
// the registered recipient it belongs to, and any supplied metadata.
type DetectedPayment struct {
	Announcement Announcement `json:"announcement"`
	Label        string       `json:"label"`
	Metadata     PaymentMetadata `json:"metadata,omitempty"`
}

// EncryptedPayload is authenticated-encrypted transaction metadata keyed to
// one viewing key. ViewingKeyHash selects the key without trial decryption.
type EncryptedPayload struct {
	Ciphertext     HexString `json:"ciphertext"`
	Nonce          HexString `json:"nonce"`
	ViewingKeyHash HexString `json:"viewing_key_hash"`
}
