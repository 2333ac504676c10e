// Package signature provides helper functions for handling the hashing
// and signing needs of the Sociora blockchain.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros. It is used as the parent hash
// for the genesis block.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns a unique hash for the value. The value is canonicalized
// before hashing so two logically equal values produce the same hash
// regardless of field declaration or insertion order.
func Hash(value any) string {
	data, err := canonicalize(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// HashString returns the hash for the raw string. It is used to hash
// public keys and content identifiers so no unhashed identity ever
// appears on chain.
func HashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hexutil.Encode(hash[:])
}

// HashPublicKey converts a raw public key into its one-way on-chain
// representation.
func HashPublicKey(publicKey string) string {
	return HashString(publicKey)
}

// HashContentID converts a content identifier (like an IPFS CID) into a
// content-addressable reference.
func HashContentID(cid string) string {
	return HashString(cid)
}

// =============================================================================

// Sign produces a signature for the message using the specified key.
//
// CORE NOTE: This is a placeholder keyed-MAC scheme, not public key
// cryptography. The signer and the verifier share the key. Any real
// deployment must swap this layer for an asymmetric scheme.
func Sign(message string, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(stamp(message))
	return hexutil.Encode(mac.Sum(nil))
}

// VerifySignature verifies the signature was produced over the message with
// the specified key. The comparison runs in constant time.
func VerifySignature(message string, sig string, key string) bool {
	sigBytes, err := hexutil.Decode(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(stamp(message))

	return hmac.Equal(sigBytes, mac.Sum(nil))
}

// =============================================================================

// Now returns the current UTC time in the fixed textual format used across
// blocks and transactions. The value is for display and audit only, never
// ordering guarantees.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// =============================================================================

// stamp returns a 32 byte digest that represents the message with the
// Sociora stamp embedded. The stamp keeps signatures produced here unique
// to this chain.
func stamp(message string) []byte {
	msgHash := crypto.Keccak256([]byte(message))

	stamp := []byte("\x19Sociora Signed Message:\n32")

	return crypto.Keccak256(stamp, msgHash)
}

// canonicalize produces a stable byte representation of the value. The
// value is marshaled, reduced to generic form and marshaled again so JSON
// object keys come out sorted.
func canonicalize(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("unmarshal generic: %w", err)
	}

	return json.Marshal(generic)
}
