package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// Signer signs messages with the owner's credential.
type Signer interface {
	Address() string
	ChainID() int64
	Sign(ctx context.Context, message string) ([]byte, error)
}

const personalSignPrefix = "\x19Ethereum Signed Message:\n"

// HashMessage returns Keccak-256 over the personal-sign envelope of message.
func HashMessage(message string) []byte {
	return keccak256([]byte(personalSignPrefix + strconv.Itoa(len(message)) + message))
}

// AddressFromPublicKey derives the 0x-prefixed hex address of pub.
func AddressFromPublicKey(pub ed25519.PublicKey) string {
	h := keccak256(pub)
	return "0x" + hex.EncodeToString(h[len(h)-20:])
}

// Verify reports whether sig is pub's signature over message.
func Verify(pub ed25519.PublicKey, message string, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pub, HashMessage(message), sig)
}

// LoginMessage is the text a client signs to obtain a write token.
func LoginMessage(address string, issuedAt int64) string {
	return fmt.Sprintf("login:%s:%d", address, issuedAt)
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
