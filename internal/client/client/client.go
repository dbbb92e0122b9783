package client

import (
	"crypto/ed25519"

	"github.com/dmitrijs2005/gophschedule/internal/wallet"
)

// Credential is a wallet signer that can also show its public key, which the
// server needs to check a login signature.
type Credential interface {
	wallet.Signer
	PublicKey() ed25519.PublicKey
}
