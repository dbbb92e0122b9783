package auth

import (
	"crypto/ed25519"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kvpb"
	"github.com/dmitrijs2005/gophschedule/internal/wallet"
)

// LoginPolicy decides which signed logins earn a write token.
type LoginPolicy struct {
	// Window is how far issued_at may be from the server clock.
	Window time.Duration
	// Owner, if set, is the only address allowed to write.
	Owner string
}

// Verify checks that req is a fresh login signed by the key behind
// req.Address. It returns the normalized address.
func (p LoginPolicy) Verify(req kvpb.LoginRequest, now time.Time) (string, error) {
	issued := time.Unix(req.IssuedAt, 0)
	if d := now.Sub(issued); d > p.Window || d < -p.Window {
		return "", common.ErrLoginExpired
	}

	pub := ed25519.PublicKey(req.PublicKey)
	if len(pub) != ed25519.PublicKeySize {
		return "", common.ErrBadSignature
	}

	address := strings.ToLower(req.Address)
	if wallet.AddressFromPublicKey(pub) != address {
		return "", common.ErrBadSignature
	}
	if !wallet.Verify(pub, wallet.LoginMessage(address, req.IssuedAt), req.Signature) {
		return "", common.ErrBadSignature
	}

	if p.Owner != "" && !strings.EqualFold(p.Owner, address) {
		return "", common.ErrorUnauthorized
	}
	return address, nil
}
