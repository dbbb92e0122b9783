package wallet

import (
	"context"
	"crypto/ed25519"
	"fmt"

	"github.com/dmitrijs2005/gophschedule/internal/common"
)

// PassphrasePrompt asks the holder to approve message by entering the
// keystore passphrase. Returning an error or an empty passphrase declines.
type PassphrasePrompt func(ctx context.Context, message string) ([]byte, error)

// KeystoreSigner signs with a key unlocked per request.
type KeystoreSigner struct {
	ks     *Keystore
	prompt PassphrasePrompt
}

func NewKeystoreSigner(ks *Keystore, prompt PassphrasePrompt) *KeystoreSigner {
	return &KeystoreSigner{ks: ks, prompt: prompt}
}

func (s *KeystoreSigner) Address() string {
	return s.ks.Address
}

func (s *KeystoreSigner) ChainID() int64 {
	return s.ks.ChainID
}

func (s *KeystoreSigner) PublicKey() ed25519.PublicKey {
	return s.ks.PublicKey
}

// Sign returns the ed25519 signature over HashMessage(message).
func (s *KeystoreSigner) Sign(ctx context.Context, message string) ([]byte, error) {
	passphrase, err := s.prompt(ctx, message)
	defer common.WipeByteArray(passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCredentialDeclined, err)
	}
	if len(passphrase) == 0 {
		return nil, common.ErrCredentialDeclined
	}

	priv, err := s.ks.Unlock(passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCredentialDeclined, err)
	}
	defer common.WipeByteArray(priv)

	return ed25519.Sign(priv, HashMessage(message)), nil
}
