package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kvpb"
	"github.com/dmitrijs2005/gophschedule/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedLogin(t *testing.T, issuedAt int64) (kvpb.LoginRequest, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	address := wallet.AddressFromPublicKey(pub)
	sig := ed25519.Sign(priv, wallet.HashMessage(wallet.LoginMessage(address, issuedAt)))
	return kvpb.LoginRequest{Address: address, PublicKey: pub, IssuedAt: issuedAt, Signature: sig}, priv
}

func TestLoginPolicy_Verify(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := LoginPolicy{Window: time.Minute}

	req, _ := signedLogin(t, now.Unix()-10)
	req.Address = strings.ToUpper(req.Address[:2]) + req.Address[2:]

	addr, err := p.Verify(req, now)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(req.Address), addr)
}

func TestLoginPolicy_Stale(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := LoginPolicy{Window: time.Minute}

	old, _ := signedLogin(t, now.Unix()-120)
	_, err := p.Verify(old, now)
	assert.ErrorIs(t, err, common.ErrLoginExpired)

	future, _ := signedLogin(t, now.Unix()+120)
	_, err = p.Verify(future, now)
	assert.ErrorIs(t, err, common.ErrLoginExpired)
}

func TestLoginPolicy_BadSignature(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := LoginPolicy{Window: time.Minute}

	req, _ := signedLogin(t, now.Unix())
	req.Signature[0] ^= 0xff
	_, err := p.Verify(req, now)
	assert.ErrorIs(t, err, common.ErrBadSignature)
}

func TestLoginPolicy_AddressMismatch(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := LoginPolicy{Window: time.Minute}

	req, _ := signedLogin(t, now.Unix())
	other, _ := signedLogin(t, now.Unix())
	req.Address = other.Address
	_, err := p.Verify(req, now)
	assert.ErrorIs(t, err, common.ErrBadSignature)

	req.PublicKey = []byte{1, 2, 3}
	_, err = p.Verify(req, now)
	assert.ErrorIs(t, err, common.ErrBadSignature)
}

func TestLoginPolicy_Owner(t *testing.T) {
	now := time.Unix(1700000000, 0)

	req, _ := signedLogin(t, now.Unix())
	_, err := LoginPolicy{Window: time.Minute, Owner: "0x0000000000000000000000000000000000000001"}.Verify(req, now)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	addr, err := LoginPolicy{Window: time.Minute, Owner: strings.ToUpper(req.Address)}.Verify(req, now)
	require.NoError(t, err)
	assert.Equal(t, req.Address, addr)
}
