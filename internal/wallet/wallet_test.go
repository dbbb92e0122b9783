package wallet

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticPrompt(pw string) PassphrasePrompt {
	return func(context.Context, string) ([]byte, error) {
		return []byte(pw), nil
	}
}

func newTestKeystore(t *testing.T) *Keystore {
	t.Helper()
	ks, err := NewKeystore([]byte("correct horse"), 11155111)
	require.NoError(t, err)
	return ks
}

func TestNewKeystore_AddressFormat(t *testing.T) {
	ks := newTestKeystore(t)

	assert.Regexp(t, regexp.MustCompile(`^0x[0-9a-f]{40}$`), ks.Address)
	assert.Equal(t, AddressFromPublicKey(ks.PublicKey), ks.Address)
	assert.Equal(t, int64(11155111), ks.ChainID)
}

func TestNewKeystore_EmptyPassphrase(t *testing.T) {
	_, err := NewKeystore(nil, 1)
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestKeystore_SaveLoadUnlock(t *testing.T) {
	ks := newTestKeystore(t)
	path := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, ks.Save(path))

	loaded, err := LoadKeystore(path)
	require.NoError(t, err)
	assert.Equal(t, ks.Address, loaded.Address)

	priv, err := loaded.Unlock([]byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, []byte(ks.PublicKey), []byte(priv[32:]))

	_, err = loaded.Unlock([]byte("wrong"))
	require.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestKeystoreSigner_SignAndVerify(t *testing.T) {
	ks := newTestKeystore(t)
	s := NewKeystoreSigner(ks, staticPrompt("correct horse"))

	sig, err := s.Sign(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, Verify(s.PublicKey(), "hello", sig))
	assert.False(t, Verify(s.PublicKey(), "hello!", sig))
	assert.Equal(t, ks.Address, s.Address())
	assert.Equal(t, ks.ChainID, s.ChainID())
}

func TestKeystoreSigner_Declined(t *testing.T) {
	ks := newTestKeystore(t)

	tests := []struct {
		name   string
		prompt PassphrasePrompt
	}{
		{name: "prompt error", prompt: func(context.Context, string) ([]byte, error) { return nil, errors.New("user rejected") }},
		{name: "empty passphrase", prompt: staticPrompt("")},
		{name: "wrong passphrase", prompt: staticPrompt("nope")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKeystoreSigner(ks, tt.prompt).Sign(context.Background(), "msg")
			require.ErrorIs(t, err, common.ErrCredentialDeclined)
		})
	}
}

func TestHashMessage_DependsOnMessage(t *testing.T) {
	a := HashMessage("a")
	require.Len(t, a, 32)
	assert.Equal(t, a, HashMessage("a"))
	assert.NotEqual(t, a, HashMessage("b"))
}

func TestVerify_RejectsBadKey(t *testing.T) {
	assert.False(t, Verify([]byte{1, 2}, "m", []byte{3}))
}

func TestLoginMessage(t *testing.T) {
	assert.Equal(t, "login:0xabc:1700000000", LoginMessage("0xabc", 1700000000))
}
