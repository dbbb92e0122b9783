package wallet

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/cryptox"
)

var ErrWrongPassphrase = errors.New("wrong passphrase")

// Keystore is the on-disk form of a wallet. Only the seed is encrypted.
type Keystore struct {
	Address    string `json:"address"`
	PublicKey  []byte `json:"public_key"`
	ChainID    int64  `json:"chain_id"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

type sealedSeed struct {
	Seed []byte `json:"seed"`
}

// NewKeystore generates a fresh key pair and seals it with passphrase.
func NewKeystore(passphrase []byte, chainID int64) (*Keystore, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: empty passphrase", common.ErrInvalidInput)
	}

	seed := common.GenerateRandByteArray(ed25519.SeedSize)
	defer common.WipeByteArray(seed)

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	common.WipeByteArray(priv)

	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	ct, nonce, err := cryptox.Seal(sealedSeed{Seed: seed}, key)
	if err != nil {
		return nil, fmt.Errorf("sealing keystore: %w", err)
	}

	return &Keystore{
		Address:    AddressFromPublicKey(pub),
		PublicKey:  pub,
		ChainID:    chainID,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ct,
	}, nil
}

// Unlock decrypts the private key. The caller must wipe it after use.
func (k *Keystore) Unlock(passphrase []byte) (ed25519.PrivateKey, error) {
	key := cryptox.DeriveKey(passphrase, k.Salt)
	defer common.WipeByteArray(key)

	var s sealedSeed
	if err := cryptox.Open(k.Ciphertext, k.Nonce, key, &s); err != nil {
		return nil, ErrWrongPassphrase
	}
	defer common.WipeByteArray(s.Seed)

	if len(s.Seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("keystore seed has %d bytes", len(s.Seed))
	}
	return ed25519.NewKeyFromSeed(s.Seed), nil
}

// Save writes the keystore as JSON readable by the owner only.
func (k *Keystore) Save(path string) error {
	b, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// LoadKeystore reads a keystore written by Save.
func LoadKeystore(path string) (*Keystore, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var k Keystore
	if err := json.Unmarshal(b, &k); err != nil {
		return nil, fmt.Errorf("parse keystore %s: %w", path, err)
	}
	if len(k.PublicKey) != ed25519.PublicKeySize || k.Address != AddressFromPublicKey(k.PublicKey) {
		return nil, fmt.Errorf("keystore %s: address does not match public key", path)
	}
	return &k, nil
}
