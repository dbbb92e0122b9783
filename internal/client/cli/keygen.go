package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/filex"
	"github.com/dmitrijs2005/gophschedule/internal/wallet"
)

// ErrKeystoreExists is returned by Keygen when path is taken and force is off.
var ErrKeystoreExists = errors.New("keystore already exists")

// Keygen creates a new wallet keystore at path, asking for the passphrase
// twice. It returns the new address.
func Keygen(path string, chainID int64, force bool, w io.Writer) (string, error) {
	path, err := filex.EnsureParentDir(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%w: %s", ErrKeystoreExists, path)
	}

	pw, err := getPassword(w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)

	fmt.Fprint(w, "Repeat passphrase. ")
	again, err := getPassword(w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(again)

	if !bytes.Equal(pw, again) {
		return "", fmt.Errorf("%w: passphrases do not match", common.ErrInvalidInput)
	}

	ks, err := wallet.NewKeystore(pw, chainID)
	if err != nil {
		return "", err
	}
	if err := ks.Save(path); err != nil {
		return "", fmt.Errorf("save keystore: %w", err)
	}
	return ks.Address, nil
}
