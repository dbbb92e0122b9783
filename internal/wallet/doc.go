// Package wallet provides the credential used to gate decryption and writes.
//
// A Signer signs arbitrary messages on behalf of the list owner and exposes
// the owner's address and chain identifier. KeystoreSigner is the local
// implementation: an ed25519 key sealed in a passphrase-protected keystore
// file, with an Ethereum-style address (last 20 bytes of the Keccak-256 of
// the public key) and personal-sign message hashing.
//
// A signature request that the holder refuses, cancels or answers with a
// wrong passphrase fails with common.ErrCredentialDeclined.
package wallet
