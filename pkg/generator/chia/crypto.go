package chia

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/tyler-smith/go-bip39"
)

// EntropySize is the number of bytes fed to the mnemonic (24 words).
const EntropySize = 32

// WalletIntermediatePath is the unhardened path from the master key to the
// wallet observer key: m/12381/8444/2.
var WalletIntermediatePath = []uint32{12381, 8444, 2}

// KeyMaterial is one generated wallet: the mnemonic, master key pair and the
// wallet intermediate public key under which receiving addresses are derived.
type KeyMaterial struct {
	Mnemonic  string
	SecretKey *SecretKey
	PublicKey *PublicKey
	Wallet    *PublicKey
}

// GenerateKey mixes userEntropy with 32 bytes of system randomness and builds
// a fresh key from the result. Each call yields a different key.
func GenerateKey(userEntropy string) (*KeyMaterial, error) {
	return GenerateKeyFrom(rand.Reader, userEntropy)
}

// GenerateKeyFrom is GenerateKey with an explicit randomness source.
func GenerateKeyFrom(r io.Reader, userEntropy string) (*KeyMaterial, error) {
	var system [EntropySize]byte
	if _, err := io.ReadFull(r, system[:]); err != nil {
		return nil, fmt.Errorf("read system entropy: %w", err)
	}

	// SHA-256(userEntropy || system)
	h := sha256.New()
	io.WriteString(h, userEntropy)
	h.Write(system[:])

	return KeyFromEntropy(h.Sum(nil))
}

// KeyFromEntropy builds the mnemonic for entropy and derives keys from it.
func KeyFromEntropy(entropy []byte) (*KeyMaterial, error) {
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("create mnemonic: %w", err)
	}
	return KeyFromMnemonic(mnemonic)
}

// KeyFromMnemonic recovers the key material of a mnemonic with an empty passphrase.
func KeyFromMnemonic(mnemonic string) (*KeyMaterial, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("mnemonic seed: %w", err)
	}

	sk, err := SecretKeyFromSeed(seed)
	if err != nil {
		return nil, err
	}
	pk := sk.PublicKey()

	return &KeyMaterial{
		Mnemonic:  mnemonic,
		SecretKey: sk,
		PublicKey: pk,
		Wallet:    pk.DerivePath(WalletIntermediatePath),
	}, nil
}

// Fingerprint identifies the key by its master public key.
func (k *KeyMaterial) Fingerprint() uint32 {
	return k.PublicKey.Fingerprint()
}

// WalletSecretKey returns the secret key of the receiving address at index.
func (k *KeyMaterial) WalletSecretKey(index uint32) *SecretKey {
	return k.SecretKey.DerivePath(WalletIntermediatePath).DeriveUnhardened(index)
}

// VanityAddress probes indices [0, maxIndex) of this key.
func (k *KeyMaterial) VanityAddress(m *SuffixMatcher, maxIndex uint32, prefix string) (DerivedAddress, bool) {
	return VanityAddress(k.Wallet, m, maxIndex, prefix)
}
