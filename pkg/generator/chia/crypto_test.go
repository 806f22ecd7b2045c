package chia

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

var zeroMnemonic = strings.Repeat("abandon ", 23) + "art"

const (
	zeroMasterSecret = "345f9d6a5bcadaebe6ceb05e91c44df84f795d24e113fe84b1895a37cc4591e4"
	zeroMasterPublic = "827af93158c0542a234c76fcdfd54766dc39405b259c25f6fc90ca47fb0c73a8f5c745a4489b0a0ed7662044021bac53"
	zeroWallet       = "aa436e8da51636bd52ba2ef2ca02d38b10f8280a42e8285e9e4cc2768bda50d2997fb04042d6c23e5bd12d521d908253"
	zeroFingerprint  = 1532878573
)

func zeroKey(t *testing.T) *KeyMaterial {
	t.Helper()
	k, err := KeyFromEntropy(make([]byte, EntropySize))
	if err != nil {
		t.Fatalf("KeyFromEntropy: %v", err)
	}
	return k
}

func TestSecretKeyFromSeed(t *testing.T) {
	tests := []struct {
		name        string
		seed        []byte
		fingerprint uint32
		publicKey   string
	}{
		{
			name:        "all zeros",
			seed:        make([]byte, 32),
			fingerprint: 0xb40dd58a,
			publicKey:   "85695fcbc06cc4c4c9451f4dce21cbf8de3e5a13bf48f44cdbb18e2038ba7b8bb1632d7911ef1e2e08749bddbf165352",
		},
		{
			name:        "all ones",
			seed:        bytes.Repeat([]byte{0x01}, 32),
			fingerprint: 0xb839add1,
			publicKey:   "aefe1789d6476f60439e1168f588ea16652dc321279f05a805fbc63933e88ae9c175d6c6ab182e54af562e1a0dce41bb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			sk, err := SecretKeyFromSeed(tt.seed)
			is.NoErr(err)
			pk := sk.PublicKey()
			is.Equal(pk.Fingerprint(), tt.fingerprint)
			is.Equal(pk.Hex(), tt.publicKey)
		})
	}
}

func TestSecretKeyFromSeedTooShort(t *testing.T) {
	is := is.New(t)
	_, err := SecretKeyFromSeed(make([]byte, 31))
	is.True(errors.Is(err, ErrSeedTooShort))
}

func TestKeyFromEntropy(t *testing.T) {
	is := is.New(t)
	k := zeroKey(t)

	is.Equal(k.Mnemonic, zeroMnemonic)
	is.Equal(k.SecretKey.Hex(), zeroMasterSecret)
	is.Equal(k.PublicKey.Hex(), zeroMasterPublic)
	is.Equal(k.Wallet.Hex(), zeroWallet)
	is.Equal(k.Fingerprint(), uint32(zeroFingerprint))
}

func TestKeyFromEntropyWrongSize(t *testing.T) {
	is := is.New(t)
	_, err := KeyFromEntropy(make([]byte, 31))
	is.True(err != nil)
}

func TestKeyFromMnemonic(t *testing.T) {
	is := is.New(t)

	k, err := KeyFromMnemonic(zeroMnemonic)
	is.NoErr(err)
	is.True(k.PublicKey.Equal(zeroKey(t).PublicKey))

	_, err = KeyFromMnemonic("abandon abandon abandon")
	is.True(err != nil)
}

func TestGenerateKeyFrom(t *testing.T) {
	is := is.New(t)
	system := bytes.Repeat([]byte{0x42}, EntropySize)

	a, err := GenerateKeyFrom(bytes.NewReader(system), "correct horse")
	is.NoErr(err)
	b, err := GenerateKeyFrom(bytes.NewReader(system), "correct horse")
	is.NoErr(err)
	c, err := GenerateKeyFrom(bytes.NewReader(system), "battery staple")
	is.NoErr(err)

	is.Equal(a.Mnemonic, b.Mnemonic)  // same inputs, same key
	is.True(a.Mnemonic != c.Mnemonic) // user entropy is mixed in
	is.Equal(len(strings.Fields(a.Mnemonic)), 24)
}

func TestGenerateKeyFromShortReader(t *testing.T) {
	is := is.New(t)
	_, err := GenerateKeyFrom(bytes.NewReader(make([]byte, 8)), "")
	is.True(err != nil)
}

func TestGenerateKeyIsFresh(t *testing.T) {
	is := is.New(t)
	a, err := GenerateKey("same")
	is.NoErr(err)
	b, err := GenerateKey("same")
	is.NoErr(err)
	is.True(a.Mnemonic != b.Mnemonic)
	is.True(!a.PublicKey.Equal(b.PublicKey))
}

func TestUnhardenedDerivationConsistency(t *testing.T) {
	is := is.New(t)
	k := zeroKey(t)

	// The secret side of the wallet path must land on the same public key.
	walletSK := k.SecretKey.DerivePath(WalletIntermediatePath)
	is.True(walletSK.PublicKey().Equal(k.Wallet))

	sk0 := k.WalletSecretKey(0)
	is.Equal(sk0.Hex(), "31c4571353eabbd614a4ba658132425174d5b9f51f4f6704adebf38c47fb7e59")
	is.True(sk0.PublicKey().Equal(k.Wallet.DeriveUnhardened(0)))
}

func TestSyntheticConsistency(t *testing.T) {
	is := is.New(t)
	k := zeroKey(t)

	sk := k.WalletSecretKey(5)
	pk := k.Wallet.DeriveUnhardened(5)
	is.True(sk.Synthetic(DefaultHiddenPuzzleHash).PublicKey().Equal(pk.Synthetic(DefaultHiddenPuzzleHash)))
}

func TestPublicKeyFromHex(t *testing.T) {
	is := is.New(t)

	pk, err := PublicKeyFromHex(zeroMasterPublic)
	is.NoErr(err)
	is.Equal(pk.Hex(), zeroMasterPublic)
	is.Equal(pk.Fingerprint(), uint32(zeroFingerprint))

	_, err = PublicKeyFromHex("abcd")
	is.True(errors.Is(err, ErrInvalidPublicKey))

	_, err = PublicKeyFromHex("zz")
	is.True(errors.Is(err, ErrInvalidPublicKey))
}

func TestSecretKeyFromBytes(t *testing.T) {
	is := is.New(t)
	k := zeroKey(t)

	sk, err := SecretKeyFromBytes(k.SecretKey.Bytes())
	is.NoErr(err)
	is.True(sk.PublicKey().Equal(k.PublicKey))

	_, err = SecretKeyFromBytes(make([]byte, SecretKeySize))
	is.True(errors.Is(err, ErrInvalidSecretKey))
}
