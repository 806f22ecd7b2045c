// Package chia provides Chia vanity address generation support.
// Keys live on the BLS12-381 G1 group; addresses are bech32m-encoded
// puzzle hashes of the standard transaction puzzle.
package chia

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/hkdf"
)

const (
	// PublicKeySize is the length of a compressed G1 element.
	PublicKeySize = bls12381.SizeOfG1AffineCompressed
	// SecretKeySize is the length of a serialized scalar.
	SecretKeySize = 32
)

// keyGenSalt is the initial HKDF salt of the BLS KeyGen procedure.
const keyGenSalt = "BLS-SIG-KEYGEN-SALT-"

// Errors
var (
	ErrSeedTooShort     = errors.New("seed must be at least 32 bytes")
	ErrInvalidPublicKey = errors.New("invalid BLS public key")
	ErrInvalidSecretKey = errors.New("invalid BLS secret key")
)

var (
	groupOrder = fr.Modulus()
	twoTo256   = new(big.Int).Lsh(big.NewInt(1), 256)
	g1GenJac   bls12381.G1Jac
)

func init() {
	g1GenJac, _, _, _ = bls12381.Generators()
}

// SecretKey is a BLS12-381 scalar in [1, r).
type SecretKey struct {
	k *big.Int
}

// PublicKey is a G1 point. The compressed encoding is cached because every
// derivation step hashes it.
type PublicKey struct {
	point   bls12381.G1Affine
	encoded [PublicKeySize]byte
}

// SecretKeyFromSeed runs the BLS KeyGen procedure (HKDF-SHA256, L=48) over seed.
func SecretKeyFromSeed(seed []byte) (*SecretKey, error) {
	if len(seed) < 32 {
		return nil, ErrSeedTooShort
	}

	ikm := make([]byte, len(seed)+1)
	copy(ikm, seed) // IKM || I2OSP(0, 1)
	info := []byte{0x00, 0x30}
	salt := []byte(keyGenSalt)

	okm := make([]byte, 48)
	for {
		if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, info), okm); err != nil {
			return nil, fmt.Errorf("keygen: %w", err)
		}
		k := new(big.Int).SetBytes(okm)
		k.Mod(k, groupOrder)
		if k.Sign() != 0 {
			return &SecretKey{k: k}, nil
		}
		next := sha256.Sum256(salt)
		salt = next[:]
	}
}

// SecretKeyFromBytes parses a 32-byte big-endian scalar.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	if len(b) != SecretKeySize {
		return nil, ErrInvalidSecretKey
	}
	k := new(big.Int).SetBytes(b)
	if k.Sign() == 0 || k.Cmp(groupOrder) >= 0 {
		return nil, ErrInvalidSecretKey
	}
	return &SecretKey{k: k}, nil
}

// Bytes returns the 32-byte big-endian scalar.
func (sk *SecretKey) Bytes() []byte {
	return sk.k.FillBytes(make([]byte, SecretKeySize))
}

// Hex returns the scalar as lowercase hex.
func (sk *SecretKey) Hex() string {
	return hex.EncodeToString(sk.Bytes())
}

// PublicKey returns sk·G1.
func (sk *SecretKey) PublicKey() *PublicKey {
	var p bls12381.G1Jac
	p.ScalarMultiplication(&g1GenJac, sk.k)
	return newPublicKey(&p)
}

// DeriveUnhardened returns the child secret key whose public key equals
// sk.PublicKey().DeriveUnhardened(index).
func (sk *SecretKey) DeriveUnhardened(index uint32) *SecretKey {
	nonce := unhardenedNonce(sk.PublicKey(), index)
	k := new(big.Int).Add(sk.k, nonce)
	return &SecretKey{k: k.Mod(k, groupOrder)}
}

// DerivePath applies DeriveUnhardened for each index in path.
func (sk *SecretKey) DerivePath(path []uint32) *SecretKey {
	derived := sk
	for _, idx := range path {
		derived = derived.DeriveUnhardened(idx)
	}
	return derived
}

// Synthetic returns the secret key matching PublicKey().Synthetic(hidden).
func (sk *SecretKey) Synthetic(hiddenPuzzleHash [32]byte) *SecretKey {
	offset := syntheticOffset(sk.PublicKey(), hiddenPuzzleHash)
	k := new(big.Int).Add(sk.k, offset)
	return &SecretKey{k: k.Mod(k, groupOrder)}
}

func newPublicKey(p *bls12381.G1Jac) *PublicKey {
	pk := &PublicKey{}
	pk.point.FromJacobian(p)
	pk.encoded = pk.point.Bytes()
	return pk
}

// PublicKeyFromBytes parses a compressed G1 element and checks subgroup membership.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	pk := &PublicKey{}
	if _, err := pk.point.SetBytes(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	copy(pk.encoded[:], b)
	return pk, nil
}

// PublicKeyFromHex parses a hex-encoded compressed G1 element.
func PublicKeyFromHex(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return PublicKeyFromBytes(b)
}

// Bytes returns the 48-byte compressed encoding.
func (pk *PublicKey) Bytes() []byte {
	out := pk.encoded
	return out[:]
}

// Hex returns the compressed encoding as lowercase hex.
func (pk *PublicKey) Hex() string {
	return hex.EncodeToString(pk.encoded[:])
}

// Equal reports whether both keys encode the same point.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && pk.encoded == other.encoded
}

// Fingerprint is the first four bytes of SHA-256 over the compressed key.
func (pk *PublicKey) Fingerprint() uint32 {
	sum := sha256.Sum256(pk.encoded[:])
	return binary.BigEndian.Uint32(sum[:4])
}

// DeriveUnhardened derives the non-hardened child at index. No secret key is needed.
// child = pk + (SHA-256(pk || BE32(index)) mod r)·G1
func (pk *PublicKey) DeriveUnhardened(index uint32) *PublicKey {
	return pk.addScalar(unhardenedNonce(pk, index))
}

// DerivePath applies DeriveUnhardened for each index in path.
func (pk *PublicKey) DerivePath(path []uint32) *PublicKey {
	derived := pk
	for _, idx := range path {
		derived = derived.DeriveUnhardened(idx)
	}
	return derived
}

// Synthetic blinds the key with the hidden puzzle hash:
// pk + (signed SHA-256(pk || hidden) mod r)·G1
func (pk *PublicKey) Synthetic(hiddenPuzzleHash [32]byte) *PublicKey {
	return pk.addScalar(syntheticOffset(pk, hiddenPuzzleHash))
}

// addScalar returns pk + s·G1 with a single affine conversion.
func (pk *PublicKey) addScalar(s *big.Int) *PublicKey {
	var p bls12381.G1Jac
	p.ScalarMultiplication(&g1GenJac, s)
	p.AddMixed(&pk.point)
	return newPublicKey(&p)
}

func unhardenedNonce(pk *PublicKey, index uint32) *big.Int {
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)

	h := sha256.New()
	h.Write(pk.encoded[:])
	h.Write(idx[:])
	nonce := new(big.Int).SetBytes(h.Sum(nil))
	return nonce.Mod(nonce, groupOrder)
}

// syntheticOffset reads the digest as a two's complement integer before reducing.
func syntheticOffset(pk *PublicKey, hiddenPuzzleHash [32]byte) *big.Int {
	h := sha256.New()
	h.Write(pk.encoded[:])
	h.Write(hiddenPuzzleHash[:])
	digest := h.Sum(nil)

	offset := new(big.Int).SetBytes(digest)
	if digest[0]&0x80 != 0 {
		offset.Sub(offset, twoTo256)
	}
	// big.Int.Mod is Euclidean, so the result is never negative.
	return offset.Mod(offset, groupOrder)
}
