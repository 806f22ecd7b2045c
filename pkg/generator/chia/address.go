package chia

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Address prefixes (bech32 human-readable parts).
const (
	MainnetPrefix = "xch"
	TestnetPrefix = "txch"
)

// Errors
var (
	ErrNotBech32m        = errors.New("address is not bech32m encoded")
	ErrInvalidPuzzleHash = errors.New("address does not encode a 32-byte puzzle hash")
)

// DerivedAddress is a receiving address probed at a single derivation index.
type DerivedAddress struct {
	Index        uint32
	Address      string
	ReceivingKey *PublicKey
}

// EncodeAddress encodes a puzzle hash as Bech32m(prefix, puzzleHash).
// Unlike segwit addresses there is no witness version in the data part.
func EncodeAddress(puzzleHash [32]byte, prefix string) (string, error) {
	data, err := bech32.ConvertBits(puzzleHash[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(prefix, data)
}

// DecodeAddress reverses EncodeAddress.
func DecodeAddress(address string) (string, [32]byte, error) {
	var puzzleHash [32]byte

	prefix, data, version, err := bech32.DecodeGeneric(address)
	if err != nil {
		return "", puzzleHash, err
	}
	if version != bech32.VersionM {
		return "", puzzleHash, ErrNotBech32m
	}

	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", puzzleHash, fmt.Errorf("%w: %v", ErrInvalidPuzzleHash, err)
	}
	if len(decoded) != len(puzzleHash) {
		return "", puzzleHash, ErrInvalidPuzzleHash
	}
	copy(puzzleHash[:], decoded)
	return prefix, puzzleHash, nil
}

// DeriveAddress derives the receiving address at index under the wallet intermediate key:
// unhardened child -> synthetic key -> standard puzzle hash -> bech32m.
func DeriveAddress(wallet *PublicKey, index uint32, prefix string) DerivedAddress {
	child := wallet.DeriveUnhardened(index)
	synthetic := child.Synthetic(DefaultHiddenPuzzleHash)

	address, err := EncodeAddress(StandardPuzzleHash(synthetic), prefix)
	if err != nil {
		// Puzzle hashes are always 32 bytes, so only a bad prefix gets here.
		panic(fmt.Sprintf("chia: encode address with prefix %q: %v", prefix, err))
	}

	return DerivedAddress{
		Index:        index,
		Address:      address,
		ReceivingKey: child,
	}
}
