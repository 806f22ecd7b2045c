package chia

import (
	"crypto/sha256"
	"encoding/hex"
)

var (
	// DefaultHiddenPuzzleHash is the tree hash of the default hidden puzzle (=).
	DefaultHiddenPuzzleHash = mustHash32("711d6c4e32c92e53179b199484cf8c897542bc57f2b22582799f9d657eec4699")

	// StandardPuzzleModHash is the tree hash of p2_delegated_puzzle_or_hidden_puzzle.
	StandardPuzzleModHash = mustHash32("e9aaa49f45bad5c889b86ee3341550c155cfdd10c3a6757de618d20612fffd52")
)

// Tree hashes of the keywords used by currying: q=1, a=2, c=4.
var (
	quoteKeywordHash = TreeHashAtom([]byte{0x01})
	applyKeywordHash = TreeHashAtom([]byte{0x02})
	consKeywordHash  = TreeHashAtom([]byte{0x04})
	oneHash          = TreeHashAtom([]byte{0x01})
	nilHash          = TreeHashAtom(nil)
)

// TreeHashAtom hashes an atom: SHA-256(0x01 || atom).
func TreeHashAtom(atom []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte{0x01})
	h.Write(atom)
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// TreeHashPair hashes a cons cell: SHA-256(0x02 || left || right).
func TreeHashPair(left, right [32]byte) [32]byte {
	var buf [65]byte
	buf[0] = 0x02
	copy(buf[1:33], left[:])
	copy(buf[33:], right[:])
	return sha256.Sum256(buf[:])
}

// CurryTreeHash returns the tree hash of (a (q . mod) (c (q . arg0) (c (q . arg1) ... 1)))
// without building the program. args are tree hashes of the curried values.
func CurryTreeHash(modHash [32]byte, args ...[32]byte) [32]byte {
	quotedMod := TreeHashPair(quoteKeywordHash, modHash)
	curried := curriedValuesTreeHash(args)
	return TreeHashPair(applyKeywordHash, TreeHashPair(quotedMod, TreeHashPair(curried, nilHash)))
}

func curriedValuesTreeHash(args [][32]byte) [32]byte {
	if len(args) == 0 {
		return oneHash
	}
	rest := curriedValuesTreeHash(args[1:])
	quoted := TreeHashPair(quoteKeywordHash, args[0])
	return TreeHashPair(consKeywordHash, TreeHashPair(quoted, TreeHashPair(rest, nilHash)))
}

// StandardPuzzleHash is the puzzle hash locked to a synthetic public key.
func StandardPuzzleHash(synthetic *PublicKey) [32]byte {
	return CurryTreeHash(StandardPuzzleModHash, TreeHashAtom(synthetic.encoded[:]))
}

func mustHash32(s string) [32]byte {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		panic("chia: bad 32-byte constant " + s)
	}
	var out [32]byte
	copy(out[:], b)
	return out
}
