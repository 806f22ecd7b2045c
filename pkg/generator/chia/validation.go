package chia

import (
	"strings"
)

// Bech32 data charset (excludes 1, b, i, o to prevent ambiguity)
const bech32Charset = "023456789acdefghjklmnpqrstuvwxyz"

// addressDataLen is the number of characters after the "1" separator:
// 52 for the 32-byte puzzle hash plus a 6-character checksum.
const addressDataLen = 58

// IsValidBech32Char checks if a character can appear in the data part of an address.
func IsValidBech32Char(c rune) bool {
	return strings.ContainsRune(bech32Charset, c)
}

// InvalidBech32Chars returns invalid Bech32 characters in the input.
func InvalidBech32Chars(s string) []rune {
	var invalid []rune
	for _, c := range strings.ToLower(s) {
		if !IsValidBech32Char(c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}

// IsReachableSuffix reports whether some address could end with suffix.
func IsReachableSuffix(suffix string) bool {
	return len(suffix) <= addressDataLen && len(InvalidBech32Chars(suffix)) == 0
}

// SplitReachable partitions suffixes into those an address can end with and
// those it never can (e.g. leetspeak variants containing "1").
func SplitReachable(suffixes []string) (reachable, unreachable []string) {
	for _, s := range suffixes {
		if IsReachableSuffix(s) {
			reachable = append(reachable, s)
		} else {
			unreachable = append(unreachable, s)
		}
	}
	return reachable, unreachable
}
