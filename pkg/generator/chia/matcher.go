package chia

import (
	"strings"
)

// SuffixMatcher checks addresses against a fixed set of suffixes.
// Bech32m addresses are lowercase, so suffixes are lowercased once up front.
// The set is read-only after construction and safe to share between workers.
type SuffixMatcher struct {
	suffixes []string
}

// NewSuffixMatcher creates a matcher for the given suffixes, dropping duplicates.
func NewSuffixMatcher(suffixes []string) *SuffixMatcher {
	seen := make(map[string]struct{}, len(suffixes))
	m := &SuffixMatcher{suffixes: make([]string, 0, len(suffixes))}
	for _, s := range suffixes {
		s = strings.ToLower(s)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		m.suffixes = append(m.suffixes, s)
	}
	return m
}

// Matches reports whether address ends with any of the suffixes.
func (m *SuffixMatcher) Matches(address string) bool {
	for _, s := range m.suffixes {
		if strings.HasSuffix(address, s) {
			return true
		}
	}
	return false
}

// Suffixes returns a copy of the match set.
func (m *SuffixMatcher) Suffixes() []string {
	return append([]string(nil), m.suffixes...)
}

// Len returns the number of distinct suffixes.
func (m *SuffixMatcher) Len() int {
	return len(m.suffixes)
}

// VanityAddress derives addresses for index 0 up to maxIndex (exclusive) and
// returns the first one the matcher accepts. The lowest matching index wins.
func VanityAddress(wallet *PublicKey, m *SuffixMatcher, maxIndex uint32, prefix string) (DerivedAddress, bool) {
	for index := uint32(0); index < maxIndex; index++ {
		derived := DeriveAddress(wallet, index, prefix)
		if m.Matches(derived.Address) {
			return derived, true
		}
	}
	return DerivedAddress{}, false
}
