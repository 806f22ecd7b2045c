package generator

import (
	"strings"
)

// leetSubstitutions maps a character to the digit accepted in its place.
var leetSubstitutions = map[rune]rune{
	'o': '0',
	'i': '1',
	'l': '1',
	's': '5',
	'a': '4',
	'e': '3',
	'z': '2',
}

// ExpandVariants returns every leetspeak spelling of target, lowercased.
// The first character varies slowest. An empty target yields [""].
func ExpandVariants(target string) []string {
	variants := []string{""}
	for _, ch := range strings.ToLower(target) {
		options := variantOptions(ch)

		next := make([]string, 0, len(variants)*len(options))
		for _, v := range variants {
			for _, opt := range options {
				next = append(next, v+string(opt))
			}
		}
		variants = next
	}
	return variants
}

// VariantCount returns len(ExpandVariants(target)) without expanding.
func VariantCount(target string) int {
	n := 1
	for _, ch := range strings.ToLower(target) {
		n *= len(variantOptions(ch))
	}
	return n
}

func variantOptions(ch rune) []rune {
	if alt, ok := leetSubstitutions[ch]; ok {
		return []rune{ch, alt}
	}
	return []rune{ch}
}
