package sequence

import (
	"strings"

	"MS-Sequence-Tags/tag_generator/alphabet"
)

// Reverse returns the residue codes in reverse order, i.e. the tag as read along the
// opposite ion ladder (a y-ion ladder reads C- to N-terminal).
func Reverse(residues []string) []string {
	n := len(residues)
	out := make([]string, n)
	for i, r := range residues {
		out[n-1-i] = r
	}
	return out
}

// ReverseString is Reverse joined into a single string.
func ReverseString(residues []string) string {
	return strings.Join(Reverse(residues), "")
}

// Mass sums the residue masses of a tag. ok is false if a code is not in the alphabet.
func Mass(residues []string, a *alphabet.Alphabet) (total float64, ok bool) {
	for _, code := range residues {
		m, found := a.Mass(code)
		if !found {
			return 0, false
		}
		total += m
	}
	return total, true
}
