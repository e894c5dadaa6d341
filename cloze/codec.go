package cloze

import (
	"fmt"
	"strings"
)

// codecAlphabet is a-z then A-Z: letters only, deliberately excluding
// digits so a codeword can never be confused with a group_id or
// sequence_order at any position of a comma list.
const codecAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const codecBase = len(codecAlphabet)

// EncodeID converts a non-negative integer into its base-52, letters-only
// serialization. EncodeID(0) is the sole special case, returning "a".
func EncodeID(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("cloze: cannot encode negative id %d", n)
	}
	if n == 0 {
		return string(codecAlphabet[0]), nil
	}

	var digits []byte
	for n > 0 {
		digits = append(digits, codecAlphabet[n%codecBase])
		n /= codecBase
	}
	// digits were appended least-significant first; reverse in place.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits), nil
}

// DecodeID is the inverse of EncodeID. Any character outside the codec
// alphabet is an error, as is an empty string.
func DecodeID(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("cloze: empty id code")
	}
	n := 0
	for _, r := range s {
		idx := strings.IndexRune(codecAlphabet, r)
		if idx < 0 {
			return 0, fmt.Errorf("cloze: invalid character %q in id code %q", r, s)
		}
		n = n*codecBase + idx
	}
	return n, nil
}

// isCodecString reports whether s is non-empty and composed only of codec
// alphabet characters, i.e. it could plausibly be a note_id_code.
func isCodecString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if strings.IndexRune(codecAlphabet, r) < 0 {
			return false
		}
	}
	return true
}
