package utils

import (
	"unicode/utf8"
)

const (
	maxRune  = '\U0010FFFF'
	surr1    = 0xd800
	surr3    = 0xe000
	surrSelf = 0x10000
)

// Utf16Len returns the number of UTF-16 code units needed to encode v.
// Frame lengths on the wire are counted in these units.
func Utf16Len(v rune) int {
	switch {
	case 0 <= v && v < surr1, surr3 <= v && v < surrSelf:
		return 1
	case surrSelf <= v && v <= maxRune:
		return 2
	default:
		return 1
	}
}

func Utf16Count(src []byte) (n int) {
	for len(src) > 0 {
		rb, l := utf8.DecodeRune(src)
		src = src[l:]
		n += Utf16Len(rb)
	}
	return
}

func Utf16CountString(src string) (n int) {
	// range rune
	for _, rb := range src {
		n += Utf16Len(rb)
	}
	return
}

// Utf16Prefix returns the byte length of the prefix of src spanning exactly
// n UTF-16 code units. It reports false when src is shorter than n units or
// when the n-th unit falls inside a surrogate pair.
func Utf16Prefix(src string, n int) (int, bool) {
	if n == 0 {
		return 0, true
	}
	units := 0
	for i := 0; i < len(src); {
		rb, l := utf8.DecodeRuneInString(src[i:])
		i += l
		units += Utf16Len(rb)
		if units == n {
			return i, true
		}
		if units > n {
			return 0, false
		}
	}
	return 0, false
}

// ValidText reports whether src is well-formed Unicode text: valid UTF-8 (so
// no encoded surrogates) carrying no noncharacters.
func ValidText(src string) bool {
	if !utf8.ValidString(src) {
		return false
	}
	for _, rb := range src {
		if isNoncharacter(rb) {
			return false
		}
	}
	return true
}

func isNoncharacter(v rune) bool {
	return (0xFDD0 <= v && v <= 0xFDEF) || v&0xFFFE == 0xFFFE
}
