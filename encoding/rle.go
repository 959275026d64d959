package encoding

import (
	"math"
	"strings"
	"unicode/utf8"
)

// MaxRLERun is the longest run a single (count, byte) pair can describe.
const MaxRLERun = math.MaxUint8

// AppendRLE appends the run-length encoding of s to dst. Consecutive equal
// bytes collapse into (count, byte) pairs; runs longer than MaxRLERun are
// split across several pairs.
func AppendRLE(dst []byte, s string) []byte {
	for i := 0; i < len(s); {
		b := s[i]
		run := 1
		for i+run < len(s) && s[i+run] == b && run < MaxRLERun {
			run++
		}
		dst = append(dst, byte(run), b)
		i += run
	}

	return dst
}

// EncodeRLE returns the run-length encoding of s.
func EncodeRLE(s string) []byte {
	return AppendRLE(make([]byte, 0, RLESize(s)), s)
}

// RLESize returns len(EncodeRLE(s)) without allocating.
func RLESize(s string) int {
	size := 0
	for i := 0; i < len(s); {
		run := 1
		for i+run < len(s) && s[i+run] == s[i] && run < MaxRLERun {
			run++
		}
		size += 2
		i += run
	}

	return size
}

// DecodeRLE expands (count, byte) pairs. Each byte is one Latin-1
// character, so bytes from 0x80 up become two-byte UTF-8 sequences in the
// result. A trailing odd byte is ignored.
func DecodeRLE(payload []byte) string {
	var sb strings.Builder
	for i := 0; i+1 < len(payload); i += 2 {
		r := rune(payload[i+1])
		for range int(payload[i]) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// IsASCII reports whether every byte of s is below 0x80. Only such strings
// survive an RLE round trip unchanged.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}
