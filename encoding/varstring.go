package encoding

// VarStringSize returns the encoded size of s as a varstring.
func VarStringSize(s string) int {
	return varintLen(uint64(len(s))) + len(s)
}

// varintLen returns the number of bytes required to encode a uvarint.
func varintLen(n uint64) int {
	size := 1
	for n >= 0x80 {
		n >>= 7
		size++
	}

	return size
}
