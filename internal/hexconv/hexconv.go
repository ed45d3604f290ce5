package hexconv

// Halfbyte maps a hex digit to its value. Any other character maps to 0xFF, so a
// bitwise OR of two looked up values exceeds 0x0f if any of them isn't a valid digit.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 10
		table[c-'a'+'A'] = c - 'a' + 10
	}

	return table
}()

// Byte combines two hex digits into a single byte. ok is false if any of them isn't
// a hex digit.
func Byte(high, low byte) (b byte, ok bool) {
	a, c := Halfbyte[high], Halfbyte[low]
	return a<<4 | c, a|c <= 0x0f
}
