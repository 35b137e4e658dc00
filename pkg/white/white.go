// 9 Mar 2025

// Package white removes white space from byte slices, in place.
package white

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// IsWhite is true for ascii white space.
func IsWhite(c byte) bool { return asciiSpace[c] }

// Remove squeezes white space out of *s. The slice keeps its capacity,
// only the length changes.
func Remove(s *[]byte) {
	b := *s
	n := 0
	for _, c := range b {
		if !asciiSpace[c] {
			b[n] = c
			n++
		}
	}
	*s = b[:n]
}
