package uniuri

import (
	"crypto/rand"
)

const (
	// StdLen gives roughly 95 bits of entropy with StdChars.
	StdLen = 16
	// FileLen gives roughly 98 bits of entropy with FileChars.
	FileLen = 19
)

var (
	// StdChars is the default alphabet.
	StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
	// FileChars is safe on case-insensitive filesystems.
	FileChars = []byte("abcdefghijklmnopqrstuvwxyz0123456789")
)

// New returns a random string of StdLen characters from StdChars.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewFileName returns a random base name for a stored file followed by ext.
func NewFileName(ext string) string {
	return NewLenChars(FileLen, FileChars) + ext
}

// NewLenChars returns a random string of length characters from chars.
// Bytes that would bias the modulo are rejected and redrawn.
// It panics when chars has fewer than 2 or more than 256 entries.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > 256 {
		panic("uniuri: wrong charset length")
	}

	// largest byte value that maps evenly onto chars
	limit := 255 - (256 % clen)

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			if int(rb) > limit {
				continue
			}

			out = append(out, chars[int(rb)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}
