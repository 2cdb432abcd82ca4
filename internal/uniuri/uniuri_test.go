package uniuri

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	s := New()
	assert.Len(t, s, StdLen)

	for _, c := range []byte(s) {
		assert.True(t, bytes.IndexByte(StdChars, c) >= 0, "unexpected %q", c)
	}

	assert.NotEqual(t, s, New())
}

func TestNewFileName(t *testing.T) {
	name := NewFileName(".png")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Len(t, name, FileLen+len(".png"))
	assert.Equal(t, strings.ToLower(name), name)
}

func TestNewLenChars(t *testing.T) {
	assert.Empty(t, NewLenChars(0, StdChars))
	assert.Equal(t, "aaaa", strings.ReplaceAll(NewLenChars(4, []byte("ab")), "b", "a"))
	assert.Len(t, NewLenChars(1000, FileChars), 1000)

	assert.Panics(t, func() { NewLenChars(4, []byte("a")) })
}
