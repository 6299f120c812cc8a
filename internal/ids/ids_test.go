package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "a001", Format("a", 1))
	assert.Equal(t, "d042", Format("d", 42))
	assert.Equal(t, "p999", Format("p", 999))

	// Past three digits the ID widens instead of wrapping.
	assert.Equal(t, "a1000", Format("a", 1000))
	assert.Equal(t, "a12345", Format("a", 12345))
}
