package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, IsPhoneValid("9876543210"))

	assert.False(t, IsPhoneValid(""))
	assert.False(t, IsPhoneValid("98765"))
	assert.False(t, IsPhoneValid("98765432101"))
	assert.False(t, IsPhoneValid("98765abc10"))
	assert.False(t, IsPhoneValid("+919876543"))
}
