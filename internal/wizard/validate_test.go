package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidBusinessName(t *testing.T) {
	assert.True(t, ValidBusinessName("AB"))
	assert.True(t, ValidBusinessName("AB Plumbing"))

	assert.False(t, ValidBusinessName("A"))
	assert.False(t, ValidBusinessName(" A "))
	assert.False(t, ValidBusinessName("  "))
	assert.False(t, ValidBusinessName(""))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("5551234567"))
	assert.True(t, ValidPhone("(555) 123-4567"))
	assert.True(t, ValidPhone("555.123.4567"))
	assert.True(t, ValidPhone("15551234567"))
	assert.True(t, ValidPhone("+1 555 123 4567"))

	assert.False(t, ValidPhone("555123456"), "9 digits")
	assert.False(t, ValidPhone("25551234567"), "11 digits without leading 1")
	assert.False(t, ValidPhone("555123456789"))
	assert.False(t, ValidPhone(""))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("owner@abplumbing.com"))
	assert.True(t, ValidEmail("a@b.co"))

	assert.False(t, ValidEmail("foo"))
	assert.False(t, ValidEmail("foo@bar"))
	assert.False(t, ValidEmail("foo bar@baz.com"))
	assert.False(t, ValidEmail("@baz.com"))
	assert.False(t, ValidEmail(""))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("(555) 123-4567"))
	assert.Equal(t, "5551234567", NormalizePhone("+1 555 123 4567"))
	assert.Equal(t, "5551234567", NormalizePhone("5551234567"))

	// Invalid input passes through untouched
	assert.Equal(t, "12345", NormalizePhone("12345"))
}
