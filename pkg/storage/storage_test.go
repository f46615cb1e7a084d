package storage

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageType(t *testing.T) {
	c := &Client{}

	assert.NoError(t, c.ValidateImageType("image/jpeg"))
	assert.NoError(t, c.ValidateImageType("image/PNG"))
	assert.NoError(t, c.ValidateImageType("image/webp"))

	assert.Error(t, c.ValidateImageType("image/gif"))
	assert.Error(t, c.ValidateImageType("application/pdf"))
	assert.Error(t, c.ValidateImageType(""))
}

func TestValidateImageSize(t *testing.T) {
	c := &Client{}

	small := base64.StdEncoding.EncodeToString([]byte("tiny image"))
	assert.NoError(t, c.ValidateImageSize(small))

	// Data URI variant
	assert.NoError(t, c.ValidateImageSize("data:image/png;base64,"+small))

	// Over the 10MB limit
	big := base64.StdEncoding.EncodeToString(make([]byte, 11*1024*1024))
	assert.Error(t, c.ValidateImageSize(big))

	// Invalid base64
	assert.Error(t, c.ValidateImageSize("not-base64!!!"))

	// Malformed data URI
	assert.Error(t, c.ValidateImageSize("data:image/png;base64"))
}

func TestGenerateKey(t *testing.T) {
	c := &Client{}

	key := c.GenerateKey("user-123", "cover", "photo.png")
	assert.True(t, strings.HasPrefix(key, "pros/user-123/cover/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	// Missing extension falls back to .jpg
	key = c.GenerateKey("user-123", "profile", "photo")
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	// Keys are unique per call
	assert.NotEqual(t, c.GenerateKey("u", "work", "a.jpg"), c.GenerateKey("u", "work", "a.jpg"))
}
