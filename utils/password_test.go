package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordAndVerify(t *testing.T) {
	hash, err := HashPassword("admin123")
	assert.NoError(t, err)
	assert.NotEqual(t, "admin123", hash, "Hash must not be the plaintext")

	assert.True(t, VerifyPassword(hash, "admin123"), "Correct password should verify")
	assert.False(t, VerifyPassword(hash, "admin124"), "Wrong password should not verify")
	assert.False(t, VerifyPassword(hash, ""), "Empty password should not verify")
}

func TestVerifyPasswordAgainstInvalidHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "admin123"))
	assert.False(t, VerifyPassword("", "admin123"))
}
