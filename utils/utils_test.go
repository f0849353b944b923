package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret42")
	require.NoError(t, err)
	assert.NotEqual(t, "secret42", hash)

	ok, err := CheckPasswordHash("secret42", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPasswordHash("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPasswordHash_CorruptedHash(t *testing.T) {
	ok, err := CheckPasswordHash("secret42", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{NormalizeEmail("  Bob@Example.COM "), true},
		{"", false},
		{"no-at-sign", false},
		{"Alice <alice@example.com>", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidEmail(tc.email), tc.email)
	}
}
