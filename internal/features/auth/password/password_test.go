package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	encoded, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, encoded, "$argon2id$")

	assert.NoError(t, Verify("correct horse battery staple", encoded))
	assert.ErrorIs(t, Verify("wrong password", encoded), ErrMismatch)
}

func TestHashUniqueSalt(t *testing.T) {
	a, err := Hash("secret-password")
	require.NoError(t, err)
	b, err := Hash("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyMalformed(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=3,p=2$abc$def",
		"$argon2id$v=19$m=65536$missing-parts",
	} {
		err := Verify("anything", encoded)
		require.Error(t, err, "hash %q", encoded)
		assert.NotErrorIs(t, err, ErrMismatch)
	}
}
