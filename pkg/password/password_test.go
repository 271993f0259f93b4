package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hashed, err := HashPassword("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hashed)

	assert.True(t, CheckPassword(hashed, "Secret123"))
	assert.False(t, CheckPassword(hashed, "secret123"))
	assert.False(t, CheckPassword("not a hash", "Secret123"))
}
