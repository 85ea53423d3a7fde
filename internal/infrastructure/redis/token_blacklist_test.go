package redis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_HashesToken(t *testing.T) {
	k := key("eyJhbGciOiJIUzI1NiJ9.payload.sig")
	assert.True(t, strings.HasPrefix(k, blacklistPrefix))
	assert.NotContains(t, k, "payload")
	assert.Len(t, k, len(blacklistPrefix)+64)
	assert.Equal(t, k, key("eyJhbGciOiJIUzI1NiJ9.payload.sig"))
	assert.NotEqual(t, k, key("otro"))
}
