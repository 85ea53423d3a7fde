package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/pkg/jwt"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "sales_manager", "cotizador", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "sales_manager", role)

	claims, err := jwt.ParseClaims("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "cotizador", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "admin", "cotizador", 5)
	require.NoError(t, err)
	_, _, err = jwt.Parse("other", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := jwt.Generate("secret", "u-1", "admin", "cotizador", -1)
	require.NoError(t, err)
	_, _, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "admin", "cotizador", 5)
	assert.Error(t, err)
}
