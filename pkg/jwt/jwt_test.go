package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("segredo", "u-1", "admin", "erp", 5)
	require.NoError(t, err)

	claims, err := Parse("segredo", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "erp", claims.Issuer)
}

func TestParse_SegredoErrado(t *testing.T) {
	tok, err := Generate("segredo", "u-1", "vendedor", "erp", 5)
	require.NoError(t, err)

	_, err = Parse("outro", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate("segredo", "u-1", "vendedor", "erp", -1)
	require.NoError(t, err)

	_, err = Parse("segredo", tok)
	assert.Error(t, err)
}

func TestGenerate_SemSegredo(t *testing.T) {
	_, err := Generate("", "u-1", "admin", "erp", 5)
	assert.Error(t, err)
}

func TestInvite_RoundTrip(t *testing.T) {
	tok, err := GenerateInvite("segredo", "u-9", "erp", 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := ParseInvite("segredo", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-9", claims.UserID)
	assert.Equal(t, PurposeInvite, claims.Purpose)
	assert.Empty(t, claims.Role)
}

func TestInvite_NaoServeComoAcesso(t *testing.T) {
	tok, err := GenerateInvite("segredo", "u-9", "erp", time.Hour)
	require.NoError(t, err)

	_, err = Parse("segredo", tok)
	assert.Error(t, err)
}

func TestAcesso_NaoServeComoConvite(t *testing.T) {
	tok, err := Generate("segredo", "u-1", "admin", "erp", 5)
	require.NoError(t, err)

	_, err = ParseInvite("segredo", tok)
	assert.Error(t, err)
}

func TestInvite_Expirado(t *testing.T) {
	tok, err := GenerateInvite("segredo", "u-9", "erp", -time.Minute)
	require.NoError(t, err)

	_, err = ParseInvite("segredo", tok)
	assert.Error(t, err)
}
