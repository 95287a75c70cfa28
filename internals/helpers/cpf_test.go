package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCPF(t *testing.T) {
	assert.Equal(t, "12345678909", CanonicalCPF("123.456.789-09"))
	assert.Equal(t, "12345678909", CanonicalCPF("12345678909"))
	assert.Equal(t, "12345678909", CanonicalCPF(" 123 456 789 09 "))
	assert.Equal(t, "", CanonicalCPF("sem dígitos"))
}

func TestValidCPF(t *testing.T) {
	// dígitos verificadores corretos
	assert.True(t, ValidCPF("12345678909"))
	assert.True(t, ValidCPF("123.456.789-09"))

	assert.False(t, ValidCPF("12345678900"))
	assert.False(t, ValidCPF("1234567890"))
	assert.False(t, ValidCPF("123456789091"))
	// sequência repetida tem verificador "válido" mas é recusada
	assert.False(t, ValidCPF("00000000000"))
	assert.False(t, ValidCPF("11111111111"))
	assert.False(t, ValidCPF(""))
}

func TestNewOpaqueToken(t *testing.T) {
	a, err := NewOpaqueToken()
	assert.NoError(t, err)
	assert.Len(t, a, 96) // 48 bytes em hex

	b, err := NewOpaqueToken()
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashOpaqueToken(t *testing.T) {
	h1 := HashOpaqueToken("segredo", "token")
	h2 := HashOpaqueToken("segredo", "token")
	assert.Equal(t, h1, h2)

	assert.NotEqual(t, h1, HashOpaqueToken("outro-segredo", "token"))
	assert.NotEqual(t, h1, HashOpaqueToken("segredo", "outro-token"))
	assert.Len(t, h1, 64) // sha256 em hex
}
