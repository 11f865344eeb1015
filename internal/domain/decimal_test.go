package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal_AceitaVirgula(t *testing.T) {
	d, err := ParseDecimal("valor", " 2,5 ")
	require.NoError(t, err)
	assert.Equal(t, "2.5", d.String())
}

func TestParseDecimal_RejeitaNotacaoCientificaETamanho(t *testing.T) {
	for _, s := range []string{"1e3", "1E3", "1e3000000", "2.5e-1", "123456789012345678901234567890123"} {
		_, err := ParseDecimal("valor", s)
		assert.ErrorIs(t, err, ErrInvalidInput, "entrada %q", s)
	}
}

func TestParseQuantity_ArredondaAntesDeValidar(t *testing.T) {
	_, err := ParseQuantity("quantidade", "0.00001")
	assert.ErrorIs(t, err, ErrInvalidInput)

	d, err := ParseQuantity("quantidade", "0.00005")
	require.NoError(t, err)
	assert.Equal(t, "0.0001", d.String())
}

func TestParseQuantity_LimiteDaColuna(t *testing.T) {
	d, err := ParseQuantity("quantidade", "99999999999.9999")
	require.NoError(t, err)
	assert.Equal(t, "99999999999.9999", d.String())

	_, err = ParseQuantity("quantidade", "100000000000")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseStockLevel(t *testing.T) {
	d, err := ParseStockLevel("quantidade", "0")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseStockLevel("quantidade", "-0.5")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseStockLevel("quantidade", "1000000000000")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseMoney(t *testing.T) {
	d, err := ParseMoney("preço", "10,005")
	require.NoError(t, err)
	assert.Equal(t, "10.01", d.StringFixed(MoneyScale))

	_, err = ParseMoney("preço", "-1")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseMoney("preço", "10000000000000")
	assert.ErrorIs(t, err, ErrInvalidInput)

	d, err = ParseMoney("preço", "9999999999999.99")
	require.NoError(t, err)
	assert.Equal(t, "9999999999999.99", d.String())
}
