package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Escalas das colunas NUMERIC: quantidades (15,4) e valores monetários (15,2).
const (
	QuantityScale = 4
	MoneyScale    = 2

	maxDecimalLen = 32
)

// Limites exclusivos da parte inteira de cada coluna.
var (
	maxQuantity = decimal.New(1, 15-QuantityScale)
	maxMoney    = decimal.New(1, 15-MoneyScale)
)

// ParseDecimal converte uma string decimal ("10", "2.5", "2,5") em decimal.Decimal.
// Strings vazias, não numéricas, em notação científica ou longas demais retornam ErrInvalidInput.
func ParseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %s é obrigatório", ErrInvalidInput, field)
	}
	if len(s) > maxDecimalLen || strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %s deve ser numérico", ErrInvalidInput, field)
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s deve ser numérico", ErrInvalidInput, field)
	}
	return d, nil
}

// ParseQuantity exige quantidade estritamente positiva depois de arredondada a 4 casas.
func ParseQuantity(field, s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(field, s)
	if err != nil {
		return decimal.Zero, err
	}
	d = d.Round(QuantityScale)
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s deve ser maior que zero", ErrInvalidInput, field)
	}
	return checkMax(field, d, maxQuantity)
}

// ParseStockLevel aceita saldo >= 0 arredondado a 4 casas (edição manual de estoque).
func ParseStockLevel(field, s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(field, s)
	if err != nil {
		return decimal.Zero, err
	}
	d = d.Round(QuantityScale)
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s não pode ser negativo", ErrInvalidInput, field)
	}
	return checkMax(field, d, maxQuantity)
}

// ParseMoney exige valor maior ou igual a zero, arredondado a 2 casas.
func ParseMoney(field, s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(field, s)
	if err != nil {
		return decimal.Zero, err
	}
	d = d.Round(MoneyScale)
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s não pode ser negativo", ErrInvalidInput, field)
	}
	return checkMax(field, d, maxMoney)
}

func checkMax(field string, d, limit decimal.Decimal) (decimal.Decimal, error) {
	if d.Abs().GreaterThanOrEqual(limit) {
		return decimal.Zero, fmt.Errorf("%w: %s excede o limite permitido", ErrInvalidInput, field)
	}
	return d, nil
}

// CheckMoneyLimit rejeita valores que não cabem em NUMERIC(15,2), como a soma dos subtotais.
func CheckMoneyLimit(field string, d decimal.Decimal) error {
	_, err := checkMax(field, d, maxMoney)
	return err
}
