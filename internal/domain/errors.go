package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidState       = errors.New("transição de status não permitida")
	ErrInsufficientStock  = errors.New("estoque insuficiente")
	ErrQuoteExpired       = errors.New("orçamento vencido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrCodeConflict       = errors.New("código já utilizado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrEmailAlreadyExists = errors.New("o email já está cadastrado")
)

// StockShortage descreve a falta de estoque de um produto em um local.
// errors.Is(err, ErrInsufficientStock) é verdadeiro para este tipo.
type StockShortage struct {
	ProductID  string
	LocationID string
	Available  string
	Requested  string
}

func (e *StockShortage) Error() string {
	if e.Available == "" {
		return fmt.Sprintf("produto %s sem estoque disponível no local selecionado", e.ProductID)
	}
	return fmt.Sprintf("estoque insuficiente para o produto %s: disponível %s, solicitado %s",
		e.ProductID, e.Available, e.Requested)
}

func (e *StockShortage) Unwrap() error { return ErrInsufficientStock }
