// Package codegen gera os códigos numéricos de 6 dígitos exibidos em compras,
// orçamentos e vendas. Cada entidade usa o próprio namespace (coluna codigo).
package codegen

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"

	"github.com/jhoicas/erp-comercial/internal/domain"
)

const (
	// MinCode e MaxCode delimitam o intervalo fechado dos códigos.
	MinCode = 100000
	MaxCode = 999999
	// MaxAttempts é o número de candidatos consultados antes de desistir.
	MaxAttempts = 20
)

// ExistsFunc informa se o código já está em uso na tabela alvo.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator sorteia códigos uniformemente em [MinCode, MaxCode].
type Generator struct {
	intN func(n int) int
}

// New devolve um gerador baseado em math/rand/v2.
func New() *Generator {
	return &Generator{intN: rand.IntN}
}

// NewWithSource permite injetar a fonte de aleatoriedade (testes).
func NewWithSource(intN func(n int) int) *Generator {
	return &Generator{intN: intN}
}

// Candidate sorteia um código sem consultar a base.
func (g *Generator) Candidate() string {
	return strconv.Itoa(MinCode + g.intN(MaxCode-MinCode+1))
}

// Next consulta até MaxAttempts candidatos e devolve o primeiro livre. Se todos
// colidirem devolve o último; a constraint UNIQUE da tabela decide no INSERT.
func (g *Generator) Next(ctx context.Context, exists ExistsFunc) (string, error) {
	var code string
	for i := 0; i < MaxAttempts; i++ {
		code = g.Candidate()
		used, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !used {
			return code, nil
		}
	}
	return code, nil
}

// InsertRetries é quantas vezes um fluxo repete a transação quando o INSERT
// esbarra na constraint UNIQUE do código.
const InsertRetries = 3

// RetryOnConflict executa fn até InsertRetries vezes enquanto o erro for
// domain.ErrCodeConflict.
func RetryOnConflict(fn func() error) error {
	var err error
	for i := 0; i < InsertRetries; i++ {
		err = fn()
		if !errors.Is(err, domain.ErrCodeConflict) {
			return err
		}
	}
	return err
}
