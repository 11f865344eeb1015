package codegen_test

import (
	"context"
	"regexp"
	"strconv"
	"testing"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/codegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

func TestNext_MilCodigosEmTabelaVazia(t *testing.T) {
	g := codegen.New()
	empty := func(context.Context, string) (bool, error) { return false, nil }

	for i := 0; i < 1000; i++ {
		code, err := g.Next(context.Background(), empty)
		require.NoError(t, err)
		require.Regexp(t, codePattern, code)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, codegen.MinCode)
		assert.LessOrEqual(t, n, codegen.MaxCode)
	}
}

func TestCandidate_Limites(t *testing.T) {
	low := codegen.NewWithSource(func(int) int { return 0 })
	assert.Equal(t, "100000", low.Candidate())

	high := codegen.NewWithSource(func(n int) int { return n - 1 })
	assert.Equal(t, "999999", high.Candidate())
}

func TestNext_PulaCodigosEmUso(t *testing.T) {
	seq := []int{0, 0, 1}
	i := 0
	g := codegen.NewWithSource(func(int) int {
		v := seq[i%len(seq)]
		i++
		return v
	})
	used := map[string]bool{"100000": true}
	code, err := g.Next(context.Background(), func(_ context.Context, c string) (bool, error) {
		return used[c], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "100001", code)
}

func TestNext_DevolveUltimoCandidatoQuandoTudoColide(t *testing.T) {
	g := codegen.NewWithSource(func(int) int { return 42 })
	calls := 0
	code, err := g.Next(context.Background(), func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "100042", code)
	assert.Equal(t, codegen.MaxAttempts, calls)
}

func TestRetryOnConflict_RepeteAteTresVezes(t *testing.T) {
	calls := 0
	err := codegen.RetryOnConflict(func() error {
		calls++
		return domain.ErrCodeConflict
	})
	assert.ErrorIs(t, err, domain.ErrCodeConflict)
	assert.Equal(t, codegen.InsertRetries, calls)
}

func TestRetryOnConflict_ParaNoPrimeiroSucesso(t *testing.T) {
	calls := 0
	err := codegen.RetryOnConflict(func() error {
		calls++
		if calls == 1 {
			return domain.ErrCodeConflict
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryOnConflict_NaoRepeteOutrosErros(t *testing.T) {
	calls := 0
	err := codegen.RetryOnConflict(func() error {
		calls++
		return domain.ErrInvalidState
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 1, calls)
}
