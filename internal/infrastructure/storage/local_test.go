package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_GravaEDevolveURL(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStore(base, "/uploads/")

	url, err := s.Save(context.Background(), "compras", "PO01.pdf", strings.NewReader("conteudo"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/compras/PO01.pdf", url)

	data, err := os.ReadFile(filepath.Join(base, "compras", "PO01.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "conteudo", string(data))
}

func TestSave_SubstituiArquivo(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStore(base, "")

	_, err := s.Save(context.Background(), "compras", "PO01.pdf", strings.NewReader("v1"))
	require.NoError(t, err)
	_, err = s.Save(context.Background(), "compras", "PO01.pdf", strings.NewReader("v2"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "compras", "PO01.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	entries, err := os.ReadDir(filepath.Join(base, "compras"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "sem temporários sobrando")
}

func TestSave_NaoSaiDoDiretorioBase(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStore(base, "/uploads")

	url, err := s.Save(context.Background(), "../compras", "../../x.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/compras/x.png", url)
	assert.FileExists(t, filepath.Join(base, "compras", "x.png"))
}
