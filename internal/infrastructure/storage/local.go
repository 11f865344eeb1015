// Package storage guarda arquivos enviados (notas fiscais de compra) em disco.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jhoicas/erp-comercial/internal/application/ports"
)

var _ ports.FileStore = (*LocalStore)(nil)

// LocalStore grava em baseDir e devolve URLs sob publicURL (servido
// estaticamente pela API).
type LocalStore struct {
	baseDir   string
	publicURL string
}

// NewLocalStore cria o store. publicURL padrão é "/uploads".
func NewLocalStore(baseDir, publicURL string) *LocalStore {
	if publicURL == "" {
		publicURL = "/uploads"
	}
	return &LocalStore{baseDir: baseDir, publicURL: strings.TrimRight(publicURL, "/")}
}

// BaseDir diretório raiz dos arquivos.
func (s *LocalStore) BaseDir() string { return s.baseDir }

// Save grava r em <baseDir>/<dir>/<name>, substituindo arquivo anterior.
func (s *LocalStore) Save(ctx context.Context, dir, name string, r io.Reader) (string, error) {
	dir = filepath.Base(filepath.Clean("/" + dir))
	name = filepath.Base(filepath.Clean("/" + name))
	if dir == "/" || name == "/" || name == "." {
		return "", fmt.Errorf("storage: nome de arquivo inválido")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	destDir := filepath.Join(s.baseDir, dir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: criar diretório: %w", err)
	}

	// escreve num temporário e renomeia para não deixar arquivo pela metade
	tmp, err := os.CreateTemp(destDir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("storage: criar arquivo: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: gravar arquivo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: fechar arquivo: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(destDir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: mover arquivo: %w", err)
	}
	return path.Join(s.publicURL, dir, name), nil
}
