package ports

import (
	"context"
	"io"
)

// FileStore guarda arquivos enviados e devolve a URL pública.
type FileStore interface {
	Save(ctx context.Context, dir, name string, r io.Reader) (url string, err error)
}
