package ports

import "context"

// Cache é um cache versionado de leituras em JSON. Bump invalida todas as
// chaves de uma vez trocando a versão.
type Cache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
	Bump(ctx context.Context) error
}
