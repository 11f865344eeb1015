package ports

import (
	"context"
	"errors"
)

// ErrJobsDisabled indica que não há fila configurada (REDIS_ADDR vazio).
var ErrJobsDisabled = errors.New("fila de tarefas indisponível")

// QuoteMailer agenda o envio de um orçamento por e-mail.
type QuoteMailer interface {
	EnqueueQuoteEmail(ctx context.Context, quoteID, to string) error
}

// UserInvite dados do e-mail de convite. Token é o JWT de convite do link.
type UserInvite struct {
	UserID string
	Email  string
	Name   string
	Token  string
}

// UserInviter agenda o envio do convite para o usuário definir a senha.
type UserInviter interface {
	EnqueueUserInvite(ctx context.Context, inv UserInvite) error
}
