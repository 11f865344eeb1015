package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/erp-comercial/internal/application/ports"
)

var (
	_ ports.QuoteMailer = (*Client)(nil)
	_ ports.UserInviter = (*Client)(nil)
)

// Client enfileira tarefas no Redis.
type Client struct {
	client *asynq.Client
}

// NewClient cria o cliente asynq.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueQuoteEmail agenda o envio do orçamento quoteID para to.
func (c *Client) EnqueueQuoteEmail(ctx context.Context, quoteID, to string) error {
	task, err := NewQuoteEmailTask(QuoteEmailPayload{QuoteID: quoteID, To: to})
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
		return fmt.Errorf("jobs: enfileirar %s: %w", TaskQuoteEmail, err)
	}
	return nil
}

// EnqueueUserInvite agenda o e-mail de convite.
func (c *Client) EnqueueUserInvite(ctx context.Context, inv ports.UserInvite) error {
	task, err := NewUserInviteTask(UserInvitePayload{UserID: inv.UserID, Email: inv.Email, Name: inv.Name, Token: inv.Token})
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
		return fmt.Errorf("jobs: enfileirar %s: %w", TaskUserInvite, err)
	}
	return nil
}

// Close libera a conexão.
func (c *Client) Close() error {
	return c.client.Close()
}
