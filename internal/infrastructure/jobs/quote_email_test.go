package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-comercial/internal/application/quotes"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/mail"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
)

type fakeDocs map[string]*quotes.Document

func (f fakeDocs) Document(_ context.Context, id string) (*quotes.Document, error) {
	if d, ok := f[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: orçamento não encontrado", domain.ErrNotFound)
}

type fakeRenderer struct{}

func (fakeRenderer) RenderQuote(context.Context, *quotes.Document) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testDoc() *quotes.Document {
	return &quotes.Document{
		ID:         "Q1",
		Code:       "700001",
		ClientName: "Maria Souza",
		Total:      decimal.RequireFromString("50.00"),
		ValidUntil: time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
		Lines: []entity.LineView{{
			LineItem: entity.LineItem{
				ProductID: "P1",
				Quantity:  decimal.NewFromInt(5),
				Unit:      entity.UnitPiece,
				UnitPrice: decimal.RequireFromString("10.00"),
				Subtotal:  decimal.RequireFromString("50.00"),
			},
			ProductName: "Cano PVC 25mm",
		}},
	}
}

func newHandler(sender *fakeSender) *QuoteEmailHandler {
	return NewQuoteEmailHandler(fakeDocs{"Q1": testDoc()}, fakeRenderer{}, sender, "Casa das Conexões", metrics.New(), zerolog.Nop())
}

func task(t *testing.T, p QuoteEmailPayload) *asynq.Task {
	t.Helper()
	tk, err := NewQuoteEmailTask(p)
	require.NoError(t, err)
	return tk
}

func TestQuoteEmail_EnviaComAnexo(t *testing.T) {
	sender := &fakeSender{}
	h := newHandler(sender)

	err := h.ProcessTask(context.Background(), task(t, QuoteEmailPayload{QuoteID: "Q1", To: "maria@example.com"}))
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "maria@example.com", msg.To)
	assert.Equal(t, "Casa das Conexões - Orçamento 700001", msg.Subject)
	assert.Contains(t, msg.HTML, "Maria Souza")
	assert.Contains(t, msg.HTML, "Cano PVC 25mm")
	assert.Contains(t, msg.HTML, "01/01/2099")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "orcamento-700001.pdf", msg.Attachments[0].Name)
	assert.Equal(t, []byte("%PDF-fake"), msg.Attachments[0].Data)
}

func TestQuoteEmail_PayloadInvalidoNaoRepete(t *testing.T) {
	h := newHandler(&fakeSender{})
	err := h.ProcessTask(context.Background(), asynq.NewTask(TaskQuoteEmail, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestQuoteEmail_OrcamentoRemovidoNaoRepete(t *testing.T) {
	h := newHandler(&fakeSender{})
	err := h.ProcessTask(context.Background(), task(t, QuoteEmailPayload{QuoteID: "nao-existe", To: "x@example.com"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuoteEmail_FalhaSMTPRepete(t *testing.T) {
	boom := errors.New("timeout")
	h := newHandler(&fakeSender{err: boom})
	err := h.ProcessTask(context.Background(), task(t, QuoteEmailPayload{QuoteID: "Q1", To: "x@example.com"}))
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestQuoteEmail_SMTPNaoConfiguradoNaoRepete(t *testing.T) {
	h := newHandler(&fakeSender{err: mail.ErrNotConfigured})
	err := h.ProcessTask(context.Background(), task(t, QuoteEmailPayload{QuoteID: "Q1", To: "x@example.com"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestClient_EnfileiraNaFilaPadrao(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.EnqueueQuoteEmail(context.Background(), "Q1", "maria@example.com"))

	pending, err := mr.List("asynq:{default}:pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestNewQuoteEmailTask_Payload(t *testing.T) {
	tk := task(t, QuoteEmailPayload{QuoteID: "Q1", To: "a@b.com"})
	assert.Equal(t, TaskQuoteEmail, tk.Type())

	var p QuoteEmailPayload
	require.NoError(t, json.Unmarshal(tk.Payload(), &p))
	assert.Equal(t, "Q1", p.QuoteID)
}
