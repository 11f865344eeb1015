package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-comercial/internal/application/quotes"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/mail"
	"github.com/jhoicas/erp-comercial/internal/infrastructure/metrics"
	"github.com/jhoicas/erp-comercial/pkg/money"
)

// QuoteDocuments carrega os dados do orçamento (quotes.UseCase).
type QuoteDocuments interface {
	Document(ctx context.Context, id string) (*quotes.Document, error)
}

// MailSender envia a mensagem montada (mail.Sender).
type MailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// QuoteEmailHandler processa TaskQuoteEmail.
type QuoteEmailHandler struct {
	docs     QuoteDocuments
	renderer quotes.PDFRenderer
	sender   MailSender
	store    string
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewQuoteEmailHandler cria o handler. storeName aparece no assunto e no corpo.
func NewQuoteEmailHandler(docs QuoteDocuments, renderer quotes.PDFRenderer, sender MailSender, storeName string, m *metrics.Metrics, log zerolog.Logger) *QuoteEmailHandler {
	return &QuoteEmailHandler{docs: docs, renderer: renderer, sender: sender, store: storeName, metrics: m, log: log}
}

// ProcessTask implementa asynq.Handler.
func (h *QuoteEmailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	return h.metrics.Track(TaskQuoteEmail).End(h.process(ctx, t))
}

func (h *QuoteEmailHandler) process(ctx context.Context, t *asynq.Task) error {
	var p QuoteEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil || p.QuoteID == "" || p.To == "" {
		h.log.Error().Bytes("payload", t.Payload()).Msg("payload de e-mail de orçamento inválido")
		return fmt.Errorf("payload inválido: %w", asynq.SkipRetry)
	}

	doc, err := h.docs.Document(ctx, p.QuoteID)
	if errors.Is(err, domain.ErrNotFound) {
		h.log.Warn().Str("orcamento_id", p.QuoteID).Msg("orçamento removido antes do envio")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err != nil {
		return err
	}

	pdf, err := h.renderer.RenderQuote(ctx, doc)
	if err != nil {
		return err
	}
	body, err := h.body(doc)
	if err != nil {
		return err
	}

	err = h.sender.Send(ctx, mail.Message{
		To:      p.To,
		Subject: fmt.Sprintf("%s - Orçamento %s", h.store, doc.Code),
		HTML:    body,
		Attachments: []mail.Attachment{
			{Name: "orcamento-" + doc.Code + ".pdf", ContentType: "application/pdf", Data: pdf},
		},
	})
	if errors.Is(err, mail.ErrNotConfigured) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err != nil {
		return err
	}
	h.log.Info().Str("orcamento_id", doc.ID).Str("codigo", doc.Code).Str("to", p.To).Msg("orçamento enviado por e-mail")
	return nil
}

var bodyTemplate = template.Must(template.New("orcamento").Parse(`<p>Olá, {{.Client}}.</p>
<p>Segue em anexo o orçamento <strong>{{.Code}}</strong> da {{.Store}}, no valor total de <strong>{{.Total}}</strong>.</p>
<table cellpadding="4" cellspacing="0" border="1">
<tr><th>Produto</th><th>Qtd.</th><th>Subtotal</th></tr>
{{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Qty}} {{.Unit}}</td><td>{{.Subtotal}}</td></tr>
{{end}}</table>
<p>Válido até {{.ValidUntil}}.</p>
`))

type bodyLine struct {
	Name, Qty, Unit, Subtotal string
}

func (h *QuoteEmailHandler) body(doc *quotes.Document) (string, error) {
	lines := make([]bodyLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, bodyLine{
			Name:     l.ProductName,
			Qty:      money.Quantity(l.Quantity),
			Unit:     l.Unit,
			Subtotal: money.BRL(l.Subtotal),
		})
	}
	client := doc.ClientName
	if client == "" {
		client = "cliente"
	}
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct {
		Client, Code, Store, Total, ValidUntil string
		Lines                                  []bodyLine
	}{client, doc.Code, h.store, money.BRL(doc.Total), money.Date(doc.ValidUntil), lines})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
