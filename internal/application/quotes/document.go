package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Document reúne o que o PDF e o e-mail do orçamento exibem.
type Document struct {
	ID           string
	Code         string
	ClientName   string
	ClientEmail  string
	LocationName string
	Status       string
	Notes        string
	ValidUntil   time.Time
	IssuedAt     time.Time
	Total        decimal.Decimal
	Lines        []entity.LineView
}

// DisplayCode código de exibição de uma linha do documento.
func DisplayCode(l entity.LineView) string {
	return entity.DisplayCode(l.GroupCode, l.SubgroupCode, l.ProductCode)
}

var errNoRenderer = errors.New("gerador de PDF não configurado")

// PDFRenderer gera o PDF do orçamento.
type PDFRenderer interface {
	RenderQuote(ctx context.Context, doc *Document) ([]byte, error)
}

// Document carrega cabeçalho e itens em paralelo.
func (uc *UseCase) Document(ctx context.Context, id string) (*Document, error) {
	var (
		view  *entity.QuoteView
		lines []entity.LineView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := uc.repo.GetView(gctx, id)
		view = v
		return err
	})
	g.Go(func() error {
		l, err := uc.repo.LineViews(gctx, id)
		lines = l
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("%w: orçamento não encontrado", domain.ErrNotFound)
	}
	return &Document{
		ID:           view.ID,
		Code:         view.Code,
		ClientName:   view.ClientName,
		ClientEmail:  view.ClientEmail,
		LocationName: view.LocationName,
		Status:       view.EffectiveStatus(uc.now()),
		Notes:        view.Notes,
		ValidUntil:   view.ValidUntil,
		IssuedAt:     view.CreatedAt,
		Total:        view.Total,
		Lines:        lines,
	}, nil
}

// PDF devolve o arquivo e o nome sugerido (orcamento-<codigo>.pdf).
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.renderer == nil {
		return nil, "", errNoRenderer
	}
	doc, err := uc.Document(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.renderer.RenderQuote(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("gerar PDF do orçamento: %w", err)
	}
	return data, "orcamento-" + doc.Code + ".pdf", nil
}

// SendEmail agenda o envio do orçamento. Sem destinatário explícito usa o
// e-mail do cliente.
func (uc *UseCase) SendEmail(ctx context.Context, id, to string) error {
	if uc.mailer == nil {
		return ports.ErrJobsDisabled
	}
	v, err := uc.repo.GetView(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%w: orçamento não encontrado", domain.ErrNotFound)
	}
	to = strings.TrimSpace(to)
	if to == "" {
		to = v.ClientEmail
	}
	if to == "" {
		return fmt.Errorf("%w: cliente sem e-mail cadastrado", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("%w: e-mail inválido", domain.ErrInvalidInput)
	}
	if err := uc.mailer.EnqueueQuoteEmail(ctx, id, to); err != nil {
		return err
	}
	uc.log.Info().Str("orcamento_id", id).Str("to", to).Msg("envio de orçamento agendado")
	return nil
}
