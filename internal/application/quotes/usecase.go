// Package quotes implementa o ciclo de vida dos orçamentos: cadastro, aprovação,
// conversão em venda e o documento enviado ao cliente.
package quotes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/application/sales"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/codegen"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// UseCase orquestra orçamentos. renderer e mailer podem ser nil.
type UseCase struct {
	tx       repository.TxRunner
	repo     repository.QuoteRepository
	cache    ports.Cache
	renderer PDFRenderer
	mailer   ports.QuoteMailer
	codes    *codegen.Generator
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase constrói o caso de uso de orçamentos.
func NewUseCase(
	tx repository.TxRunner,
	repo repository.QuoteRepository,
	cache ports.Cache,
	renderer PDFRenderer,
	mailer ports.QuoteMailer,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		tx:       tx,
		repo:     repo,
		cache:    cache,
		renderer: renderer,
		mailer:   mailer,
		codes:    codegen.New(),
		log:      log,
		now:      time.Now,
	}
}

// WithClock troca o relógio (testes).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

type parsedQuote struct {
	header entity.Quote
	items  []entity.LineItem
}

func parseQuote(in dto.OrcamentoRequest) (parsedQuote, error) {
	if strings.TrimSpace(in.ClientID) == "" || strings.TrimSpace(in.LocationID) == "" {
		return parsedQuote{}, fmt.Errorf("%w: cliente e local são obrigatórios", domain.ErrInvalidInput)
	}
	validUntil, err := time.Parse(dateLayout, strings.TrimSpace(in.ValidUntil))
	if err != nil {
		return parsedQuote{}, fmt.Errorf("%w: validade deve estar no formato AAAA-MM-DD", domain.ErrInvalidInput)
	}
	items, err := sales.ParseLines(in.Items)
	if err != nil {
		return parsedQuote{}, err
	}
	return parsedQuote{
		header: entity.Quote{
			ClientID:   in.ClientID,
			LocationID: in.LocationID,
			Total:      entity.SumSubtotals(items),
			Notes:      in.Notes,
			ValidUntil: validUntil,
			HasInvoice: in.HasInvoice,
		},
		items: items,
	}, nil
}

func quoteLines(quoteID string, items []entity.LineItem, now time.Time) []entity.QuoteLine {
	out := make([]entity.QuoteLine, 0, len(items))
	for _, it := range items {
		out = append(out, entity.QuoteLine{ID: uuid.NewString(), QuoteID: quoteID, LineItem: it, CreatedAt: now})
	}
	return out
}

// Create registra um orçamento pendente com seus itens.
func (uc *UseCase) Create(ctx context.Context, in dto.OrcamentoRequest) (*dto.CodeResponse, error) {
	p, err := parseQuote(in)
	if err != nil {
		return nil, err
	}
	q := p.header
	err = codegen.RetryOnConflict(func() error {
		now := uc.now()
		q.ID = uuid.NewString()
		q.Status = entity.QuotePending
		q.CreatedAt, q.UpdatedAt = now, now
		return uc.tx.Run(ctx, func(r repository.TxRepos) error {
			code, err := uc.codes.Next(ctx, r.Quotes.CodeExists)
			if err != nil {
				return err
			}
			q.Code = code
			if err := r.Quotes.Create(ctx, &q); err != nil {
				return err
			}
			return r.Quotes.ReplaceLines(ctx, q.ID, quoteLines(q.ID, p.items, now))
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("orcamento_id", q.ID).Str("codigo", q.Code).Msg("orçamento criado")
	return &dto.CodeResponse{ID: q.ID, Codigo: q.Code}, nil
}

// Update substitui cabeçalho e itens e recalcula o total. Só orçamentos pendentes.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.OrcamentoRequest) (*dto.OrcamentoResponse, error) {
	p, err := parseQuote(in)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		q, err := lockQuote(ctx, r, id)
		if err != nil {
			return err
		}
		if !q.CanEdit() {
			return fmt.Errorf("%w: apenas orçamentos pendentes podem ser editados", domain.ErrInvalidState)
		}
		now := uc.now()
		q.ClientID, q.LocationID, q.Notes = p.header.ClientID, p.header.LocationID, p.header.Notes
		q.ValidUntil, q.HasInvoice, q.Total = p.header.ValidUntil, p.header.HasInvoice, p.header.Total
		q.UpdatedAt = now
		if err := r.Quotes.Update(ctx, q); err != nil {
			return err
		}
		return r.Quotes.ReplaceLines(ctx, q.ID, quoteLines(q.ID, p.items, now))
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete exclui orçamentos pendentes ou recusados; os itens vão junto.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r repository.TxRepos) error {
		q, err := lockQuote(ctx, r, id)
		if err != nil {
			return err
		}
		if !q.CanDelete() {
			return fmt.Errorf("%w: orçamentos aprovados ou convertidos não podem ser excluídos", domain.ErrInvalidState)
		}
		return r.Quotes.Delete(ctx, id)
	})
}

// Get devolve o orçamento com itens e status efetivo (vencido é derivado).
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OrcamentoResponse, error) {
	v, err := uc.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: orçamento não encontrado", domain.ErrNotFound)
	}
	lines, err := uc.repo.LineViews(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toOrcamentoResponse(*v, uc.now())
	out.Items = make([]dto.LineResponse, 0, len(lines))
	for _, l := range lines {
		out.Items = append(out.Items, sales.ToLineResponse(l))
	}
	return &out, nil
}

// List lista orçamentos. Os filtros "pendente" e "vencido" consideram a validade.
func (uc *UseCase) List(ctx context.Context, in dto.OrcamentoListRequest) ([]dto.OrcamentoResponse, error) {
	f := repository.QuoteFilter{Status: in.Status, ClientID: in.ClientID, LocationID: in.LocationID}
	if f.Status == entity.QuoteExpired {
		f.Status = entity.QuotePending
	}
	views, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.OrcamentoResponse, 0, len(views))
	for _, v := range views {
		r := toOrcamentoResponse(v, now)
		if in.Status != "" && r.Status != in.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Approve move pendente -> aprovado.
func (uc *UseCase) Approve(ctx context.Context, id string) error {
	return uc.transition(ctx, id, "orçamento aprovado", func(q *entity.Quote, now time.Time) error {
		return q.Approve(now)
	})
}

// Reject move pendente -> recusado.
func (uc *UseCase) Reject(ctx context.Context, id string) error {
	return uc.transition(ctx, id, "orçamento recusado", func(q *entity.Quote, now time.Time) error {
		return q.Reject(now)
	})
}

func (uc *UseCase) transition(ctx context.Context, id, event string, apply func(*entity.Quote, time.Time) error) error {
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		q, err := lockQuote(ctx, r, id)
		if err != nil {
			return err
		}
		if err := apply(q, uc.now()); err != nil {
			return err
		}
		return r.Quotes.UpdateStatus(ctx, q)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("orcamento_id", id).Msg(event)
	return nil
}

// Convert transforma um orçamento aprovado e dentro da validade em venda. Tudo
// acontece em uma transação: conferência de saldo de todos os itens, criação da
// venda com itens idênticos, baixa de estoque e marcação como convertido.
func (uc *UseCase) Convert(ctx context.Context, id string) (*dto.CodeResponse, error) {
	var sale entity.Sale
	err := codegen.RetryOnConflict(func() error {
		return uc.tx.Run(ctx, func(r repository.TxRepos) error {
			q, err := lockQuote(ctx, r, id)
			if err != nil {
				return err
			}
			now := uc.now()
			if err := q.CheckConvertible(now); err != nil {
				return err
			}
			lines, err := r.Quotes.Lines(ctx, q.ID)
			if err != nil {
				return err
			}
			items := make([]entity.LineItem, 0, len(lines))
			for _, l := range lines {
				items = append(items, l.LineItem)
			}
			sale = entity.Sale{
				ClientID:   q.ClientID,
				LocationID: q.LocationID,
				Total:      q.Total,
				Notes:      q.Notes,
				HasInvoice: q.HasInvoice,
				Status:     entity.SaleFinalized,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := sales.Record(ctx, r, uc.codes, &sale, items); err != nil {
				return err
			}
			if err := q.MarkConverted(sale.ID, now); err != nil {
				return err
			}
			return r.Quotes.UpdateStatus(ctx, q)
		})
	})
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Bump(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("invalidar cache do PDV")
		}
	}
	uc.log.Info().
		Str("orcamento_id", id).
		Str("venda_id", sale.ID).
		Str("venda_codigo", sale.Code).
		Msg("orçamento convertido")
	return &dto.CodeResponse{ID: sale.ID, Codigo: sale.Code}, nil
}

func lockQuote(ctx context.Context, r repository.TxRepos, id string) (*entity.Quote, error) {
	q, err := r.Quotes.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: orçamento não encontrado", domain.ErrNotFound)
	}
	return q, nil
}

func toOrcamentoResponse(v entity.QuoteView, now time.Time) dto.OrcamentoResponse {
	return dto.OrcamentoResponse{
		ID:           v.ID,
		Codigo:       v.Code,
		ClientID:     v.ClientID,
		ClientName:   v.ClientName,
		LocationID:   v.LocationID,
		LocationName: v.LocationName,
		Total:        v.Total.StringFixed(domain.MoneyScale),
		Notes:        v.Notes,
		ValidUntil:   v.ValidUntil.Format(dateLayout),
		HasInvoice:   v.HasInvoice,
		Status:       v.EffectiveStatus(now),
		VendaID:      v.SaleID,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
