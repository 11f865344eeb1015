package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/codegen"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/rs/zerolog"
)

// UseCase PDV: finalização de vendas e consultas.
type UseCase struct {
	tx    repository.TxRunner
	repo  repository.SaleRepository
	cache ports.Cache
	codes *codegen.Generator
	log   zerolog.Logger
	now   func() time.Time
}

// NewUseCase constrói o caso de uso de vendas. cache pode ser nil.
func NewUseCase(tx repository.TxRunner, repo repository.SaleRepository, cache ports.Cache, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, repo: repo, cache: cache, codes: codegen.New(), log: log, now: time.Now}
}

// WithClock troca o relógio (testes).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Record grava a venda e baixa o estoque dentro da transação de r. O saldo de
// todas as linhas é conferido antes de qualquer escrita. Preenche ID e Code.
func Record(ctx context.Context, r repository.TxRepos, codes *codegen.Generator, s *entity.Sale, items []entity.LineItem) error {
	if err := CheckStock(ctx, r.Stock, s.LocationID, items); err != nil {
		return err
	}
	code, err := codes.Next(ctx, r.Sales.CodeExists)
	if err != nil {
		return err
	}
	s.ID = uuid.NewString()
	s.Code = code
	lines := make([]entity.SaleLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, entity.SaleLine{ID: uuid.NewString(), SaleID: s.ID, LineItem: it, CreatedAt: s.CreatedAt})
	}
	if err := r.Sales.Create(ctx, s, lines); err != nil {
		return err
	}
	return Deduct(ctx, r.Stock, s.LocationID, items)
}

// Checkout finaliza uma venda do PDV com a mesma conferência de saldo da
// conversão de orçamentos.
func (uc *UseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CodeResponse, error) {
	if strings.TrimSpace(in.LocationID) == "" {
		return nil, fmt.Errorf("%w: local é obrigatório", domain.ErrInvalidInput)
	}
	items, err := ParseLines(in.Items)
	if err != nil {
		return nil, err
	}

	var sale entity.Sale
	err = codegen.RetryOnConflict(func() error {
		now := uc.now()
		sale = entity.Sale{
			ClientID:   in.ClientID,
			LocationID: in.LocationID,
			Total:      entity.SumSubtotals(items),
			Notes:      in.Notes,
			HasInvoice: in.HasInvoice,
			Status:     entity.SaleFinalized,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return uc.tx.Run(ctx, func(r repository.TxRepos) error {
			return Record(ctx, r, uc.codes, &sale, items)
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
		Str("venda_id", sale.ID).
		Str("codigo", sale.Code).
		Str("location_id", sale.LocationID).
		Str("total", sale.Total.StringFixed(domain.MoneyScale)).
		Msg("venda finalizada")
	return &dto.CodeResponse{ID: sale.ID, Codigo: sale.Code}, nil
}

// Get devolve a venda com os itens.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.VendaResponse, error) {
	v, err := uc.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: venda não encontrada", domain.ErrNotFound)
	}
	lines, err := uc.repo.LineViews(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toVendaResponse(*v)
	out.Items = toLineResponses(lines)
	return &out, nil
}

// List lista vendas, mais recentes primeiro.
func (uc *UseCase) List(ctx context.Context, in dto.VendaListRequest) ([]dto.VendaResponse, error) {
	views, err := uc.repo.List(ctx, repository.SaleFilter{LocationID: in.LocationID, ClientID: in.ClientID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendaResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toVendaResponse(v))
	}
	return out, nil
}

func toVendaResponse(v entity.SaleView) dto.VendaResponse {
	return dto.VendaResponse{
		ID:           v.ID,
		Codigo:       v.Code,
		ClientID:     v.ClientID,
		ClientName:   v.ClientName,
		LocationID:   v.LocationID,
		LocationName: v.LocationName,
		Total:        v.Total.StringFixed(domain.MoneyScale),
		Notes:        v.Notes,
		HasInvoice:   v.HasInvoice,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
	}
}
