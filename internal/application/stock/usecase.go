package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/rs/zerolog"
)

// UseCase operações do livro de estoque: entrada, ajuste manual e leituras.
type UseCase struct {
	tx    repository.TxRunner
	stock repository.StockRepository
	cache ports.Cache
	log   zerolog.Logger
	now   func() time.Time
}

// NewUseCase constrói o caso de uso. cache pode ser nil (sem cache do PDV).
func NewUseCase(tx repository.TxRunner, stock repository.StockRepository, cache ports.Cache, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, stock: stock, cache: cache, log: log, now: time.Now}
}

// WithClock troca o relógio (testes).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Entry soma quantity ao saldo do par (produto, local). Com compra_id, a compra
// precisa estar aprovada e bater com produto e local; ela passa a "entregue".
func (uc *UseCase) Entry(ctx context.Context, in dto.StockEntryRequest) (*dto.StockResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" || strings.TrimSpace(in.LocationID) == "" {
		return nil, fmt.Errorf("%w: produto e local são obrigatórios", domain.ErrInvalidInput)
	}
	qty, err := domain.ParseQuantity("quantidade", in.Quantity)
	if err != nil {
		return nil, err
	}

	var out *entity.Stock
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if in.CompraID != "" {
			po, err := r.PurchaseOrders.GetForUpdate(ctx, in.CompraID)
			if err != nil {
				return err
			}
			if po == nil {
				return fmt.Errorf("%w: compra não encontrada", domain.ErrNotFound)
			}
			if po.ProductID != in.ProductID || po.LocationID != in.LocationID {
				return fmt.Errorf("%w: a compra não corresponde ao produto e local informados", domain.ErrInvalidInput)
			}
			if err := po.MarkDelivered(uc.now()); err != nil {
				return err
			}
			if err := r.PurchaseOrders.UpdateStatus(ctx, po); err != nil {
				return err
			}
		}
		if _, err := r.Stock.Adjust(ctx, in.ProductID, in.LocationID, qty); err != nil {
			return err
		}
		s, err := r.Stock.Get(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.bump(ctx)
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("location_id", in.LocationID).
		Str("quantity", qty.String()).
		Str("compra_id", in.CompraID).
		Msg("entrada de estoque")
	return toStockResponse(out), nil
}

// Set grava o saldo absoluto (edição manual). Quantidade precisa ser >= 0.
func (uc *UseCase) Set(ctx context.Context, in dto.SetStockRequest) (*dto.StockResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" || strings.TrimSpace(in.LocationID) == "" {
		return nil, fmt.Errorf("%w: produto e local são obrigatórios", domain.ErrInvalidInput)
	}
	qty, err := domain.ParseStockLevel("quantidade", in.Quantity)
	if err != nil {
		return nil, err
	}
	s, err := uc.stock.Set(ctx, in.ProductID, in.LocationID, qty)
	if err != nil {
		return nil, err
	}
	uc.bump(ctx)
	return toStockResponse(s), nil
}

// Delete remove uma linha de estoque.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.stock.Delete(ctx, id); err != nil {
		return err
	}
	uc.bump(ctx)
	return nil
}

// ByLocation lista os saldos de um local.
func (uc *UseCase) ByLocation(ctx context.Context, locationID string) ([]dto.StockResponse, error) {
	views, err := uc.stock.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(views), nil
}

// ByProduct lista os saldos de um produto em todos os locais.
func (uc *UseCase) ByProduct(ctx context.Context, productID string) ([]dto.StockResponse, error) {
	views, err := uc.stock.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(views), nil
}

// ForPDV lista produtos vendáveis no local, via cache versionado quando disponível.
func (uc *UseCase) ForPDV(ctx context.Context, locationID string) ([]dto.PDVItemResponse, error) {
	if strings.TrimSpace(locationID) == "" {
		return nil, fmt.Errorf("%w: local é obrigatório", domain.ErrInvalidInput)
	}
	load := func(ctx context.Context) ([]dto.PDVItemResponse, error) {
		items, err := uc.stock.ListForPDV(ctx, locationID)
		if err != nil {
			return nil, err
		}
		return toPDVResponses(items), nil
	}
	if uc.cache == nil {
		return load(ctx)
	}

	key, err := uc.cache.BuildKey(ctx, "pdv", locationID)
	if err != nil {
		uc.log.Warn().Err(err).Msg("cache indisponível, lendo do banco")
		return load(ctx)
	}
	var out []dto.PDVItemResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UseCase) bump(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Bump(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar cache do PDV")
	}
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		LocationID: s.LocationID,
		Quantity:   s.Quantity.String(),
		UpdatedAt:  s.UpdatedAt,
	}
}

func toStockResponses(views []entity.StockView) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.StockResponse{
			ID:           v.ID,
			ProductID:    v.ProductID,
			ProductCode:  entity.DisplayCode(v.GroupCode, v.SubgroupCode, v.ProductCode),
			ProductName:  v.ProductName,
			Unit:         v.ProductUnit,
			LocationID:   v.LocationID,
			LocationName: v.LocationName,
			Quantity:     v.Quantity.String(),
			UpdatedAt:    v.UpdatedAt,
		})
	}
	return out
}

func toPDVResponses(items []entity.PDVItem) []dto.PDVItemResponse {
	out := make([]dto.PDVItemResponse, 0, len(items))
	for _, it := range items {
		r := dto.PDVItemResponse{
			StockID:   it.StockID,
			ProductID: it.ProductID,
			Code:      entity.DisplayCode(it.GroupCode, it.SubgroupCode, it.Code),
			Name:      it.Name,
			Unit:      it.Unit,
			Quantity:  it.Quantity.String(),
			SaleUnit:  it.SaleUnit,
		}
		if it.Price != nil {
			p := it.Price.StringFixed(domain.MoneyScale)
			r.Price = &p
		}
		out = append(out, r)
	}
	return out
}
