package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/rs/zerolog"
)

// UseCase preço de venda por produto e local.
type UseCase struct {
	repo  repository.PricingRepository
	cache ports.Cache
	log   zerolog.Logger
	now   func() time.Time
}

func NewUseCase(repo repository.PricingRepository, cache ports.Cache, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, cache: cache, log: log, now: time.Now}
}

func parsePricing(in dto.PricingRequest) (entity.Pricing, error) {
	if in.ProductID == "" || in.LocationID == "" {
		return entity.Pricing{}, fmt.Errorf("%w: produto e local são obrigatórios", domain.ErrInvalidInput)
	}
	if !entity.ValidUnit(in.SaleUnit) {
		return entity.Pricing{}, fmt.Errorf("%w: unidade de venda inválida", domain.ErrInvalidInput)
	}
	price, err := domain.ParseMoney("preço", in.Price)
	if err != nil {
		return entity.Pricing{}, fmt.Errorf("%w: Preço inválido", domain.ErrInvalidInput)
	}
	return entity.Pricing{ProductID: in.ProductID, LocationID: in.LocationID, Price: price, SaleUnit: in.SaleUnit}, nil
}

// Create cadastra o preço; um segundo preço para o mesmo par devolve ErrDuplicate.
func (uc *UseCase) Create(ctx context.Context, in dto.PricingRequest) (*dto.PricingResponse, error) {
	p, err := parsePricing(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := uc.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	uc.bump(ctx)
	out := toPricingResponse(entity.PricingView{Pricing: p})
	return &out, nil
}

// Update altera preço, unidade ou o par (produto, local).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.PricingRequest) (*dto.PricingResponse, error) {
	p, err := parsePricing(in)
	if err != nil {
		return nil, err
	}
	cur, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("%w: precificação não encontrada", domain.ErrNotFound)
	}
	p.ID, p.CreatedAt, p.UpdatedAt = cur.ID, cur.CreatedAt, uc.now()
	if err := uc.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	uc.bump(ctx)
	out := toPricingResponse(entity.PricingView{Pricing: p})
	return &out, nil
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.bump(ctx)
	return nil
}

func (uc *UseCase) List(ctx context.Context, in dto.PricingListRequest) ([]dto.PricingResponse, error) {
	views, err := uc.repo.List(ctx, repository.PricingFilter{ProductID: in.ProductID, LocationID: in.LocationID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PricingResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toPricingResponse(v))
	}
	return out, nil
}

// ForProductLocation devolve o preço do par ou ErrNotFound.
func (uc *UseCase) ForProductLocation(ctx context.Context, productID, locationID string) (*dto.PricingResponse, error) {
	p, err := uc.repo.GetByProductLocation(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: produto sem preço neste local", domain.ErrNotFound)
	}
	out := toPricingResponse(entity.PricingView{Pricing: *p})
	return &out, nil
}

func (uc *UseCase) bump(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Bump(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar cache do PDV")
	}
}

func toPricingResponse(v entity.PricingView) dto.PricingResponse {
	return dto.PricingResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		ProductCode:  entity.DisplayCode(v.GroupCode, v.SubgroupCode, v.ProductCode),
		ProductName:  v.ProductName,
		LocationID:   v.LocationID,
		LocationName: v.LocationName,
		Price:        v.Price.StringFixed(domain.MoneyScale),
		SaleUnit:     v.SaleUnit,
		UpdatedAt:    v.UpdatedAt,
	}
}
