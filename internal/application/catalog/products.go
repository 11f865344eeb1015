package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/rs/zerolog"
)

// ProductUseCase CRUD de produtos. O saldo não é editado aqui, e sim pelo estoque.
type ProductUseCase struct {
	repo      repository.ProductRepository
	groups    repository.GroupRepository
	subgroups repository.SubgroupRepository
	cache     ports.Cache
	log       zerolog.Logger
}

// NewProductUseCase constrói o caso de uso. cache pode ser nil.
func NewProductUseCase(
	repo repository.ProductRepository,
	groups repository.GroupRepository,
	subgroups repository.SubgroupRepository,
	cache ports.Cache,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, groups: groups, subgroups: subgroups, cache: cache, log: log}
}

// resolveTags confere grupo e subgrupo; o subgrupo precisa pertencer ao grupo.
func (uc *ProductUseCase) resolveTags(ctx context.Context, groupID, subgroupID string) error {
	if groupID != "" {
		g, err := uc.groups.GetByID(ctx, groupID)
		if err != nil {
			return err
		}
		if g == nil {
			return fmt.Errorf("%w: grupo não encontrado", domain.ErrNotFound)
		}
	}
	if subgroupID == "" {
		return nil
	}
	s, err := uc.subgroups.GetByID(ctx, subgroupID)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: subgrupo não encontrado", domain.ErrNotFound)
	}
	if s.GroupID != groupID {
		return fmt.Errorf("%w: o subgrupo não pertence ao grupo informado", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *ProductUseCase) fill(ctx context.Context, p *entity.Product, in dto.ProductRequest) error {
	if strings.TrimSpace(in.Code) == "" {
		return fmt.Errorf("%w: código é obrigatório", domain.ErrInvalidInput)
	}
	if len([]rune(strings.TrimSpace(in.Name))) < 3 {
		return fmt.Errorf("%w: nome deve ter ao menos 3 caracteres", domain.ErrInvalidInput)
	}
	if !entity.ValidUnit(in.Unit) {
		return fmt.Errorf("%w: unidade de medida inválida", domain.ErrInvalidInput)
	}
	if err := uc.resolveTags(ctx, in.GroupID, in.SubgroupID); err != nil {
		return err
	}
	p.Code = strings.TrimSpace(in.Code)
	p.GroupID, p.SubgroupID = in.GroupID, in.SubgroupID
	p.Name = strings.TrimSpace(in.Name)
	p.Unit = in.Unit
	p.Reference1, p.Reference2 = in.Reference1, in.Reference2
	return nil
}

func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	p := &entity.Product{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := uc.fill(ctx, p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: produto não encontrado", domain.ErrNotFound)
	}
	out := toProductResponse(*p)
	return &out, nil
}

func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: produto não encontrado", domain.ErrNotFound)
	}
	if err := uc.fill(ctx, p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.bump(ctx)
	return uc.GetByID(ctx, id)
}

// Delete falha com ErrInvalidState se o produto já tem compras registradas.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.bump(ctx)
	return nil
}

// List busca por nome ou código, paginado.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, strings.TrimSpace(page.Search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func (uc *ProductUseCase) bump(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Bump(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar cache do PDV")
	}
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		DisplayCode: entity.DisplayCode(p.GroupCode, p.SubgroupCode, p.Code),
		GroupID:     p.GroupID,
		SubgroupID:  p.SubgroupID,
		Name:        p.Name,
		Unit:        p.Unit,
		Reference1:  p.Reference1,
		Reference2:  p.Reference2,
	}
}
