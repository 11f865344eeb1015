package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

// PositionUseCase CRUD de cargos. Remover um cargo desfaz as atribuições.
type PositionUseCase struct {
	repo repository.PositionRepository
}

func NewPositionUseCase(repo repository.PositionRepository) *PositionUseCase {
	return &PositionUseCase{repo: repo}
}

func applyPosition(p *entity.Position, in dto.PositionRequest) error {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 2 {
		return fmt.Errorf("%w: nome deve ter ao menos 2 caracteres", domain.ErrInvalidInput)
	}
	p.Name = name
	return nil
}

func (uc *PositionUseCase) Create(ctx context.Context, in dto.PositionRequest) (*dto.PositionResponse, error) {
	now := time.Now()
	p := &entity.Position{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := applyPosition(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &dto.PositionResponse{ID: p.ID, Name: p.Name}, nil
}

func (uc *PositionUseCase) Update(ctx context.Context, id string, in dto.PositionRequest) (*dto.PositionResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: cargo não encontrado", domain.ErrNotFound)
	}
	if err := applyPosition(p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return &dto.PositionResponse{ID: p.ID, Name: p.Name}, nil
}

func (uc *PositionUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *PositionUseCase) List(ctx context.Context) ([]dto.PositionResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PositionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PositionResponse{ID: p.ID, Name: p.Name})
	}
	return out, nil
}
