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

// LocationUseCase CRUD de locais (lojas, depósitos).
type LocationUseCase struct {
	repo repository.LocationRepository
}

func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

func applyLocation(l *entity.Location, in dto.LocationRequest) error {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 2 {
		return fmt.Errorf("%w: nome deve ter ao menos 2 caracteres", domain.ErrInvalidInput)
	}
	l.Name, l.Address, l.Number = name, in.Address, in.Number
	l.District, l.City, l.ZipCode = in.District, in.City, in.ZipCode
	return nil
}

func (uc *LocationUseCase) Create(ctx context.Context, in dto.LocationRequest) (*dto.LocationResponse, error) {
	now := time.Now()
	l := &entity.Location{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := applyLocation(l, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	out := toLocationResponse(*l)
	return &out, nil
}

func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.LocationRequest) (*dto.LocationResponse, error) {
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: local não encontrado", domain.ErrNotFound)
	}
	if err := applyLocation(l, in); err != nil {
		return nil, err
	}
	l.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	out := toLocationResponse(*l)
	return &out, nil
}

func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLocationResponse(l))
	}
	return out, nil
}

func toLocationResponse(l entity.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:       l.ID,
		Name:     l.Name,
		Address:  l.Address,
		Number:   l.Number,
		District: l.District,
		City:     l.City,
		ZipCode:  l.ZipCode,
	}
}
