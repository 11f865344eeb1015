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

// PartyUseCase CRUD de clientes ou de fornecedores, conforme o repositório.
type PartyUseCase struct {
	repo  repository.PartyRepository
	label string // "cliente" ou "fornecedor", usado nas mensagens
}

// NewClientUseCase casos de uso de clientes.
func NewClientUseCase(repo repository.PartyRepository) *PartyUseCase {
	return &PartyUseCase{repo: repo, label: "cliente"}
}

// NewSupplierUseCase casos de uso de fornecedores.
func NewSupplierUseCase(repo repository.PartyRepository) *PartyUseCase {
	return &PartyUseCase{repo: repo, label: "fornecedor"}
}

func applyParty(p *entity.Party, in dto.PartyRequest) error {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < 2 {
		return fmt.Errorf("%w: nome deve ter ao menos 2 caracteres", domain.ErrInvalidInput)
	}
	p.Name = name
	p.Email = strings.ToLower(strings.TrimSpace(in.Email))
	p.Phone, p.TaxID = in.Phone, in.TaxID
	p.Address, p.Number, p.City = in.Address, in.Number, in.City
	p.State, p.ZipCode = strings.ToUpper(in.State), in.ZipCode
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return nil
}

func (uc *PartyUseCase) Create(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error) {
	now := time.Now()
	p := &entity.Party{ID: uuid.NewString(), IsActive: true, CreatedAt: now, UpdatedAt: now}
	if err := applyParty(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := toPartyResponse(*p)
	return &out, nil
}

func (uc *PartyUseCase) Get(ctx context.Context, id string) (*dto.PartyResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s não encontrado", domain.ErrNotFound, uc.label)
	}
	out := toPartyResponse(*p)
	return &out, nil
}

func (uc *PartyUseCase) Update(ctx context.Context, id string, in dto.PartyRequest) (*dto.PartyResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s não encontrado", domain.ErrNotFound, uc.label)
	}
	if err := applyParty(p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	out := toPartyResponse(*p)
	return &out, nil
}

func (uc *PartyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// List lista os cadastros; onlyActive esconde os inativos.
func (uc *PartyUseCase) List(ctx context.Context, onlyActive bool) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPartyResponse(p))
	}
	return out, nil
}

func toPartyResponse(p entity.Party) dto.PartyResponse {
	return dto.PartyResponse{
		ID:       p.ID,
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		TaxID:    p.TaxID,
		Address:  p.Address,
		Number:   p.Number,
		City:     p.City,
		State:    p.State,
		ZipCode:  p.ZipCode,
		IsActive: p.IsActive,
	}
}
