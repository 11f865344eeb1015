// Package catalog cadastros de apoio: grupos, subgrupos, produtos, locais,
// clientes e fornecedores.
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

// GroupUseCase CRUD de grupos e subgrupos.
type GroupUseCase struct {
	groups    repository.GroupRepository
	subgroups repository.SubgroupRepository
}

// NewGroupUseCase constrói o caso de uso.
func NewGroupUseCase(groups repository.GroupRepository, subgroups repository.SubgroupRepository) *GroupUseCase {
	return &GroupUseCase{groups: groups, subgroups: subgroups}
}

func checkCodeName(in dto.GroupRequest) error {
	if strings.TrimSpace(in.Code) == "" {
		return fmt.Errorf("%w: código é obrigatório", domain.ErrInvalidInput)
	}
	if len([]rune(strings.TrimSpace(in.Name))) < 3 {
		return fmt.Errorf("%w: nome deve ter ao menos 3 caracteres", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *GroupUseCase) CreateGroup(ctx context.Context, in dto.GroupRequest) (*dto.GroupResponse, error) {
	if err := checkCodeName(in); err != nil {
		return nil, err
	}
	now := time.Now()
	g := &entity.Group{ID: uuid.NewString(), Code: strings.TrimSpace(in.Code), Name: strings.TrimSpace(in.Name), CreatedAt: now, UpdatedAt: now}
	if err := uc.groups.Create(ctx, g); err != nil {
		return nil, err
	}
	return &dto.GroupResponse{ID: g.ID, Code: g.Code, Name: g.Name}, nil
}

func (uc *GroupUseCase) UpdateGroup(ctx context.Context, id string, in dto.GroupRequest) (*dto.GroupResponse, error) {
	if err := checkCodeName(in); err != nil {
		return nil, err
	}
	g, err := uc.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: grupo não encontrado", domain.ErrNotFound)
	}
	g.Code, g.Name, g.UpdatedAt = strings.TrimSpace(in.Code), strings.TrimSpace(in.Name), time.Now()
	if err := uc.groups.Update(ctx, g); err != nil {
		return nil, err
	}
	return &dto.GroupResponse{ID: g.ID, Code: g.Code, Name: g.Name}, nil
}

// DeleteGroup remove o grupo e, em cascata, seus subgrupos.
func (uc *GroupUseCase) DeleteGroup(ctx context.Context, id string) error {
	return uc.groups.Delete(ctx, id)
}

func (uc *GroupUseCase) ListGroups(ctx context.Context) ([]dto.GroupResponse, error) {
	list, err := uc.groups.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GroupResponse, 0, len(list))
	for _, g := range list {
		out = append(out, dto.GroupResponse{ID: g.ID, Code: g.Code, Name: g.Name})
	}
	return out, nil
}

// CreateSubgroup exige um grupo existente.
func (uc *GroupUseCase) CreateSubgroup(ctx context.Context, in dto.GroupRequest) (*dto.GroupResponse, error) {
	if err := checkCodeName(in); err != nil {
		return nil, err
	}
	if err := uc.requireGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Subgroup{
		ID: uuid.NewString(), Code: strings.TrimSpace(in.Code), Name: strings.TrimSpace(in.Name),
		GroupID: in.GroupID, CreatedAt: now, UpdatedAt: now,
	}
	if err := uc.subgroups.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSubgroupResponse(*s), nil
}

func (uc *GroupUseCase) UpdateSubgroup(ctx context.Context, id string, in dto.GroupRequest) (*dto.GroupResponse, error) {
	if err := checkCodeName(in); err != nil {
		return nil, err
	}
	s, err := uc.subgroups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: subgrupo não encontrado", domain.ErrNotFound)
	}
	if in.GroupID != "" && in.GroupID != s.GroupID {
		if err := uc.requireGroup(ctx, in.GroupID); err != nil {
			return nil, err
		}
		s.GroupID = in.GroupID
	}
	s.Code, s.Name, s.UpdatedAt = strings.TrimSpace(in.Code), strings.TrimSpace(in.Name), time.Now()
	if err := uc.subgroups.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSubgroupResponse(*s), nil
}

func (uc *GroupUseCase) DeleteSubgroup(ctx context.Context, id string) error {
	return uc.subgroups.Delete(ctx, id)
}

// ListSubgroups lista os subgrupos; groupID vazio traz todos.
func (uc *GroupUseCase) ListSubgroups(ctx context.Context, groupID string) ([]dto.GroupResponse, error) {
	list, err := uc.subgroups.List(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GroupResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSubgroupResponse(s))
	}
	return out, nil
}

func (uc *GroupUseCase) requireGroup(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: grupo é obrigatório", domain.ErrInvalidInput)
	}
	g, err := uc.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("%w: grupo não encontrado", domain.ErrNotFound)
	}
	return nil
}

func toSubgroupResponse(s entity.Subgroup) *dto.GroupResponse {
	return &dto.GroupResponse{ID: s.ID, Code: s.Code, Name: s.Name, GroupID: s.GroupID}
}
