package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var (
	_ repository.GroupRepository    = (*GroupRepo)(nil)
	_ repository.SubgroupRepository = (*SubgroupRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.PartyRepository    = (*PartyRepo)(nil)
)

// GroupRepo grupos em memória.
type GroupRepo struct{ a access }

func (r *GroupRepo) Create(_ context.Context, g *entity.Group) error {
	r.a.with(func(st *state) { st.groups[g.ID] = *g })
	return nil
}

func (r *GroupRepo) Update(_ context.Context, g *entity.Group) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if cur, ok := st.groups[g.ID]; ok {
			cur.Code, cur.Name, cur.UpdatedAt = g.Code, g.Name, g.UpdatedAt
			st.groups[g.ID] = cur
			err = nil
		}
	})
	return err
}

func (r *GroupRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.groups[id]; ok {
			delete(st.groups, id)
			for sid, s := range st.subgroups {
				if s.GroupID == id {
					delete(st.subgroups, sid)
				}
			}
			err = nil
		}
	})
	return err
}

func (r *GroupRepo) GetByID(_ context.Context, id string) (*entity.Group, error) {
	var out *entity.Group
	r.a.with(func(st *state) {
		if g, ok := st.groups[id]; ok {
			out = &g
		}
	})
	return out, nil
}

func (r *GroupRepo) List(_ context.Context) ([]entity.Group, error) {
	var list []entity.Group
	r.a.with(func(st *state) {
		for _, g := range st.groups {
			list = append(list, g)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

// SubgroupRepo subgrupos em memória.
type SubgroupRepo struct{ a access }

func (r *SubgroupRepo) Create(_ context.Context, s *entity.Subgroup) error {
	var err error
	r.a.with(func(st *state) {
		if _, ok := st.groups[s.GroupID]; !ok {
			err = domain.ErrNotFound
			return
		}
		st.subgroups[s.ID] = *s
	})
	return err
}

func (r *SubgroupRepo) Update(_ context.Context, s *entity.Subgroup) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if cur, ok := st.subgroups[s.ID]; ok {
			cur.Code, cur.Name, cur.GroupID, cur.UpdatedAt = s.Code, s.Name, s.GroupID, s.UpdatedAt
			st.subgroups[s.ID] = cur
			err = nil
		}
	})
	return err
}

func (r *SubgroupRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.subgroups[id]; ok {
			delete(st.subgroups, id)
			err = nil
		}
	})
	return err
}

func (r *SubgroupRepo) GetByID(_ context.Context, id string) (*entity.Subgroup, error) {
	var out *entity.Subgroup
	r.a.with(func(st *state) {
		if s, ok := st.subgroups[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *SubgroupRepo) List(_ context.Context, groupID string) ([]entity.Subgroup, error) {
	var list []entity.Subgroup
	r.a.with(func(st *state) {
		for _, s := range st.subgroups {
			if groupID == "" || s.GroupID == groupID {
				list = append(list, s)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

// ProductRepo produtos em memória.
type ProductRepo struct{ a access }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	var err error
	r.a.with(func(st *state) {
		if p.GroupID != "" {
			if _, ok := st.groups[p.GroupID]; !ok {
				err = domain.ErrNotFound
				return
			}
		}
		if p.SubgroupID != "" {
			if _, ok := st.subgroups[p.SubgroupID]; !ok {
				err = domain.ErrNotFound
				return
			}
		}
		st.products[p.ID] = *p
	})
	return err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if cur, ok := st.products[p.ID]; ok {
			p.CreatedAt = cur.CreatedAt
			st.products[p.ID] = *p
			err = nil
		}
	})
	return err
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.products[id]; !ok {
			return
		}
		for _, c := range st.compras {
			if c.ProductID == id {
				err = domain.ErrInvalidState
				return
			}
		}
		delete(st.products, id)
		err = nil
	})
	return err
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.a.with(func(st *state) {
		if p, ok := st.products[id]; ok {
			p.GroupCode, p.SubgroupCode = st.productCodes(p)
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) List(_ context.Context, search string, limit, offset int) ([]entity.Product, error) {
	var list []entity.Product
	search = strings.ToLower(search)
	r.a.with(func(st *state) {
		for _, p := range st.products {
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.Code), search) {
				continue
			}
			p.GroupCode, p.SubgroupCode = st.productCodes(p)
			list = append(list, p)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// LocationRepo locais em memória.
type LocationRepo struct{ a access }

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	r.a.with(func(st *state) { st.locations[l.ID] = *l })
	return nil
}

func (r *LocationRepo) Update(_ context.Context, l *entity.Location) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if cur, ok := st.locations[l.ID]; ok {
			l.CreatedAt = cur.CreatedAt
			st.locations[l.ID] = *l
			err = nil
		}
	})
	return err
}

func (r *LocationRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.locations[id]; ok {
			delete(st.locations, id)
			err = nil
		}
	})
	return err
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	r.a.with(func(st *state) {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
	})
	return out, nil
}

func (r *LocationRepo) List(_ context.Context) ([]entity.Location, error) {
	var list []entity.Location
	r.a.with(func(st *state) {
		for _, l := range st.locations {
			list = append(list, l)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type partyKind int

const (
	clientsKind partyKind = iota
	suppliersKind
)

// PartyRepo clientes ou fornecedores em memória.
type PartyRepo struct {
	a    access
	kind partyKind
}

func (r *PartyRepo) table(st *state) map[string]entity.Party {
	if r.kind == clientsKind {
		return st.clients
	}
	return st.suppliers
}

func (r *PartyRepo) Create(_ context.Context, p *entity.Party) error {
	r.a.with(func(st *state) { r.table(st)[p.ID] = *p })
	return nil
}

func (r *PartyRepo) Update(_ context.Context, p *entity.Party) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		t := r.table(st)
		if cur, ok := t[p.ID]; ok {
			p.CreatedAt = cur.CreatedAt
			t[p.ID] = *p
			err = nil
		}
	})
	return err
}

func (r *PartyRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		t := r.table(st)
		if _, ok := t[id]; ok {
			delete(t, id)
			err = nil
		}
	})
	return err
}

func (r *PartyRepo) GetByID(_ context.Context, id string) (*entity.Party, error) {
	var out *entity.Party
	r.a.with(func(st *state) {
		if p, ok := r.table(st)[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *PartyRepo) List(_ context.Context, onlyActive bool) ([]entity.Party, error) {
	var list []entity.Party
	r.a.with(func(st *state) {
		for _, p := range r.table(st) {
			if onlyActive && !p.IsActive {
				continue
			}
			list = append(list, p)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
