package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo vendas e itens em memória.
type SaleRepo struct{ a access }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale, lines []entity.SaleLine) error {
	var err error
	r.a.with(func(st *state) {
		if r.a.takeConflict() {
			err = domain.ErrCodeConflict
			return
		}
		for _, v := range st.sales {
			if v.Code == s.Code {
				err = domain.ErrCodeConflict
				return
			}
		}
		if _, ok := st.locations[s.LocationID]; !ok {
			err = domain.ErrNotFound
			return
		}
		for _, l := range lines {
			if _, ok := st.products[l.ProductID]; !ok {
				err = domain.ErrNotFound
				return
			}
		}
		st.sales[s.ID] = *s
		st.saleLines[s.ID] = slices.Clone(lines)
	})
	return err
}

func (st *state) saleView(s entity.Sale) entity.SaleView {
	return entity.SaleView{Sale: s, ClientName: st.clients[s.ClientID].Name, LocationName: st.locations[s.LocationID].Name}
}

func (r *SaleRepo) GetView(_ context.Context, id string) (*entity.SaleView, error) {
	var out *entity.SaleView
	r.a.with(func(st *state) {
		if s, ok := st.sales[id]; ok {
			v := st.saleView(s)
			out = &v
		}
	})
	return out, nil
}

func (r *SaleRepo) LineViews(_ context.Context, saleID string) ([]entity.LineView, error) {
	var out []entity.LineView
	r.a.with(func(st *state) {
		for _, l := range st.saleLines[saleID] {
			out = append(out, st.lineView(l.ID, l.LineItem))
		}
	})
	return out, nil
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]entity.SaleView, error) {
	var list []entity.SaleView
	r.a.with(func(st *state) {
		for _, s := range st.sales {
			if (f.LocationID != "" && s.LocationID != f.LocationID) || (f.ClientID != "" && s.ClientID != f.ClientID) {
				continue
			}
			list = append(list, st.saleView(s))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *SaleRepo) CodeExists(_ context.Context, code string) (bool, error) {
	var found bool
	r.a.with(func(st *state) {
		for _, s := range st.sales {
			if s.Code == code {
				found = true
				return
			}
		}
	})
	return found, nil
}

// SaleLines expõe os itens gravados de uma venda (asserções em testes).
func (s *Store) SaleLines(saleID string) []entity.SaleLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.saleLines[saleID])
}

// SaleCount devolve o número de vendas gravadas.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.sales)
}

// AnySale devolve uma venda qualquer (útil quando só há uma).
func (s *Store) AnySale() (entity.Sale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.st.sales {
		return v, true
	}
	return entity.Sale{}, false
}
