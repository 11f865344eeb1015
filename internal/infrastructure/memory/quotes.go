package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo orçamentos e itens em memória.
type QuoteRepo struct{ a access }

func (r *QuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	var err error
	r.a.with(func(st *state) {
		if r.a.takeConflict() {
			err = domain.ErrCodeConflict
			return
		}
		for _, o := range st.quotes {
			if o.Code == q.Code {
				err = domain.ErrCodeConflict
				return
			}
		}
		if _, ok := st.clients[q.ClientID]; !ok {
			err = domain.ErrNotFound
			return
		}
		if _, ok := st.locations[q.LocationID]; !ok {
			err = domain.ErrNotFound
			return
		}
		st.quotes[q.ID] = *q
	})
	return err
}

func (r *QuoteRepo) Update(_ context.Context, q *entity.Quote) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		cur, ok := st.quotes[q.ID]
		if !ok {
			return
		}
		cur.ClientID, cur.LocationID, cur.Total, cur.Notes = q.ClientID, q.LocationID, q.Total, q.Notes
		cur.ValidUntil, cur.HasInvoice, cur.UpdatedAt = q.ValidUntil, q.HasInvoice, q.UpdatedAt
		st.quotes[q.ID] = cur
		err = nil
	})
	return err
}

func (r *QuoteRepo) UpdateStatus(_ context.Context, q *entity.Quote) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		cur, ok := st.quotes[q.ID]
		if !ok {
			return
		}
		cur.Status, cur.SaleID, cur.UpdatedAt = q.Status, q.SaleID, q.UpdatedAt
		st.quotes[q.ID] = cur
		err = nil
	})
	return err
}

func (r *QuoteRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.quotes[id]; ok {
			delete(st.quotes, id)
			delete(st.quoteLines, id)
			err = nil
		}
	})
	return err
}

func (r *QuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	var out *entity.Quote
	r.a.with(func(st *state) {
		if q, ok := st.quotes[id]; ok {
			out = &q
		}
	})
	return out, nil
}

func (r *QuoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.Quote, error) {
	return r.GetByID(ctx, id)
}

func (st *state) quoteView(q entity.Quote) entity.QuoteView {
	c := st.clients[q.ClientID]
	return entity.QuoteView{Quote: q, ClientName: c.Name, ClientEmail: c.Email, LocationName: st.locations[q.LocationID].Name}
}

func (r *QuoteRepo) GetView(_ context.Context, id string) (*entity.QuoteView, error) {
	var out *entity.QuoteView
	r.a.with(func(st *state) {
		if q, ok := st.quotes[id]; ok {
			v := st.quoteView(q)
			out = &v
		}
	})
	return out, nil
}

func (r *QuoteRepo) List(_ context.Context, f repository.QuoteFilter) ([]entity.QuoteView, error) {
	var list []entity.QuoteView
	r.a.with(func(st *state) {
		for _, q := range st.quotes {
			if (f.Status != "" && q.Status != f.Status) ||
				(f.ClientID != "" && q.ClientID != f.ClientID) ||
				(f.LocationID != "" && q.LocationID != f.LocationID) {
				continue
			}
			list = append(list, st.quoteView(q))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *QuoteRepo) Lines(_ context.Context, quoteID string) ([]entity.QuoteLine, error) {
	var out []entity.QuoteLine
	r.a.with(func(st *state) { out = slices.Clone(st.quoteLines[quoteID]) })
	return out, nil
}

func (st *state) lineView(id string, li entity.LineItem) entity.LineView {
	p := st.products[li.ProductID]
	g, sg := st.productCodes(p)
	return entity.LineView{ID: id, LineItem: li, ProductCode: p.Code, ProductName: p.Name, GroupCode: g, SubgroupCode: sg}
}

func (r *QuoteRepo) LineViews(_ context.Context, quoteID string) ([]entity.LineView, error) {
	var out []entity.LineView
	r.a.with(func(st *state) {
		for _, l := range st.quoteLines[quoteID] {
			out = append(out, st.lineView(l.ID, l.LineItem))
		}
	})
	return out, nil
}

func (r *QuoteRepo) ReplaceLines(_ context.Context, quoteID string, lines []entity.QuoteLine) error {
	var err error
	r.a.with(func(st *state) {
		for _, l := range lines {
			if _, ok := st.products[l.ProductID]; !ok {
				err = domain.ErrNotFound
				return
			}
		}
		st.quoteLines[quoteID] = slices.Clone(lines)
	})
	return err
}

func (r *QuoteRepo) CodeExists(_ context.Context, code string) (bool, error) {
	var found bool
	r.a.with(func(st *state) {
		for _, q := range st.quotes {
			if q.Code == code {
				found = true
				return
			}
		}
	})
	return found, nil
}
