package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo saldo por (produto, local) em memória.
type StockRepo struct{ a access }

func stockKey(productID, locationID string) string { return productID + "|" + locationID }

func (r *StockRepo) Adjust(_ context.Context, productID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var qty decimal.Decimal
	var err error
	r.a.with(func(st *state) {
		key := stockKey(productID, locationID)
		s, ok := st.stock[key]
		if !ok {
			if !delta.IsPositive() {
				qty = decimal.Zero
				return
			}
			if _, ok := st.products[productID]; !ok {
				err = domain.ErrNotFound
				return
			}
			if _, ok := st.locations[locationID]; !ok {
				err = domain.ErrNotFound
				return
			}
			now := time.Now()
			s = entity.Stock{ID: uuid.NewString(), ProductID: productID, LocationID: locationID, Quantity: decimal.Zero, CreatedAt: now}
		}
		s.Quantity = decimal.Max(s.Quantity.Add(delta), decimal.Zero)
		s.UpdatedAt = time.Now()
		st.stock[key] = s
		qty = s.Quantity
	})
	return qty, err
}

func (r *StockRepo) Set(_ context.Context, productID, locationID string, quantity decimal.Decimal) (*entity.Stock, error) {
	var out *entity.Stock
	var err error
	r.a.with(func(st *state) {
		if _, ok := st.products[productID]; !ok {
			err = domain.ErrNotFound
			return
		}
		if _, ok := st.locations[locationID]; !ok {
			err = domain.ErrNotFound
			return
		}
		key := stockKey(productID, locationID)
		now := time.Now()
		s, ok := st.stock[key]
		if !ok {
			s = entity.Stock{ID: uuid.NewString(), ProductID: productID, LocationID: locationID, CreatedAt: now}
		}
		s.Quantity = quantity
		s.UpdatedAt = now
		st.stock[key] = s
		out = &s
	})
	return out, err
}

func (r *StockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	return r.Get(ctx, productID, locationID)
}

func (r *StockRepo) Get(_ context.Context, productID, locationID string) (*entity.Stock, error) {
	var out *entity.Stock
	r.a.with(func(st *state) {
		if s, ok := st.stock[stockKey(productID, locationID)]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *StockRepo) GetByID(_ context.Context, id string) (*entity.Stock, error) {
	var out *entity.Stock
	r.a.with(func(st *state) {
		for _, s := range st.stock {
			if s.ID == id {
				out = &s
				return
			}
		}
	})
	return out, nil
}

func (r *StockRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		for k, s := range st.stock {
			if s.ID == id {
				delete(st.stock, k)
				err = nil
				return
			}
		}
	})
	return err
}

func (st *state) stockView(s entity.Stock) entity.StockView {
	v := entity.StockView{Stock: s}
	if p, ok := st.products[s.ProductID]; ok {
		v.ProductCode, v.ProductName, v.ProductUnit = p.Code, p.Name, p.Unit
		v.GroupCode, v.SubgroupCode = st.productCodes(p)
	}
	v.LocationName = st.locations[s.LocationID].Name
	return v
}

func (st *state) productCodes(p entity.Product) (string, string) {
	return st.groups[p.GroupID].Code, st.subgroups[p.SubgroupID].Code
}

func (r *StockRepo) ListByLocation(_ context.Context, locationID string) ([]entity.StockView, error) {
	var list []entity.StockView
	r.a.with(func(st *state) {
		for _, s := range st.stock {
			if s.LocationID == locationID {
				list = append(list, st.stockView(s))
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ProductName < list[j].ProductName })
	return list, nil
}

func (r *StockRepo) ListByProduct(_ context.Context, productID string) ([]entity.StockView, error) {
	var list []entity.StockView
	r.a.with(func(st *state) {
		for _, s := range st.stock {
			if s.ProductID == productID {
				list = append(list, st.stockView(s))
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].LocationName < list[j].LocationName })
	return list, nil
}

func (r *StockRepo) ListForPDV(_ context.Context, locationID string) ([]entity.PDVItem, error) {
	var list []entity.PDVItem
	r.a.with(func(st *state) {
		for _, s := range st.stock {
			if s.LocationID != locationID || !s.Quantity.IsPositive() {
				continue
			}
			p := st.products[s.ProductID]
			g, sg := st.productCodes(p)
			it := entity.PDVItem{
				StockID: s.ID, ProductID: p.ID, Code: p.Code, Name: p.Name, Unit: p.Unit,
				GroupCode: g, SubgroupCode: sg, Quantity: s.Quantity,
			}
			for _, pr := range st.pricing {
				if pr.ProductID == s.ProductID && pr.LocationID == locationID {
					price := pr.Price
					it.Price = &price
					it.SaleUnit = pr.SaleUnit
				}
			}
			list = append(list, it)
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
