package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var _ repository.PricingRepository = (*PricingRepo)(nil)

// PricingRepo preços por local em memória; (produto, local) é único.
type PricingRepo struct{ a access }

func (st *state) pricingTaken(p *entity.Pricing) bool {
	for _, cur := range st.pricing {
		if cur.ID != p.ID && cur.ProductID == p.ProductID && cur.LocationID == p.LocationID {
			return true
		}
	}
	return false
}

var errPricingDuplicate = fmt.Errorf("%w: já existe uma precificação para este produto neste local", domain.ErrDuplicate)

func (r *PricingRepo) Create(_ context.Context, p *entity.Pricing) error {
	var err error
	r.a.with(func(st *state) {
		if st.pricingTaken(p) {
			err = errPricingDuplicate
			return
		}
		if _, ok := st.products[p.ProductID]; !ok {
			err = domain.ErrNotFound
			return
		}
		if _, ok := st.locations[p.LocationID]; !ok {
			err = domain.ErrNotFound
			return
		}
		st.pricing[p.ID] = *p
	})
	return err
}

func (r *PricingRepo) Update(_ context.Context, p *entity.Pricing) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		cur, ok := st.pricing[p.ID]
		if !ok {
			return
		}
		if st.pricingTaken(p) {
			err = errPricingDuplicate
			return
		}
		cur.ProductID, cur.LocationID, cur.Price, cur.SaleUnit, cur.UpdatedAt = p.ProductID, p.LocationID, p.Price, p.SaleUnit, p.UpdatedAt
		st.pricing[p.ID] = cur
		err = nil
	})
	return err
}

func (r *PricingRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.pricing[id]; ok {
			delete(st.pricing, id)
			err = nil
		}
	})
	return err
}

func (r *PricingRepo) GetByID(_ context.Context, id string) (*entity.Pricing, error) {
	var out *entity.Pricing
	r.a.with(func(st *state) {
		if p, ok := st.pricing[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *PricingRepo) GetByProductLocation(_ context.Context, productID, locationID string) (*entity.Pricing, error) {
	var out *entity.Pricing
	r.a.with(func(st *state) {
		for _, p := range st.pricing {
			if p.ProductID == productID && p.LocationID == locationID {
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *PricingRepo) List(_ context.Context, f repository.PricingFilter) ([]entity.PricingView, error) {
	var list []entity.PricingView
	r.a.with(func(st *state) {
		for _, p := range st.pricing {
			if (f.ProductID != "" && p.ProductID != f.ProductID) || (f.LocationID != "" && p.LocationID != f.LocationID) {
				continue
			}
			prod := st.products[p.ProductID]
			g, sg := st.productCodes(prod)
			list = append(list, entity.PricingView{
				Pricing: p, ProductCode: prod.Code, ProductName: prod.Name,
				GroupCode: g, SubgroupCode: sg, LocationName: st.locations[p.LocationID].Name,
			})
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].ProductName != list[j].ProductName {
			return list[i].ProductName < list[j].ProductName
		}
		return list[i].LocationName < list[j].LocationName
	})
	return list, nil
}
