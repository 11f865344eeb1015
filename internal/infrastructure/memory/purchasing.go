package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo compras em memória.
type PurchaseOrderRepo struct{ a access }

func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	var err error
	r.a.with(func(st *state) {
		if r.a.takeConflict() {
			err = domain.ErrCodeConflict
			return
		}
		for _, c := range st.compras {
			if c.Code == po.Code {
				err = domain.ErrCodeConflict
				return
			}
		}
		if _, ok := st.products[po.ProductID]; !ok {
			err = domain.ErrNotFound
			return
		}
		if _, ok := st.suppliers[po.SupplierID]; !ok {
			err = domain.ErrNotFound
			return
		}
		if _, ok := st.locations[po.LocationID]; !ok {
			err = domain.ErrNotFound
			return
		}
		st.compras[po.ID] = *po
	})
	return err
}

func (r *PurchaseOrderRepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		cur, ok := st.compras[po.ID]
		if !ok {
			return
		}
		cur.ProductID, cur.SupplierID, cur.LocationID = po.ProductID, po.SupplierID, po.LocationID
		cur.Quantity, cur.Unit, cur.HasInvoice, cur.InvoiceFileURL = po.Quantity, po.Unit, po.HasInvoice, po.InvoiceFileURL
		cur.UpdatedAt = po.UpdatedAt
		st.compras[po.ID] = cur
		err = nil
	})
	return err
}

func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, po *entity.PurchaseOrder) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		cur, ok := st.compras[po.ID]
		if !ok {
			return
		}
		cur.Status, cur.UpdatedAt = po.Status, po.UpdatedAt
		st.compras[po.ID] = cur
		err = nil
	})
	return err
}

func (r *PurchaseOrderRepo) Delete(_ context.Context, id string) error {
	err := domain.ErrNotFound
	r.a.with(func(st *state) {
		if _, ok := st.compras[id]; ok {
			delete(st.compras, id)
			err = nil
		}
	})
	return err
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	r.a.with(func(st *state) {
		if c, ok := st.compras[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (st *state) compraView(c entity.PurchaseOrder) entity.PurchaseOrderView {
	p := st.products[c.ProductID]
	g, sg := st.productCodes(p)
	return entity.PurchaseOrderView{
		PurchaseOrder: c,
		ProductCode:   p.Code,
		ProductName:   p.Name,
		GroupCode:     g,
		SubgroupCode:  sg,
		SupplierName:  st.suppliers[c.SupplierID].Name,
		LocationName:  st.locations[c.LocationID].Name,
	}
}

func (r *PurchaseOrderRepo) GetView(_ context.Context, id string) (*entity.PurchaseOrderView, error) {
	var out *entity.PurchaseOrderView
	r.a.with(func(st *state) {
		if c, ok := st.compras[id]; ok {
			v := st.compraView(c)
			out = &v
		}
	})
	return out, nil
}

func (r *PurchaseOrderRepo) List(_ context.Context, f repository.PurchaseOrderFilter) ([]entity.PurchaseOrderView, error) {
	var list []entity.PurchaseOrderView
	r.a.with(func(st *state) {
		for _, c := range st.compras {
			if (f.Status != "" && c.Status != f.Status) ||
				(f.SupplierID != "" && c.SupplierID != f.SupplierID) ||
				(f.LocationID != "" && c.LocationID != f.LocationID) {
				continue
			}
			list = append(list, st.compraView(c))
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *PurchaseOrderRepo) CodeExists(_ context.Context, code string) (bool, error) {
	var found bool
	r.a.with(func(st *state) {
		for _, c := range st.compras {
			if c.Code == code {
				found = true
				return
			}
		}
	})
	return found, nil
}
