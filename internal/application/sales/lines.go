package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ParseLines valida e converte as linhas recebidas. Subtotais são aceitos como
// enviados; o total do documento é a soma deles.
func ParseLines(items []dto.LineRequest) ([]entity.LineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: informe ao menos um item", domain.ErrInvalidInput)
	}
	out := make([]entity.LineItem, 0, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return nil, fmt.Errorf("%w: item %d sem produto", domain.ErrInvalidInput, i+1)
		}
		if !entity.ValidUnit(it.Unit) {
			return nil, fmt.Errorf("%w: item %d com unidade de medida inválida", domain.ErrInvalidInput, i+1)
		}
		qty, err := domain.ParseQuantity("quantidade", it.Quantity)
		if err != nil {
			return nil, err
		}
		price, err := domain.ParseMoney("preço unitário", it.UnitPrice)
		if err != nil {
			return nil, err
		}
		subtotal, err := domain.ParseMoney("subtotal", it.Subtotal)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.LineItem{
			ProductID: it.ProductID,
			Quantity:  qty,
			Unit:      it.Unit,
			UnitPrice: price,
			Subtotal:  subtotal,
		})
	}
	if err := domain.CheckMoneyLimit("total", entity.SumSubtotals(out)); err != nil {
		return nil, err
	}
	return out, nil
}

type productQty struct {
	productID string
	quantity  decimal.Decimal
}

// aggregate soma as quantidades por produto, em ordem de product id. A ordem
// fixa evita deadlock entre transações que travam as mesmas linhas.
func aggregate(lines []entity.LineItem) []productQty {
	sum := map[string]decimal.Decimal{}
	for _, l := range lines {
		sum[l.ProductID] = sum[l.ProductID].Add(l.Quantity)
	}
	out := make([]productQty, 0, len(sum))
	for id, q := range sum {
		out = append(out, productQty{productID: id, quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].productID < out[j].productID })
	return out
}

// CheckStock trava as linhas de estoque envolvidas e confirma saldo para todas
// antes de qualquer escrita. A primeira falta vira *domain.StockShortage.
func CheckStock(ctx context.Context, stock repository.StockRepository, locationID string, lines []entity.LineItem) error {
	for _, pq := range aggregate(lines) {
		s, err := stock.GetForUpdate(ctx, pq.productID, locationID)
		if err != nil {
			return err
		}
		if s == nil {
			return &domain.StockShortage{ProductID: pq.productID, LocationID: locationID, Requested: pq.quantity.String()}
		}
		if s.Quantity.LessThan(pq.quantity) {
			return &domain.StockShortage{
				ProductID:  pq.productID,
				LocationID: locationID,
				Available:  s.Quantity.String(),
				Requested:  pq.quantity.String(),
			}
		}
	}
	return nil
}

// Deduct baixa o estoque de cada produto (limitado a zero pelo repositório).
func Deduct(ctx context.Context, stock repository.StockRepository, locationID string, lines []entity.LineItem) error {
	for _, pq := range aggregate(lines) {
		if _, err := stock.Adjust(ctx, pq.productID, locationID, pq.quantity.Neg()); err != nil {
			return err
		}
	}
	return nil
}

func toLineResponses(views []entity.LineView) []dto.LineResponse {
	out := make([]dto.LineResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToLineResponse(v))
	}
	return out
}

// ToLineResponse converte uma linha com produto resolvido.
func ToLineResponse(v entity.LineView) dto.LineResponse {
	return dto.LineResponse{
		ID:          v.ID,
		ProductID:   v.ProductID,
		ProductCode: entity.DisplayCode(v.GroupCode, v.SubgroupCode, v.ProductCode),
		ProductName: v.ProductName,
		Quantity:    v.Quantity.String(),
		Unit:        v.Unit,
		UnitPrice:   v.UnitPrice.StringFixed(domain.MoneyScale),
		Subtotal:    v.Subtotal.StringFixed(domain.MoneyScale),
	}
}
