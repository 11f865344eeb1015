package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/erp-comercial/internal/application/quotes"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderQuote_GeraPDF(t *testing.T) {
	doc := &quotes.Document{
		ID:           "Q1",
		Code:         "700001",
		ClientName:   "Maria Souza",
		ClientEmail:  "maria@example.com",
		LocationName: "Loja Centro",
		Status:       entity.QuotePending,
		Notes:        "Entrega em 5 dias úteis",
		ValidUntil:   time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
		IssuedAt:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Total:        decimal.RequireFromString("50.00"),
		Lines: []entity.LineView{{
			ID: "QL1",
			LineItem: entity.LineItem{
				ProductID: "P1",
				Quantity:  decimal.NewFromInt(5),
				Unit:      entity.UnitPiece,
				UnitPrice: decimal.RequireFromString("10.00"),
				Subtotal:  decimal.RequireFromString("50.00"),
			},
			ProductCode: "001", ProductName: "Cano PVC 25mm", GroupCode: "10", SubgroupCode: "20",
		}},
	}

	out, err := NewQuotePDFGenerator("Casa das Conexões").RenderQuote(context.Background(), doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
