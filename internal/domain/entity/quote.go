package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/shopspring/decimal"
)

// Status de um orçamento. QuoteExpired nunca é persistido: é derivado na leitura.
const (
	QuotePending   = "pendente"
	QuoteApproved  = "aprovado"
	QuoteRejected  = "recusado"
	QuoteConverted = "convertido"
	QuoteExpired   = "vencido"
)

// LineItem é o formato comum das linhas de orçamento e de venda.
type LineItem struct {
	ProductID string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// QuoteLine pertence a exatamente um Quote.
type QuoteLine struct {
	ID      string
	QuoteID string
	LineItem
	CreatedAt time.Time
}

// Quote ("orçamento") é uma proposta de venda conversível em Sale.
type Quote struct {
	ID         string
	Code       string
	ClientID   string
	LocationID string
	Total      decimal.Decimal
	Notes      string
	ValidUntil time.Time // apenas a data é significativa
	HasInvoice bool
	Status     string
	SaleID     string // preenchido após a conversão
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DateOnly zera o horário mantendo ano, mês e dia do próprio fuso de t.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsExpired compara apenas datas: vencido quando a validade é anterior a hoje.
func (q *Quote) IsExpired(today time.Time) bool {
	return DateOnly(q.ValidUntil).Before(DateOnly(today))
}

// EffectiveStatus devolve "vencido" para orçamentos pendentes fora da validade.
func (q *Quote) EffectiveStatus(today time.Time) string {
	if q.Status == QuotePending && q.IsExpired(today) {
		return QuoteExpired
	}
	return q.Status
}

// CanEdit: só orçamentos pendentes podem ter itens e cabeçalho alterados.
func (q *Quote) CanEdit() bool { return q.Status == QuotePending }

// CanDelete: aprovados e convertidos não podem ser excluídos.
func (q *Quote) CanDelete() bool {
	return q.Status == QuotePending || q.Status == QuoteRejected
}

func (q *Quote) Approve(now time.Time) error {
	if q.Status != QuotePending {
		return fmt.Errorf("%w: apenas orçamentos pendentes podem ser aprovados", domain.ErrInvalidState)
	}
	q.Status = QuoteApproved
	q.UpdatedAt = now
	return nil
}

func (q *Quote) Reject(now time.Time) error {
	if q.Status != QuotePending {
		return fmt.Errorf("%w: apenas orçamentos pendentes podem ser recusados", domain.ErrInvalidState)
	}
	q.Status = QuoteRejected
	q.UpdatedAt = now
	return nil
}

// CheckConvertible valida status aprovado e validade >= hoje, sem alterar o orçamento.
func (q *Quote) CheckConvertible(today time.Time) error {
	if q.Status != QuoteApproved {
		return fmt.Errorf("%w: apenas orçamentos aprovados podem ser convertidos em venda", domain.ErrInvalidState)
	}
	if q.IsExpired(today) {
		return fmt.Errorf("%w: não é possível converter orçamento vencido", domain.ErrQuoteExpired)
	}
	return nil
}

// MarkConverted registra a venda gerada e move aprovado -> convertido.
func (q *Quote) MarkConverted(saleID string, now time.Time) error {
	if q.Status != QuoteApproved {
		return fmt.Errorf("%w: apenas orçamentos aprovados podem ser convertidos em venda", domain.ErrInvalidState)
	}
	q.Status = QuoteConverted
	q.SaleID = saleID
	q.UpdatedAt = now
	return nil
}

// SumSubtotals soma os subtotais informados nas linhas.
func SumSubtotals(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// QuoteView é o orçamento com nomes de cliente e local.
type QuoteView struct {
	Quote
	ClientName   string
	ClientEmail  string
	LocationName string
}

// LineView é uma linha (de orçamento ou venda) com os dados do produto.
type LineView struct {
	ID string
	LineItem
	ProductCode  string
	ProductName  string
	GroupCode    string
	SubgroupCode string
}
