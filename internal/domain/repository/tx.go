package repository

import "context"

// TxRepos agrupa os repositórios atados a uma mesma transação.
type TxRepos struct {
	Stock          StockRepository
	PurchaseOrders PurchaseOrderRepository
	Quotes         QuoteRepository
	Sales          SaleRepository
	Pricing        PricingRepository
}

// TxRunner executa fn dentro de uma transação: Commit se fn retorna nil,
// Rollback caso contrário. Garante atomicidade dos fluxos de estoque.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
