package memory

import (
	"time"

	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Cadastro básico criado por SeedBasics.
const (
	ProductCano      = "P1"
	ProductJoelho    = "P2"
	LocationLoja     = "L1"
	LocationDeposito = "L2"
	ClientMaria      = "C1"
	SupplierAcme     = "S1"
)

// SeedBasics cria dois produtos, dois locais, um cliente e um fornecedor.
func (s *Store) SeedBasics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	st := s.st
	st.groups["G1"] = entity.Group{ID: "G1", Code: "10", Name: "Hidráulica", CreatedAt: now, UpdatedAt: now}
	st.subgroups["SG1"] = entity.Subgroup{ID: "SG1", Code: "20", Name: "Conexões", GroupID: "G1", CreatedAt: now, UpdatedAt: now}
	st.products[ProductCano] = entity.Product{ID: ProductCano, Code: "001", GroupID: "G1", SubgroupID: "SG1", Name: "Cano PVC 25mm", Unit: entity.UnitMeters, CreatedAt: now, UpdatedAt: now}
	st.products[ProductJoelho] = entity.Product{ID: ProductJoelho, Code: "002", Name: "Joelho 90", Unit: entity.UnitPiece, CreatedAt: now, UpdatedAt: now}
	st.locations[LocationLoja] = entity.Location{ID: LocationLoja, Name: "Loja Centro", CreatedAt: now, UpdatedAt: now}
	st.locations[LocationDeposito] = entity.Location{ID: LocationDeposito, Name: "Depósito", CreatedAt: now, UpdatedAt: now}
	st.clients[ClientMaria] = entity.Party{ID: ClientMaria, Name: "Maria Souza", Email: "maria@example.com", IsActive: true, CreatedAt: now, UpdatedAt: now}
	st.suppliers[SupplierAcme] = entity.Party{ID: SupplierAcme, Name: "Acme Materiais", IsActive: true, CreatedAt: now, UpdatedAt: now}
}

// PutPosition grava um cargo diretamente.
func (s *Store) PutPosition(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.st.positions[id] = entity.Position{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
}

// PutStock grava um saldo diretamente (preparação de testes).
func (s *Store) PutStock(productID, locationID, qty string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	key := stockKey(productID, locationID)
	st, ok := s.st.stock[key]
	if !ok {
		st = entity.Stock{ID: "ST-" + key, ProductID: productID, LocationID: locationID, CreatedAt: now}
	}
	st.Quantity = decimal.RequireFromString(qty)
	st.UpdatedAt = now
	s.st.stock[key] = st
}

// StockOf devolve o saldo e se a linha existe.
func (s *Store) StockOf(productID, locationID string) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.st.stock[stockKey(productID, locationID)]
	return st.Quantity, ok
}

// PutPurchaseOrder grava uma compra diretamente.
func (s *Store) PutPurchaseOrder(po entity.PurchaseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.compras[po.ID] = po
}

// PutQuote grava um orçamento e seus itens diretamente.
func (s *Store) PutQuote(q entity.Quote, lines ...entity.QuoteLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.quotes[q.ID] = q
	s.st.quoteLines[q.ID] = lines
}
