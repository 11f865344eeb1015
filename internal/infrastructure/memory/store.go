// Package memory implementa as portas de repositório em memória para os testes
// dos casos de uso e da API. fixtures.go traz os dados e atalhos desses testes.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

type state struct {
	stock      map[string]entity.Stock // chave: productID|locationID
	compras    map[string]entity.PurchaseOrder
	quotes     map[string]entity.Quote
	quoteLines map[string][]entity.QuoteLine
	sales      map[string]entity.Sale
	saleLines  map[string][]entity.SaleLine
	pricing    map[string]entity.Pricing
	products   map[string]entity.Product
	groups     map[string]entity.Group
	subgroups  map[string]entity.Subgroup
	locations  map[string]entity.Location
	clients    map[string]entity.Party
	suppliers  map[string]entity.Party
	users      map[string]entity.User
	positions  map[string]entity.Position
	userPos    map[string]string // userID -> positionID
}

func newState() *state {
	return &state{
		stock:      map[string]entity.Stock{},
		compras:    map[string]entity.PurchaseOrder{},
		quotes:     map[string]entity.Quote{},
		quoteLines: map[string][]entity.QuoteLine{},
		sales:      map[string]entity.Sale{},
		saleLines:  map[string][]entity.SaleLine{},
		pricing:    map[string]entity.Pricing{},
		products:   map[string]entity.Product{},
		groups:     map[string]entity.Group{},
		subgroups:  map[string]entity.Subgroup{},
		locations:  map[string]entity.Location{},
		clients:    map[string]entity.Party{},
		suppliers:  map[string]entity.Party{},
		users:      map[string]entity.User{},
		positions:  map[string]entity.Position{},
		userPos:    map[string]string{},
	}
}

func cloneLines[T any](m map[string][]T) map[string][]T {
	out := make(map[string][]T, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		stock:      maps.Clone(s.stock),
		compras:    maps.Clone(s.compras),
		quotes:     maps.Clone(s.quotes),
		quoteLines: cloneLines(s.quoteLines),
		sales:      maps.Clone(s.sales),
		saleLines:  cloneLines(s.saleLines),
		pricing:    maps.Clone(s.pricing),
		products:   maps.Clone(s.products),
		groups:     maps.Clone(s.groups),
		subgroups:  maps.Clone(s.subgroups),
		locations:  maps.Clone(s.locations),
		clients:    maps.Clone(s.clients),
		suppliers:  maps.Clone(s.suppliers),
		users:      maps.Clone(s.users),
		positions:  maps.Clone(s.positions),
		userPos:    maps.Clone(s.userPos),
	}
}

// Store guarda o estado compartilhado pelos repositórios.
type Store struct {
	mu sync.Mutex
	st *state

	// CodeConflicts faz os próximos N inserts com código falharem com
	// domain.ErrCodeConflict.
	CodeConflicts int
	// Commits conta as transações confirmadas.
	Commits int
}

// NewStore cria um Store vazio.
func NewStore() *Store {
	return &Store{st: newState()}
}

// access dá acesso ao estado: direto dentro de uma tx, com lock fora dela.
type access struct {
	store *Store
	tx    *state
}

func (a access) with(fn func(st *state)) {
	if a.tx != nil {
		fn(a.tx)
		return
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	fn(a.store.st)
}

// takeConflict consome um conflito de código programado. Chamar com o estado acessível.
func (a access) takeConflict() bool {
	if a.store.CodeConflicts > 0 {
		a.store.CodeConflicts--
		return true
	}
	return false
}

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner executa fn sobre uma cópia do estado e a publica só em caso de sucesso.
// Transações são serializadas pelo lock do Store.
type TxRunner struct {
	store *Store
}

// NewTxRunner constrói o runner sobre o Store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{store: s} }

func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.st.clone()
	a := access{store: r.store, tx: snapshot}
	repos := repository.TxRepos{
		Stock:          &StockRepo{a},
		PurchaseOrders: &PurchaseOrderRepo{a},
		Quotes:         &QuoteRepo{a},
		Sales:          &SaleRepo{a},
		Pricing:        &PricingRepo{a},
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.st = snapshot
	r.store.Commits++
	return nil
}

// Repositórios fora de transação.

func (s *Store) Stock() *StockRepo                  { return &StockRepo{access{store: s}} }
func (s *Store) PurchaseOrders() *PurchaseOrderRepo { return &PurchaseOrderRepo{access{store: s}} }
func (s *Store) Quotes() *QuoteRepo                 { return &QuoteRepo{access{store: s}} }
func (s *Store) Sales() *SaleRepo                   { return &SaleRepo{access{store: s}} }
func (s *Store) Pricing() *PricingRepo              { return &PricingRepo{access{store: s}} }
func (s *Store) Products() *ProductRepo             { return &ProductRepo{access{store: s}} }
func (s *Store) Groups() *GroupRepo                 { return &GroupRepo{access{store: s}} }
func (s *Store) Subgroups() *SubgroupRepo           { return &SubgroupRepo{access{store: s}} }
func (s *Store) Locations() *LocationRepo           { return &LocationRepo{access{store: s}} }
func (s *Store) Clients() *PartyRepo                { return &PartyRepo{access{store: s}, clientsKind} }
func (s *Store) Suppliers() *PartyRepo              { return &PartyRepo{access{store: s}, suppliersKind} }
func (s *Store) Users() *UserRepo                   { return &UserRepo{access{store: s}} }
func (s *Store) Positions() *PositionRepo           { return &PositionRepo{access{store: s}} }
