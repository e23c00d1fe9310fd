// Package memory implementa los repositorios en memoria. Las transacciones se
// serializan con un mutex y el estado se restaura desde una copia si fn falla.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

type state struct {
	categories     map[string]entity.Category
	items          map[string]entity.Item
	itemLogs       []entity.ItemLog
	money          []entity.MoneyTransaction
	sessions       map[string]entity.CashRegisterSession
	accessRequests map[string]entity.SessionAccessRequest
	amendments     []entity.SessionAmendment
	sales          map[string]entity.Sale
	saleItems      []entity.SaleItem
	warranties     []entity.Warranty
	customers      map[string]entity.Customer
	bankAccounts   map[string]entity.BankAccount
	orders         map[string]entity.PurchaseOrder
	orderItems     []entity.PurchaseOrderItem
	assemblies     map[string]entity.Assembly
	adjustments    map[string]entity.StockAdjustment
	users          map[string]entity.User
}

func newState() *state {
	return &state{
		categories:     map[string]entity.Category{},
		items:          map[string]entity.Item{},
		sessions:       map[string]entity.CashRegisterSession{},
		accessRequests: map[string]entity.SessionAccessRequest{},
		sales:          map[string]entity.Sale{},
		customers:      map[string]entity.Customer{},
		bankAccounts:   map[string]entity.BankAccount{},
		orders:         map[string]entity.PurchaseOrder{},
		assemblies:     map[string]entity.Assembly{},
		adjustments:    map[string]entity.StockAdjustment{},
		users:          map[string]entity.User{},
	}
}

func cloneMap[V any](m map[string]V, cp func(V) V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = cp(v)
	}
	return out
}

func same[V any](v V) V { return v }

func (st *state) clone() *state {
	return &state{
		categories:     cloneMap(st.categories, same[entity.Category]),
		items:          cloneMap(st.items, same[entity.Item]),
		itemLogs:       append([]entity.ItemLog(nil), st.itemLogs...),
		money:          append([]entity.MoneyTransaction(nil), st.money...),
		sessions:       cloneMap(st.sessions, copySession),
		accessRequests: cloneMap(st.accessRequests, copyAccessRequest),
		amendments:     append([]entity.SessionAmendment(nil), st.amendments...),
		sales:          cloneMap(st.sales, same[entity.Sale]),
		saleItems:      append([]entity.SaleItem(nil), st.saleItems...),
		warranties:     append([]entity.Warranty(nil), st.warranties...),
		customers:      cloneMap(st.customers, same[entity.Customer]),
		bankAccounts:   cloneMap(st.bankAccounts, same[entity.BankAccount]),
		orders:         cloneMap(st.orders, copyOrder),
		orderItems:     append([]entity.PurchaseOrderItem(nil), st.orderItems...),
		assemblies:     cloneMap(st.assemblies, copyAssembly),
		adjustments:    cloneMap(st.adjustments, same[entity.StockAdjustment]),
		users:          cloneMap(st.users, same[entity.User]),
	}
}

// Store base de datos en memoria para tests y STORAGE_DRIVER=memory.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// do ejecuta fn sobre el estado. Dentro de una transacción el lock ya está tomado.
func (s *Store) do(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

// Repos repositorios fuera de transacción: cada llamada toma el lock.
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) repository.Repos {
	b := base{s: s, inTx: inTx}
	return repository.Repos{
		Categories:     &categoryRepo{b},
		Items:          &itemRepo{b},
		ItemLogs:       &itemLogRepo{b},
		Money:          &moneyRepo{b},
		Sessions:       &sessionRepo{b},
		Sales:          &saleRepo{b},
		Warranties:     &warrantyRepo{b},
		Customers:      &customerRepo{b},
		BankAccounts:   &bankAccountRepo{b},
		PurchaseOrders: &purchaseOrderRepo{b},
		Assemblies:     &assemblyRepo{b},
		Adjustments:    &adjustmentRepo{b},
		Users:          &userRepo{b},
	}
}

type base struct {
	s    *Store
	inTx bool
}

func (b base) do(fn func(st *state) error) error { return b.s.do(b.inTx, fn) }

// TxRunner serializa transacciones sobre el Store.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con todos los repos bajo el lock del store. Si fn devuelve error
// o hace panic el estado vuelve a la copia tomada al inicio.
func (t *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	snapshot := t.s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			t.s.st = snapshot
			panic(p)
		}
		if err != nil {
			t.s.st = snapshot
		}
	}()
	return fn(t.s.repos(true))
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func sortedByCreation[V any](m map[string]V, key func(V) (int64, string)) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, idi := key(out[i])
		tj, idj := key(out[j])
		if ti != tj {
			return ti < tj
		}
		return idi < idj
	})
	return out
}
