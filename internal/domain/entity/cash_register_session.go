package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la sesión de caja.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// Campos acumulativos de la sesión que el ledger puede incrementar.
type SessionField string

const (
	SessionCashSales  SessionField = "cash_sales"
	SessionDebtRepaid SessionField = "debt_repaid"
)

// CashRegisterSession periodo entre apertura y cierre de un cajón de dinero.
// Invariante: ExpectedCash = OpeningBalance + CashSales + DebtRepaid.
type CashRegisterSession struct {
	ID             string
	OpenedBy       string
	ClosedBy       string
	OpeningBalance decimal.Decimal
	CashSales      decimal.Decimal
	DebtRepaid     decimal.Decimal
	ExpectedCash   decimal.Decimal
	ActualCash     *decimal.Decimal // se fija al cerrar
	Status         string
	OpenedAt       time.Time
	ClosedAt       *time.Time
}

// IsOpen indica si la sesión acepta ventas.
func (s *CashRegisterSession) IsOpen() bool { return s.Status == SessionOpen }

// Recompute restablece ExpectedCash a partir de los acumulados.
func (s *CashRegisterSession) Recompute() {
	s.ExpectedCash = s.OpeningBalance.Add(s.CashSales).Add(s.DebtRepaid)
}

// Difference actual - esperado; nil si la sesión no está cerrada.
func (s *CashRegisterSession) Difference() *decimal.Decimal {
	if s.ActualCash == nil {
		return nil
	}
	d := s.ActualCash.Sub(s.ExpectedCash)
	return &d
}

// Estados de una solicitud de acceso para modificar una sesión cerrada.
const (
	AccessPending  = "pending"
	AccessApproved = "approved"
	AccessRejected = "rejected"
	AccessUsed     = "used"
)

// SessionAccessRequest permiso (de un admin) para que un usuario corrija una sesión cerrada.
type SessionAccessRequest struct {
	ID          string
	SessionID   string
	RequestedBy string
	Reason      string
	Status      string
	ResolvedBy  string
	ResolvedAt  *time.Time
	CreatedAt   time.Time
}

// SessionTotals valores financieros corregibles de una sesión cerrada.
type SessionTotals struct {
	OpeningBalance decimal.Decimal
	CashSales      decimal.Decimal
	DebtRepaid     decimal.Decimal
	ActualCash     decimal.Decimal
}

// SessionAmendment auditoría inmutable de una corrección sobre una sesión cerrada.
type SessionAmendment struct {
	ID              string
	SessionID       string
	AccessRequestID string // vacío si la hizo un admin
	Old             SessionTotals
	New             SessionTotals
	Reason          string
	ActorID         string
	CreatedAt       time.Time
}

// Totals devuelve los valores corregibles actuales.
func (s *CashRegisterSession) Totals() SessionTotals {
	t := SessionTotals{
		OpeningBalance: s.OpeningBalance,
		CashSales:      s.CashSales,
		DebtRepaid:     s.DebtRepaid,
	}
	if s.ActualCash != nil {
		t.ActualCash = *s.ActualCash
	}
	return t
}
