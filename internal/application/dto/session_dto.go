package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// OpenSessionRequest body para POST /sessions/open.
type OpenSessionRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// CloseSessionRequest body para POST /sessions/:id/close.
type CloseSessionRequest struct {
	ActualCash decimal.Decimal `json:"actual_cash"`
}

// AccessRequestCreate body para POST /sessions/:id/access-requests.
type AccessRequestCreate struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// AccessRequestResolve body para POST /access-requests/:id/resolve.
type AccessRequestResolve struct {
	Approve bool `json:"approve"`
}

// AmendSessionRequest body para POST /sessions/:id/amend.
type AmendSessionRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	DebtRepaid     decimal.Decimal `json:"debt_repaid"`
	ActualCash     decimal.Decimal `json:"actual_cash"`
	Reason         string          `json:"reason" validate:"required,max=500"`
}

// SessionResponse sesión de caja con su diferencia si está cerrada.
type SessionResponse struct {
	ID             string           `json:"id"`
	Status         string           `json:"status"`
	OpenedBy       string           `json:"opened_by"`
	ClosedBy       string           `json:"closed_by,omitempty"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	CashSales      decimal.Decimal  `json:"cash_sales"`
	DebtRepaid     decimal.Decimal  `json:"debt_repaid"`
	ExpectedCash   decimal.Decimal  `json:"expected_cash"`
	ActualCash     *decimal.Decimal `json:"actual_cash,omitempty"`
	Difference     *decimal.Decimal `json:"difference,omitempty"`
	OpenedAt       time.Time        `json:"opened_at"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
}

// AccessRequestResponse solicitud de acceso.
type AccessRequestResponse struct {
	ID          string     `json:"id"`
	SessionID   string     `json:"session_id"`
	RequestedBy string     `json:"requested_by"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SessionTotalsDTO valores corregibles.
type SessionTotalsDTO struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CashSales      decimal.Decimal `json:"cash_sales"`
	DebtRepaid     decimal.Decimal `json:"debt_repaid"`
	ActualCash     decimal.Decimal `json:"actual_cash"`
}

// AmendmentResponse corrección auditada.
type AmendmentResponse struct {
	ID              string           `json:"id"`
	SessionID       string           `json:"session_id"`
	AccessRequestID string           `json:"access_request_id,omitempty"`
	Old             SessionTotalsDTO `json:"old"`
	New             SessionTotalsDTO `json:"new"`
	Reason          string           `json:"reason"`
	ActorID         string           `json:"actor_id"`
	CreatedAt       time.Time        `json:"created_at"`
}

// MoneyTransactionResponse movimiento de dinero.
type MoneyTransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	SourceType    string          `json:"source_type"`
	SourceID      string          `json:"source_id"`
	SessionID     string          `json:"cash_register_session_id,omitempty"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	UserID        string          `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToSessionResponse mapea la entidad.
func ToSessionResponse(s *entity.CashRegisterSession) SessionResponse {
	return SessionResponse{
		ID:             s.ID,
		Status:         s.Status,
		OpenedBy:       s.OpenedBy,
		ClosedBy:       s.ClosedBy,
		OpeningBalance: s.OpeningBalance,
		CashSales:      s.CashSales,
		DebtRepaid:     s.DebtRepaid,
		ExpectedCash:   s.ExpectedCash,
		ActualCash:     s.ActualCash,
		Difference:     s.Difference(),
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
	}
}

// ToAccessRequestResponse mapea la entidad.
func ToAccessRequestResponse(r *entity.SessionAccessRequest) AccessRequestResponse {
	return AccessRequestResponse{
		ID:          r.ID,
		SessionID:   r.SessionID,
		RequestedBy: r.RequestedBy,
		Reason:      r.Reason,
		Status:      r.Status,
		ResolvedBy:  r.ResolvedBy,
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
	}
}

func toTotalsDTO(t entity.SessionTotals) SessionTotalsDTO {
	return SessionTotalsDTO{
		OpeningBalance: t.OpeningBalance,
		CashSales:      t.CashSales,
		DebtRepaid:     t.DebtRepaid,
		ActualCash:     t.ActualCash,
	}
}

// ToAmendmentResponse mapea la entidad.
func ToAmendmentResponse(a *entity.SessionAmendment) AmendmentResponse {
	return AmendmentResponse{
		ID:              a.ID,
		SessionID:       a.SessionID,
		AccessRequestID: a.AccessRequestID,
		Old:             toTotalsDTO(a.Old),
		New:             toTotalsDTO(a.New),
		Reason:          a.Reason,
		ActorID:         a.ActorID,
		CreatedAt:       a.CreatedAt,
	}
}

// ToMoneyTransactionResponses mapea una lista de movimientos.
func ToMoneyTransactionResponses(list []*entity.MoneyTransaction) []MoneyTransactionResponse {
	out := make([]MoneyTransactionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMoneyTransactionResponse(m))
	}
	return out
}

// ToMoneyTransactionResponse mapea la entidad.
func ToMoneyTransactionResponse(m *entity.MoneyTransaction) MoneyTransactionResponse {
	return MoneyTransactionResponse{
		ID:            m.ID,
		Type:          m.Type,
		Amount:        m.Amount,
		SourceType:    m.SourceType,
		SourceID:      m.SourceID,
		SessionID:     m.CashRegisterSessionID,
		Category:      m.Category,
		Description:   m.Description,
		ReferenceType: m.Reference.Kind.String(),
		ReferenceID:   m.Reference.ID,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
}
