package entity

import "fmt"

// ReferenceKind tipo de entidad que causó un registro de auditoría.
type ReferenceKind int

const (
	RefNone ReferenceKind = iota
	RefSale
	RefPurchaseOrder
	RefAssembly
	RefStockAdjustment
	RefCustomerPayment
	RefCashRegisterSession
)

// String devuelve el nombre persistido del tipo de referencia.
func (k ReferenceKind) String() string {
	switch k {
	case RefNone:
		return ""
	case RefSale:
		return "sale"
	case RefPurchaseOrder:
		return "purchase_order"
	case RefAssembly:
		return "assembly"
	case RefStockAdjustment:
		return "stock_adjustment"
	case RefCustomerPayment:
		return "customer_payment"
	case RefCashRegisterSession:
		return "cash_register_session"
	}
	return fmt.Sprintf("reference(%d)", int(k))
}

// ParseReferenceKind es la inversa de String.
func ParseReferenceKind(s string) (ReferenceKind, error) {
	for k := RefNone; k <= RefCashRegisterSession; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return RefNone, fmt.Errorf("tipo de referencia desconocido: %q", s)
}

// Reference apunta de forma débil a la entidad que originó un ItemLog o MoneyTransaction.
type Reference struct {
	Kind ReferenceKind
	ID   string
}

// Ref construye una referencia.
func Ref(kind ReferenceKind, id string) Reference {
	return Reference{Kind: kind, ID: id}
}

// IsZero indica que no hay referencia.
func (r Reference) IsZero() bool { return r.Kind == RefNone }
