package entity

import "time"

// BankAccount cuenta bancaria destino de pagos por transferencia o tarjeta.
// El saldo se deriva de sus MoneyTransaction.
type BankAccount struct {
	ID        string
	Name      string
	Bank      string
	Number    string
	Active    bool
	CreatedAt time.Time
}
