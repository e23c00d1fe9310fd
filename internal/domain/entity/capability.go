package entity

import (
	"fmt"
	"strings"
)

// Capability conjunto fijo de módulos que un rol puede usar.
type Capability uint16

const (
	CapPOS Capability = 1 << iota
	CapInventory
	CapPurchasing
	CapAssembly
	CapCustomers
	CapSessions
	CapBanking

	CapAll = CapPOS | CapInventory | CapPurchasing | CapAssembly | CapCustomers | CapSessions | CapBanking
)

var capabilityNames = map[string]Capability{
	"pos":        CapPOS,
	"inventory":  CapInventory,
	"purchasing": CapPurchasing,
	"assembly":   CapAssembly,
	"customers":  CapCustomers,
	"sessions":   CapSessions,
	"banking":    CapBanking,
}

// Has verifica que c incluya todos los flags de want.
func (c Capability) Has(want Capability) bool { return c&want == want }

// ParseCapabilities convierte "pos,inventory" en flags. Nombres desconocidos son error.
func ParseCapabilities(list string) (Capability, error) {
	var c Capability
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		flag, ok := capabilityNames[name]
		if !ok {
			return 0, fmt.Errorf("capacidad desconocida: %q", name)
		}
		c |= flag
	}
	return c, nil
}

// RoleCapabilities mapa rol -> capacidades, resuelto una vez al arrancar.
type RoleCapabilities map[string]Capability

// ParseRoleCapabilities interpreta "cashier=pos,customers;warehouse=inventory".
// admin siempre recibe CapAll.
func ParseRoleCapabilities(raw string) (RoleCapabilities, error) {
	rc := RoleCapabilities{RoleAdmin: CapAll}
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		role, caps, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("entrada de capacidades inválida: %q", entry)
		}
		role = strings.TrimSpace(role)
		if role == RoleAdmin {
			continue
		}
		c, err := ParseCapabilities(caps)
		if err != nil {
			return nil, fmt.Errorf("rol %s: %w", role, err)
		}
		rc[role] = c
	}
	return rc, nil
}

// For devuelve las capacidades del rol (0 si no existe).
func (rc RoleCapabilities) For(role string) Capability { return rc[role] }

// Actor usuario que ejecuta una operación, tal como lo entrega el proveedor de identidad.
type Actor struct {
	UserID string
	Role   string
	Caps   Capability
}

// IsAdmin indica rol administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
