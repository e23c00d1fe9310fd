package entity

import "time"

const (
	RoleAdmin     = "admin"
	RoleCashier   = "cashier"
	RoleWarehouse = "warehouse"
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// ValidRole indica si el rol es uno de los que el POS reconoce.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCashier, RoleWarehouse:
		return true
	}
	return false
}

// User operador del POS. PasswordHash es bcrypt; las capacidades salen del rol.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsActive() bool { return u.Status == UserActive }

