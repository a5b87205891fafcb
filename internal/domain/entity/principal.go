package entity

import "github.com/Shrey0428/ExoticBill/internal/domain/enum"

// Principal is the authenticated caller of a request
type Principal struct {
	Username string    `json:"username"`
	Role     enum.Role `json:"role"`
}

// IsAdmin reports whether the principal may use the back-office operations
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == enum.RoleAdmin
}
