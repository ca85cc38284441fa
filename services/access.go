package services

import "github.com/yeremiapane/delight-cuisine/models"

type Role string

const (
	RoleCustomer Role = models.RoleCustomer
	RoleAdmin    Role = models.RoleAdmin
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Actor is the authenticated caller of an operation. The zero value is an
// anonymous caller.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func (a Actor) Anonymous() bool { return a.UserID == 0 }

// RequireRole fails with ErrForbidden when the actor does not hold required.
func RequireRole(actor Actor, required Role) error {
	if actor.Role != required {
		return newError(KindForbidden, "%s privileges required for this action", required)
	}
	return nil
}

func RequireAdmin(actor Actor) error {
	return RequireRole(actor, RoleAdmin)
}
