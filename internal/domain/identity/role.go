package identity

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleChef    Role = "chef"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func NewRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleChef, RoleManager, RoleAdmin:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}
