package entities

import (
	"strings"
	"time"
)

type Role string

const (
	RoleChofer         Role = "CHOFER"
	RoleMecanico       Role = "MECANICO"
	RoleSupervisor     Role = "SUPERVISOR"
	RoleAdministrativo Role = "ADMINISTRATIVO"
	RoleGuardia        Role = "GUARDIA"
	RoleAdmin          Role = "ADMIN"
)

// Employee is a workshop user (driver, mechanic, supervisor...).
//
// Storage model (DynamoDB):
//   - PK: rut
//   - GSI username-index: username
type Employee struct {
	RUT          string `json:"rut"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	WorkshopID   int64  `json:"workshop_id"`
	Region       string `json:"region,omitempty"`
	Schedule     string `json:"schedule,omitempty"`
	Active       bool   `json:"active"`
}

// Label is the human label used in the order log author tag.
func (r Role) Label() string {
	switch r {
	case RoleMecanico:
		return "Mecánico"
	case RoleSupervisor:
		return "Supervisor"
	case RoleChofer:
		return "Chofer"
	case RoleAdministrativo:
		return "Administrativo"
	case RoleGuardia:
		return "Guardia"
	case RoleAdmin:
		return "Administrador"
	case "":
		return "Usuario"
	default:
		s := strings.ToLower(string(r))
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// CanOperateOrders reports whether the role may move orders through the
// workshop statuses.
func (r Role) CanOperateOrders() bool {
	switch r {
	case RoleMecanico, RoleSupervisor, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanOperateGate reports whether the role may register site entries and
// exits.
func (r Role) CanOperateGate() bool {
	switch r {
	case RoleGuardia, RoleSupervisor, RoleAdmin:
		return true
	default:
		return false
	}
}

func (e Employee) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if e.Role == r {
			return true
		}
	}
	return false
}

// AuthorTag formats "[Supervisor Nicolás]" for the order log.
func (e Employee) AuthorTag() string {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		name = e.Username
	}
	return "[" + e.Role.Label() + " " + name + "]"
}

// SessionClaims is the authenticated identity carried by an access token.
type SessionClaims struct {
	TokenID    string
	RUT        string
	Username   string
	Name       string
	Role       Role
	WorkshopID int64
	ExpiresAt  time.Time
}

func (c SessionClaims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// Employee rebuilds the acting employee from the token claims.
func (c SessionClaims) Employee() Employee {
	return Employee{RUT: c.RUT, Name: c.Name, Role: c.Role, Username: c.Username, WorkshopID: c.WorkshopID, Active: true}
}
