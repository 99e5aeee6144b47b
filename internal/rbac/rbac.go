package rbac

import (
	"errors"
	"time"
)

// PermissionAll is the wildcard capability that satisfies every permission
// check.
const PermissionAll = "all"

// BuiltinRole identifies the seeded system roles. Role-name strings are
// resolved to this enum once, at the authorization boundary, instead of being
// compared ad hoc at every call site.
type BuiltinRole int

const (
	RoleCustom BuiltinRole = iota
	RoleAdmin
	RoleAccountant
	RoleUser
)

const (
	RoleNameAdmin      = "admin"
	RoleNameAccountant = "accountant"
	RoleNameUser       = "user"
)

func ParseBuiltinRole(name string) BuiltinRole {
	switch name {
	case RoleNameAdmin:
		return RoleAdmin
	case RoleNameAccountant:
		return RoleAccountant
	case RoleNameUser:
		return RoleUser
	default:
		return RoleCustom
	}
}

func (r BuiltinRole) String() string {
	switch r {
	case RoleAdmin:
		return RoleNameAdmin
	case RoleAccountant:
		return RoleNameAccountant
	case RoleUser:
		return RoleNameUser
	default:
		return "custom"
	}
}

// Capabilities returns the hardcoded capability set of a builtin role, or nil
// when the role's capabilities live in the permission store. Admin holds the
// wildcard here regardless of its seeded grant list.
func (r BuiltinRole) Capabilities() []string {
	if r == RoleAdmin {
		return []string{PermissionAll}
	}
	return nil
}

type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Module      string `json:"module"`
}

var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleNameTaken      = errors.New("role name already exists")
	ErrSystemRole         = errors.New("system roles cannot be deleted")
	ErrPermissionNotFound = errors.New("permission not found")
)
