// Package identity holds the account shape shared by the stores, the rule set
// and the HTTP layer.
package identity

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account kinds. The zero value is not a valid role.
type Role int

const (
	RoleApplicant Role = iota + 1
	RoleCompany
)

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleApplicant:
		return "applicant"
	case RoleCompany:
		return "company"
	default:
		return ""
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleCompany
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRole maps a wire name to a Role.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "applicant":
		return RoleApplicant, nil
	case "company":
		return RoleCompany, nil
	default:
		return 0, fmt.Errorf("unknown role %q", raw)
	}
}

// Account is a registered user. PasswordHash never leaves the users package
// in a response.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	IsStaff      bool
	CreatedAt    time.Time
}

// Is reports whether a and other refer to the same stored account.
func (a Account) Is(other Account) bool {
	return a.ID != "" && a.ID == other.ID
}

// IsApplicant reports whether the account has the applicant role.
func (a Account) IsApplicant() bool { return a.Role == RoleApplicant }

// IsCompany reports whether the account has the company role.
func (a Account) IsCompany() bool { return a.Role == RoleCompany }
