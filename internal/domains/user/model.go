package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the domain entity, mapping 1:1 to the users table.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        *string   `db:"email" json:"email,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"` // Never expose in JSON

	Role        Role         `db:"role" json:"role"`
	Permissions []Permission `db:"permissions" json:"permissions"`
	IsActive    bool         `db:"is_active" json:"is_active"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Role enum - exactly two roles exist in this system.
type Role string

const (
	RoleAdmin Role = "admin" // full access, every permission implied
	RoleStaff Role = "staff" // access limited to the stored permission set
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

func (r Role) String() string {
	return string(r)
}

// Permission is a closed set of section tags. The legacy system kept these
// as freeform strings in a JSON column; unknown tags are now rejected at
// validation time.
type Permission string

const (
	PermissionDailyReport Permission = "daily_report" // submit and manage daily reports
	PermissionInventory   Permission = "inventory"    // stock items and adjustments
	PermissionManageUsers Permission = "manage_users" // user administration
	PermissionDashboard   Permission = "dashboard"    // aggregated totals and charts
	PermissionS3          Permission = "s3"           // S3 channel view
	PermissionMSR         Permission = "msr"          // MSR channel view
	PermissionS3MSR       Permission = "s3_msr"       // combined channel view
)

// AllPermissions returns every assignable permission tag.
func AllPermissions() []Permission {
	return []Permission{
		PermissionDailyReport,
		PermissionInventory,
		PermissionManageUsers,
		PermissionDashboard,
		PermissionS3,
		PermissionMSR,
		PermissionS3MSR,
	}
}

// IsValid reports whether the tag belongs to the closed set.
func (p Permission) IsValid() bool {
	for _, known := range AllPermissions() {
		if p == known {
			return true
		}
	}
	return false
}

func (p Permission) String() string {
	return string(p)
}

// Grants decides whether a caller with the given role and granted tags holds
// perm. Admin short-circuits to true for every tag regardless of the stored
// set.
func Grants(role Role, granted []string, perm Permission) bool {
	if role == RoleAdmin {
		return true
	}
	for _, g := range granted {
		if g == string(perm) {
			return true
		}
	}
	return false
}

// HasPermission is the entity-side equivalent of Grants.
func (u *User) HasPermission(perm Permission) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionStrings returns the stored set as plain strings for JWT claims.
func (u *User) PermissionStrings() []string {
	out := make([]string, 0, len(u.Permissions))
	for _, p := range u.Permissions {
		out = append(out, string(p))
	}
	return out
}

// IsProtected reports whether the account must never be deleted. The seeded
// "admin" account is the recovery path into the system.
func (u *User) IsProtected() bool {
	return u.Username == "admin"
}
