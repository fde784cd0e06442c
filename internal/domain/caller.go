package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleSeller   Role = "seller"
	RoleCustomer Role = "customer"
)

// Caller is the authenticated identity attached to every request.
type Caller struct {
	Email string
	Role  Role
}

// IsBackoffice reports whether the caller holds an elevated store role.
func (c Caller) IsBackoffice() bool {
	return c.Role == RoleAdmin || c.Role == RoleEditor || c.Role == RoleSeller
}

// CanConfirm reports whether the caller may confirm a transaction owned by
// ownerEmail. Admins and sellers may confirm any transaction; everyone else
// only their own.
func (c Caller) CanConfirm(ownerEmail string) bool {
	if c.Role == RoleAdmin || c.Role == RoleSeller {
		return true
	}
	return c.Email == ownerEmail
}

// CanView reports whether the caller may read a transaction owned by
// ownerEmail.
func (c Caller) CanView(ownerEmail string) bool {
	return c.IsBackoffice() || c.Email == ownerEmail
}
