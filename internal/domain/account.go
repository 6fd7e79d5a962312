package domain

import "time"

// Account models anyone who signs in: requesters, handlers and admins alike.
// Authorization is driven entirely by the features attached to the role.
type Account struct {
	ID           int64
	Fullname     string
	Email        string
	PasswordHash string
	Image        string
	PhoneNumber  string
	RoleID       int64
	Role         *Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasFeature reports whether the account's role carries the named capability.
func (a *Account) HasFeature(name string) bool {
	if a == nil || a.Role == nil {
		return false
	}
	for _, f := range a.Role.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}
