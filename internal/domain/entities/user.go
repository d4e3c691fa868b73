package entities

import "time"

// Role is the authorization role of a user.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User represents a registered account.
type User struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     string
	Role             Role
	FailedLoginCount int        // consecutive failed password checks
	LockoutEnd       *time.Time // account is locked until this moment (nullable)
	CreatedAt        time.Time
}

// NewUser creates a customer account with the given credentials.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}
}

// IsLockedOut reports whether the lockout window is still open at now.
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockoutEnd != nil && now.Before(*u.LockoutEnd)
}

// RegisterFailedLogin counts a failed password check. Once maxAttempts is
// reached the account is locked for lockout and the counter starts over.
// It returns true if this failure tripped the lock.
func (u *User) RegisterFailedLogin(now time.Time, maxAttempts int, lockout time.Duration) bool {
	if maxAttempts <= 0 {
		return false
	}

	u.FailedLoginCount++
	if u.FailedLoginCount < maxAttempts {
		return false
	}

	end := now.Add(lockout)
	u.LockoutEnd = &end
	u.FailedLoginCount = 0
	return true
}

// ResetFailedLogins clears the failure counter and any expired lockout.
func (u *User) ResetFailedLogins() {
	u.FailedLoginCount = 0
	u.LockoutEnd = nil
}
