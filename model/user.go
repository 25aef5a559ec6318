package model

import "time"

// User roles. Admins own the global catalog; students own per-user chapter
// instances and mock test results.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User account statuses.
const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// User represents a registered user. Credentials are stored and compared as
// plain text with a recovery hint standing in for out-of-band reset; this is
// deliberately prototype-grade, not a credential vault.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// Password and RecoveryHint round-trip through the persisted document;
	// response DTOs keep them off the wire.
	Password     string    `json:"password"`
	RecoveryHint string    `json:"recovery_hint"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	JoinedAt     time.Time `json:"joined_at"`
}

// IsBlocked reports whether the account has been blocked by an admin.
func (u *User) IsBlocked() bool {
	return u.Status == StatusBlocked
}
