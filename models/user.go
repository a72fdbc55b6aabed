package models

// UserRole defines allowed roles for staff accounts
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// User is a staff account record. Sign-in itself is served by the configured
// administrator credential; this collection only stores account details.
type User struct {
	Record
	Email        string   `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Name         string   `json:"name" gorm:"not null"`
	PasswordHash string   `json:"-" gorm:"not null"`
	Role         UserRole `json:"role" gorm:"size:16;not null"`
	IsActive     bool     `json:"is_active"`
}

func (User) TableName() string { return "user" }
