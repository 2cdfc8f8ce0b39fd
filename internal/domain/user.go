package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:254;not null;uniqueIndex;uniqueIndex:idx_username_email"`
	Username     string    `json:"username" gorm:"size:150;not null;uniqueIndex;uniqueIndex:idx_username_email"`
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"-" gorm:"size:20;not null;default:user"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Viewer is the identity of the requesting user, passed explicitly into every
// read path that needs per-user annotations. Zero value is anonymous.
type Viewer struct {
	ID            int64
	Authenticated bool
	Admin         bool
}
