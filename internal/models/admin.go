package models

import "time"

type AdminStatus string

const (
	AdminPendingVerification AdminStatus = "pending_verification"
	AdminActive              AdminStatus = "active"
)

// Admin is a staff account. EmployeeID stays NULL until the approver verifies
// the registration.
type Admin struct {
	ID         string  `gorm:"column:id;type:uuid;primaryKey" json:"admin_id"`
	EmployeeID *string `gorm:"column:employee_id;type:text;uniqueIndex" json:"employee_id"`

	Name         string `gorm:"column:name;type:text;not null" json:"name"`
	Email        string `gorm:"column:email;type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:text;not null" json:"-"`
	Department   string `gorm:"column:department;type:text" json:"department,omitempty"`
	Role         string `gorm:"column:role;type:text;default:admin" json:"role"`

	Status              AdminStatus `gorm:"column:status;type:text;index" json:"status"`
	EmailVerified       bool        `gorm:"column:email_verified" json:"email_verified"`
	VerificationToken   *string     `gorm:"column:verification_token;type:text;index" json:"-"`
	VerificationExpires *time.Time  `gorm:"column:verification_expires;type:timestamptz" json:"-"`

	CreatedAt time.Time  `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
	LastLogin *time.Time `gorm:"column:last_login;type:timestamptz" json:"last_login"`
}

func (Admin) TableName() string { return "admins" }

func (a Admin) Employee() string {
	if a.EmployeeID == nil {
		return ""
	}
	return *a.EmployeeID
}
