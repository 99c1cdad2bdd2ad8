package accounts

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// User is the account record. Password and PasswordConfirm are input-only:
// they never reach the database and are cleared before any response. The
// hash, soft-delete flag and reset-token fields never serialize.
type User struct {
	ID                   string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string     `gorm:"not null" json:"name"`
	Email                string     `gorm:"uniqueIndex;not null" json:"email"`
	Password             string     `gorm:"-" json:"password,omitempty"`
	PasswordConfirm      string     `gorm:"-" json:"password_confirm,omitempty"`
	HashedPassword       string     `json:"-"`
	Role                 string     `gorm:"default:'user'" json:"role"`
	Photo                string     `gorm:"default:'default.jpg'" json:"photo"`
	Active               *bool      `gorm:"default:true" json:"-"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "accounts.users" }

// Sanitize strips the plaintext credential inputs so the struct is safe to
// serialize back to the client.
func (u *User) Sanitize() {
	u.Password = ""
	u.PasswordConfirm = ""
}

var lowercase = cases.Lower(language.Und)

// NormalizeEmail trims and case-folds an email address so uniqueness and
// lookups are case-insensitive, including for non-ASCII mailboxes.
func NormalizeEmail(email string) string {
	return lowercase.String(strings.TrimSpace(email))
}
