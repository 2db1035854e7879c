package user

import (
	"time"

	"shodart.org/internal/auth"
)

// User is a staff account of the admin panel.
type User struct {
	ID                 string
	Login              string
	PasswordHash       string
	Role               auth.Role
	CanEditProducts    bool
	CanManageLogistics bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateInput carries the fields accepted when creating an account.
type CreateInput struct {
	Login              string
	Password           string
	Role               auth.Role
	CanEditProducts    bool
	CanManageLogistics bool
}

// UpdateInput carries optional fields for a partial account update.
type UpdateInput struct {
	Login              *string
	Password           *string
	Role               *auth.Role
	CanEditProducts    *bool
	CanManageLogistics *bool
}
