package models

// User is the identity resolved from a validated bearer token.
// It is reconstructed per request and never persisted.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AdminEntry is a row in the admin allowlist. Presence of a row for a
// user id is the sole admin-authorization signal.
type AdminEntry struct {
	UserID   string `json:"user_id" gorm:"column:user_id;primaryKey;type:varchar(36)"`
	Email    string `json:"email,omitempty" gorm:"type:varchar(255)"`
	Username string `json:"username,omitempty" gorm:"type:varchar(100)"`
}

// TableName overrides the default pluralization ("admin_entries").
func (AdminEntry) TableName() string {
	return "admins"
}

// LoginRequest carries the credentials for /auth/login. Either email or
// identifier must be set; identifier may be an email or an admin username.
type LoginRequest struct {
	Email      string `json:"email"`
	Identifier string `json:"identifier"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
