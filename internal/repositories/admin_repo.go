package repositories

// AdminRepository defines the interface for allowlist access. Admin status
// is derived solely from row presence.
type AdminRepository interface {
	IsAdmin(userID string) (bool, error)
	EmailByUsername(username string) (string, error)
}
