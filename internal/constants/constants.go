package constants

// Context keys set by the auth middleware
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyUserRole = "user_role"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MinPasswordLength is the minimum accepted password length on registration
const MinPasswordLength = 8
