package utils

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
)
