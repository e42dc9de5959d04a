package contextkeys

type contextKey string

const (
	SessionKey contextKey = "AuthSession"
	UserIDKey  contextKey = "UserID"
)
