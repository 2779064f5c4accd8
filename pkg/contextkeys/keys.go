package contextkeys

type contextKey string

const (
	InstallerIDKey contextKey = "InstallerID"
	RequestIDKey   contextKey = "RequestID"
)
