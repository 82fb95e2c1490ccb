package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "civil-defense-app context key " + string(c)
}

const (
	// RequestIDKey carries the X-Request-ID of the outgoing backend call.
	RequestIDKey = contextKey("requestID")
	// OperationKey names the Domain Operation being executed (e.g. "fetchNews").
	OperationKey = contextKey("operation")
	// UserIDKey carries the user id of the active session.
	UserIDKey = contextKey("userID")
	// ComponentKey names the component emitting a log line.
	ComponentKey = contextKey("component")
)
