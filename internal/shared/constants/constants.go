package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyScopes    = "scopes"
	ContextKeyRequestID = "request_id"

	// Auth scopes
	ScopeProvider = "provider"

	// Database table names
	TableOffers   = "offers"
	TablePayments = "payments"

	// Snapshot limits
	TopTagsLimit    = 2
	RecentPaymentsN = 5
)
