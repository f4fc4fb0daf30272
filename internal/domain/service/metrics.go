package service

// AuthMetrics records the outcome of authentication operations.
type AuthMetrics interface {
	// ObserveAuth counts one operation with its outcome ("success" or a business error code).
	ObserveAuth(operation, outcome string)
}
