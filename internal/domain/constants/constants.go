// Package constants contains values shared across layers.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Pub/Sub message attributes
const (
	AttrEventID   = "event_id"
	AttrEventType = "event_type"
	AttrRequestID = "request_id"
	AttrUserID    = "user_id"
)

// EventTypeOTPIssued marks an OTP delivery event.
const EventTypeOTPIssued = "otp.issued"
