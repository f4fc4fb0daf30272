// Package lifecycle holds process-wide lifecycle settings shared by fx hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start-up pings and graceful shutdowns.
const DefaultTimeout = 10 * time.Second
