// File: utils/constants.go
package utils

import "time"

// SeedLockKey is the Redis key guarding concurrent import runs.
const SeedLockKey = "bookingdesk:seed:lock"

// HealthCheckInterval is how often the dashboard server re-checks its store.
const HealthCheckInterval = 60 * time.Second
