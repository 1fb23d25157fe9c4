// Package lifecycle holds process lifecycle constants shared by delivery servers.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of delivery servers.
const DefaultTimeout = 10 * time.Second
