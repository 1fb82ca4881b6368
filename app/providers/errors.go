package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
)

func errMissingKey(name string) error {
	return fmt.Errorf("%s environment variable is not set", name)
}

// classifyTransportError maps a failed remote call onto the human-readable
// reason carried by a degraded bundle. Timeouts, connection failures and
// remote rejections are reported as distinct conditions.
func classifyTransportError(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "request timed out"
	default:
		return "connection failed: " + err.Error()
	}
}
