package sdmx

import "errors"

// Error kinds surfaced by the client. Callers match them with errors.Is.
var (
	// ErrInvalidConfiguration reports a base URL that is not a valid absolute URL.
	ErrInvalidConfiguration = errors.New("sdmx: invalid configuration")

	// ErrInvalidArgument reports a bad resource type or malformed key, raised before any network call.
	ErrInvalidArgument = errors.New("sdmx: invalid argument")

	// ErrTransport reports a connection, DNS, or TLS failure. Non-2xx statuses are not errors.
	ErrTransport = errors.New("sdmx: transport failure")
)
