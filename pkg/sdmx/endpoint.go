package sdmx

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// EnvAPIURL is the environment variable overriding the default Widukind API base URL.
const EnvAPIURL = "WIDUKIND_API_URL"

// DefaultAPIURL is the built-in Widukind API base URL.
const DefaultAPIURL = "https://api.db.nomics.world/api/v1/sdmx"

// ResolveBaseURL returns the effective API base URL: the explicit override if
// non-empty, else the WIDUKIND_API_URL environment value if set, else the
// built-in default. The environment is read once here, at construction time.
func ResolveBaseURL(override string) (string, error) {
	base := strings.TrimSpace(override)
	if base == "" {
		base = strings.TrimSpace(os.Getenv(EnvAPIURL))
	}
	if base == "" {
		base = DefaultAPIURL
	}
	if err := validateBaseURL(base); err != nil {
		return "", err
	}
	return strings.TrimRight(base, "/"), nil
}

// validateBaseURL rejects values that are not absolute http(s) URLs.
func validateBaseURL(base string) error {
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("%w: parse base URL %q: %v", ErrInvalidConfiguration, base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base URL %q must use http or https", ErrInvalidConfiguration, base)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: base URL %q has no host", ErrInvalidConfiguration, base)
	}
	return nil
}
