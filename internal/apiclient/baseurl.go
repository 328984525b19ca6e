package apiclient

import "strings"

// DefaultBaseURL is used in development and as the last resort.
const DefaultBaseURL = "http://localhost:8080"

// BaseURLOptions describes where a base URL may come from, in priority order.
type BaseURLOptions struct {
	// Configured is the explicitly supplied value (e.g. VITE_API_BASE_URL).
	Configured string
	// Development selects DefaultBaseURL when nothing is configured.
	Development bool
	// Origin is the portal's own public origin.
	Origin string
}

// ResolveBaseURL picks the API root: configured value, development default,
// page origin, then DefaultBaseURL. A single trailing slash is removed from the
// configured value.
func ResolveBaseURL(opts BaseURLOptions) string {
	if v := strings.TrimSpace(opts.Configured); v != "" {
		return strings.TrimSuffix(v, "/")
	}
	if opts.Development {
		return DefaultBaseURL
	}
	if o := strings.TrimSpace(opts.Origin); o != "" {
		return o
	}
	return DefaultBaseURL
}
