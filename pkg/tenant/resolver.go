package tenant

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Resolution strategy kinds recognized in configuration.
const (
	StrategyStatic = "static"
	StrategyHost   = "host"
	StrategyHeader = "header"
)

const (
	// MaxIdentifierLength keeps identifiers DNS-compatible and bounds
	// attacker-controlled input.
	MaxIdentifierLength = 63
)

// identifierPattern matches DNS-safe slugs: alphanumeric start, hyphens allowed.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// ValidIdentifier reports whether id is a well-formed tenant identifier.
func ValidIdentifier(id string) bool {
	if id == "" || len(id) > MaxIdentifierLength {
		return false
	}
	return identifierPattern.MatchString(id)
}

// Resolver extracts a tenant identifier from an HTTP request.
// Returns empty string if the request carries no tenant identifier,
// error if extraction failed. Resolution is read-only: it never touches
// the cache or the store.
type Resolver func(r *http.Request) (string, error)

// Config selects the resolution strategy for a deployment.
// With IsMultiTenant disabled every request resolves to DefaultIdentifier
// no matter which strategy is configured.
type Config struct {
	IsMultiTenant     bool   `env:"IS_MULTI_TENANT" envDefault:"false"`
	Strategy          string `env:"TENANT_STRATEGY" envDefault:"static"`
	DefaultIdentifier string `env:"TENANT_DEFAULT_IDENTIFIER" envDefault:""`
	HeaderName        string `env:"TENANT_HEADER_NAME" envDefault:"X-Tenant-ID"`
	HostSuffix        string `env:"TENANT_HOST_SUFFIX" envDefault:""`
}

// FromConfig builds the resolver for the configured deployment mode.
// Single-tenant mode short-circuits to a static resolver at construction
// time so the strategy implementations stay free of mode conditionals.
func FromConfig(cfg Config) (Resolver, error) {
	if !cfg.IsMultiTenant {
		if !ValidIdentifier(cfg.DefaultIdentifier) {
			return nil, fmt.Errorf("%w: single-tenant mode requires a default identifier", ErrInvalidIdentifier)
		}
		return NewStaticResolver(cfg.DefaultIdentifier), nil
	}

	switch cfg.Strategy {
	case StrategyStatic:
		if !ValidIdentifier(cfg.DefaultIdentifier) {
			return nil, fmt.Errorf("%w: static strategy requires a default identifier", ErrInvalidIdentifier)
		}
		return NewStaticResolver(cfg.DefaultIdentifier), nil
	case StrategyHost:
		return NewHostResolver(cfg.HostSuffix), nil
	case StrategyHeader:
		return NewHeaderResolver(cfg.HeaderName), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
	}
}

// NewStaticResolver resolves every request to the same fixed identifier.
// Used for single-tenant deployments and the static strategy.
func NewStaticResolver(identifier string) Resolver {
	return func(*http.Request) (string, error) {
		return identifier, nil
	}
}

// NewHostResolver extracts the tenant identifier from the first label of
// the request host, optionally stripping a configured suffix first.
// Returns empty string for the base domain (no subdomain present).
func NewHostResolver(suffix string) Resolver {
	return func(req *http.Request) (string, error) {
		host := req.Host

		// Drop the port if present
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}

		originalParts := strings.Split(host, ".")

		if suffix != "" && strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			host = host[:len(host)-len(suffix)]
		}

		parts := strings.Split(host, ".")
		if len(parts) == 0 || parts[0] == "" {
			return "", nil
		}

		label := parts[0]
		// Skip the www prefix, use the next label if available
		if label == "www" {
			if len(parts) < 2 {
				return "", nil
			}
			label = parts[1]
		}

		// A real subdomain needs at least label.domain.tld
		if len(originalParts) < 3 {
			return "", nil
		}

		label = strings.TrimSpace(label)
		if !ValidIdentifier(label) {
			return "", fmt.Errorf("%w: host label %q", ErrInvalidIdentifier, label)
		}
		return label, nil
	}
}

// NewHeaderResolver extracts the tenant identifier from a named HTTP
// header. Defaults to "X-Tenant-ID" when headerName is empty.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = "X-Tenant-ID"
	}

	return func(req *http.Request) (string, error) {
		value := strings.TrimSpace(req.Header.Get(headerName))
		if value == "" {
			return "", nil
		}
		if !ValidIdentifier(value) {
			return "", fmt.Errorf("%w: header value %q", ErrInvalidIdentifier, value)
		}
		return value, nil
	}
}
