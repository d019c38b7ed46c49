package tenantctx

import "strings"

// Config holds the paths the context middleware redirects to and the
// routes exempt from the tenant-context requirement.
type Config struct {
	// CreatePath is where users without any eligible tenant are sent.
	CreatePath string `env:"TENANT_CREATE_PATH" envDefault:"/workspaces/create"`

	// DefaultPath is the landing page for denied or mismatched requests.
	DefaultPath string `env:"TENANT_DEFAULT_PATH" envDefault:"/dashboard"`

	// ExemptPathPrefixes are request paths that never require a tenant
	// context (the tenant creation and listing endpoints themselves).
	ExemptPathPrefixes []string `env:"TENANT_EXEMPT_PATHS" envSeparator:"," envDefault:"/workspaces"`
}

// DefaultConfig returns the default middleware configuration.
func DefaultConfig() Config {
	return Config{
		CreatePath:         "/workspaces/create",
		DefaultPath:        "/dashboard",
		ExemptPathPrefixes: []string{"/workspaces"},
	}
}

// isExempt matches the path against the exempt prefixes on path-segment
// boundaries, so "/workspaces" covers "/workspaces/create" but not
// "/workspaces-archive".
func (c Config) isExempt(path string) bool {
	for _, prefix := range c.ExemptPathPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
