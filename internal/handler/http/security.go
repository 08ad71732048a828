package http

import (
	"net/http"
	"strings"
)

// CSPPolicy is a Content-Security-Policy built directive by directive.
// Directives are emitted in the order they were first set.
type CSPPolicy struct {
	order      []string
	directives map[string][]string
	ReportOnly bool
}

// NewCSPPolicy returns an empty policy.
func NewCSPPolicy() *CSPPolicy {
	return &CSPPolicy{directives: make(map[string][]string)}
}

// Set replaces the sources of directive, e.g. Set("default-src", "'none'").
func (p *CSPPolicy) Set(directive string, sources ...string) *CSPPolicy {
	if _, ok := p.directives[directive]; !ok {
		p.order = append(p.order, directive)
	}
	p.directives[directive] = sources
	return p
}

// String renders the header value.
func (p *CSPPolicy) String() string {
	parts := make([]string, 0, len(p.order))
	for _, d := range p.order {
		if srcs := p.directives[d]; len(srcs) > 0 {
			parts = append(parts, d+" "+strings.Join(srcs, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName is the enforcing or report-only header name.
func (p *CSPPolicy) HeaderName() string {
	if p.ReportOnly {
		return "Content-Security-Policy-Report-Only"
	}
	return "Content-Security-Policy"
}

// APIPolicy is the policy for JSON responses: nothing may be loaded or
// framed. Article HTML is rendered by the front end under its own policy.
func APIPolicy() *CSPPolicy {
	return NewCSPPolicy().
		Set("default-src", "'none'").
		Set("frame-ancestors", "'none'").
		Set("base-uri", "'none'").
		Set("form-action", "'none'")
}

// SecurityHeaders sets policy and the usual hardening headers on every
// response.
func SecurityHeaders(policy *CSPPolicy) func(http.Handler) http.Handler {
	name, value := policy.HeaderName(), policy.String()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(name, value)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}
