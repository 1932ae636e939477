package mockserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// Response describes what a mocked route returns.
type Response struct {
	// Status is the HTTP status code (0 means 200)
	Status int

	// JSON is marshaled as the response body when Body is empty
	JSON interface{}

	// Body is the raw response body; takes precedence over JSON
	Body []byte

	// ContentType overrides the content type (default application/json)
	ContentType string

	// Headers are extra response headers
	Headers map[string]string

	// Delay is an artificial latency applied before responding
	Delay time.Duration
}

// RecordedRequest captures one request the server received.
type RecordedRequest struct {
	Method     string
	Path       string
	Query      url.Values
	Header     http.Header
	Body       []byte
	ReceivedAt time.Time

	// Matched is the pattern of the rule that served this request,
	// empty when no rule matched.
	Matched string
}

// rule binds a method and path pattern to a canned response.
type rule struct {
	method   string
	pattern  string
	literal  bool
	matcher  glob.Glob
	response Response
}

// newRule compiles a pattern into a rule. Patterns without glob
// metacharacters are matched literally.
func newRule(method, pattern string, resp Response) (*rule, error) {
	if pattern == "" || !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("pattern must be an absolute path, got %q", pattern)
	}

	r := &rule{
		method:   strings.ToUpper(method),
		pattern:  pattern,
		response: resp,
	}

	if !strings.ContainsAny(pattern, "*?[{") {
		r.literal = true
		return r, nil
	}

	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	r.matcher = matcher
	return r, nil
}

// matches reports whether the rule serves the given method and path.
func (r *rule) matches(method, path string) bool {
	if r.method != strings.ToUpper(method) {
		return false
	}
	if r.literal {
		return r.pattern == path
	}
	return r.matcher.Match(path)
}
