// auth/gate.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/nmhung1294/INT3505E-02-demo/model"
)

// Auth modes selectable through configuration
const (
	ModeJWT    = "jwt"
	ModeOAuth2 = "oauth2"
)

// Reason is the closed set of rejection causes a Gate can produce.
type Reason string

const (
	ReasonMissingCredential              Reason = "missing_credential"
	ReasonUnknownMode                    Reason = "unknown_mode"
	ReasonInvalidToken                   Reason = "invalid_token"
	ReasonInvalidSubject                 Reason = "invalid_subject"
	ReasonNotConfigured                  Reason = "not_configured"
	ReasonIntrospectionUnreachable       Reason = "introspection_unreachable"
	ReasonIntrospectionFailed            Reason = "introspection_failed"
	ReasonMalformedIntrospectionResponse Reason = "malformed_introspection_response"
	ReasonTokenInactive                  Reason = "token_inactive"
	ReasonSubjectFieldMissing            Reason = "subject_field_missing"
	ReasonPrincipalNotFound              Reason = "principal_not_found"
)

// RejectionError is the terminal outcome of a failed authentication attempt.
// Status is the HTTP status the routing layer must answer with; Message is
// safe to return to the client; Err carries the underlying cause for logs.
type RejectionError struct {
	Reason  Reason
	Status  int
	Message string
	Err     error
}

func (e *RejectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

func reject(reason Reason, status int, message string, cause error) *RejectionError {
	return &RejectionError{Reason: reason, Status: status, Message: message, Err: cause}
}

// Directory resolves principal references. It is the only collaborator the
// gate reads from; it never creates or mutates users.
type Directory interface {
	FindUserBySubject(ctx context.Context, subject string) (*model.User, error)
}

// Strategy verifies a bearer credential and resolves it to a principal.
// Implementations report failures as *RejectionError; any other error is an
// infrastructure fault the caller maps to a 500.
type Strategy interface {
	Resolve(ctx context.Context, credential string) (*model.User, error)
}

// Request is the normalized slice of an HTTP request the gate needs. The gin
// middleware builds it so the gate stays independent of the routing layer.
type Request struct {
	Path          string
	Cookies       map[string]string
	Authorization string
}

// Config selects and parameterizes the verification strategy.
type Config struct {
	Mode          string
	Secret        string
	CookieName    string
	PublicPaths   []string
	Introspection IntrospectionConfig
}

// Gate decides, per request, whether a bearer credential resolves to a
// principal. The strategy is fixed once at construction.
type Gate struct {
	strategy    Strategy
	cookieName  string
	publicPaths []string
}

// NewGate builds a Gate with the strategy named by cfg.Mode. An unknown mode
// is a configuration error surfaced at startup rather than per request.
func NewGate(cfg Config, directory Directory) (*Gate, error) {
	var strategy Strategy
	switch cfg.Mode {
	case ModeJWT:
		strategy = NewLocalStrategy([]byte(cfg.Secret), directory)
	case ModeOAuth2:
		strategy = NewIntrospectionStrategy(cfg.Introspection, directory)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "auth_token"
	}

	return &Gate{
		strategy:    strategy,
		cookieName:  cookieName,
		publicPaths: cfg.PublicPaths,
	}, nil
}

// Authenticate resolves the request's credential into a principal. Requests
// to public path prefixes pass through anonymously with a nil principal.
// Every failure is a *RejectionError except infrastructure faults from the
// directory, which propagate untouched.
func (g *Gate) Authenticate(ctx context.Context, req Request) (*model.User, error) {
	for _, prefix := range g.publicPaths {
		if strings.HasPrefix(req.Path, prefix) {
			return nil, nil
		}
	}

	credential := g.extractCredential(req)
	if credential == "" {
		return nil, reject(ReasonMissingCredential, http.StatusUnauthorized, "Missing token", nil)
	}

	if g.strategy == nil {
		return nil, reject(ReasonUnknownMode, http.StatusInternalServerError, "Unknown auth mode", nil)
	}

	return g.strategy.Resolve(ctx, credential)
}

// extractCredential prefers the auth cookie and falls back to an
// Authorization header of the exact form "Bearer <token>".
func (g *Gate) extractCredential(req Request) string {
	if token, ok := req.Cookies[g.cookieName]; ok && token != "" {
		return token
	}

	parts := strings.Split(req.Authorization, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
