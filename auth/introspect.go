// auth/introspect.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	app_errors "github.com/nmhung1294/INT3505E-02-demo/errors"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
)

const defaultIntrospectionTimeout = 5 * time.Second

// IntrospectionConfig parameterizes the RFC 7662 token introspection call.
type IntrospectionConfig struct {
	URL          string
	ClientID     string
	ClientSecret string
	SubjectField string
	Timeout      time.Duration
}

// IntrospectionStrategy delegates token verification to a remote
// authorization server. The outbound call is the only suspension point in
// the gate and is bounded by the client timeout; no shared lock is held
// while it is in flight.
type IntrospectionStrategy struct {
	cfg       IntrospectionConfig
	client    *http.Client
	directory Directory
}

func NewIntrospectionStrategy(cfg IntrospectionConfig, directory Directory) *IntrospectionStrategy {
	if cfg.SubjectField == "" {
		cfg.SubjectField = "sub"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultIntrospectionTimeout
	}
	return &IntrospectionStrategy{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		directory: directory,
	}
}

func (s *IntrospectionStrategy) Resolve(ctx context.Context, credential string) (*model.User, error) {
	if s.cfg.URL == "" {
		return nil, reject(ReasonNotConfigured, http.StatusInternalServerError,
			"OAuth2 introspection URL not configured", nil)
	}

	form := url.Values{"token": {credential}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, reject(ReasonIntrospectionUnreachable, http.StatusBadGateway,
			"Introspection request failed", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	// Basic auth only when both credentials are present, never partially.
	if s.cfg.ClientID != "" && s.cfg.ClientSecret != "" {
		req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("Introspection endpoint unreachable",
			zap.String("url", s.cfg.URL), zap.Error(err))
		return nil, reject(ReasonIntrospectionUnreachable, http.StatusBadGateway,
			"Introspection request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, reject(ReasonIntrospectionFailed, http.StatusUnauthorized,
			"Token introspection failed", nil)
	}

	var info map[string]interface{}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&info); err != nil {
		return nil, reject(ReasonMalformedIntrospectionResponse, http.StatusBadGateway,
			"Invalid JSON from introspection endpoint", err)
	}

	if active, _ := info["active"].(bool); !active {
		return nil, reject(ReasonTokenInactive, http.StatusUnauthorized, "Token inactive", nil)
	}

	subject := subjectString(info[s.cfg.SubjectField])
	if subject == "" {
		return nil, reject(ReasonSubjectFieldMissing, http.StatusUnauthorized,
			"User id not present in introspection response", nil)
	}

	user, err := s.directory.FindUserBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			return nil, reject(ReasonPrincipalNotFound, http.StatusUnauthorized, "User not found", err)
		}
		return nil, err
	}

	return user, nil
}

// subjectString renders the configured subject field as a string. Servers
// return either a string or a JSON number here.
func subjectString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return ""
	}
}
