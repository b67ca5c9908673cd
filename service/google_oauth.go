package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/nmhung1294/INT3505E-02-demo/errors"
	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"go.uber.org/zap"
)

const (
	googleAuthEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenEndpoint    = "https://oauth2.googleapis.com/token"
	googleUserinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleOAuth drives the authorization-code flow against Google's
// OAuth 2.0 endpoints.
type GoogleOAuth struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	client *http.Client
}

// GoogleUserInfo is the subset of the userinfo response the API uses.
type GoogleUserInfo struct {
	Sub   string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewGoogleOAuth(clientID, clientSecret, redirectURI string, scopes []string) *GoogleOAuth {
	return &GoogleOAuth{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		Scopes:       scopes,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GoogleOAuth) configured() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURI != ""
}

// AuthCodeURL builds the consent-screen URL the client is redirected to.
func (g *GoogleOAuth) AuthCodeURL() (string, error) {
	if !g.configured() {
		return "", apperrors.ErrGoogleNotConfigured
	}
	params := url.Values{}
	params.Set("client_id", g.ClientID)
	params.Set("redirect_uri", g.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", strings.Join(g.Scopes, " "))
	params.Set("access_type", "offline")
	return googleAuthEndpoint + "?" + params.Encode(), nil
}

// FetchUserInfo exchanges an authorization code for an access token and
// fetches the profile it grants.
func (g *GoogleOAuth) FetchUserInfo(ctx context.Context, code string) (*GoogleUserInfo, error) {
	if !g.configured() {
		return nil, apperrors.ErrGoogleNotConfigured
	}

	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", g.ClientID)
	form.Set("client_secret", g.ClientSecret)
	form.Set("redirect_uri", g.RedirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error("Google token exchange failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Error("Google token exchange rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("google token exchange returned status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decoding google token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("google token response carried no access token")
	}

	return g.fetchProfile(ctx, tokenResp.AccessToken)
}

func (g *GoogleOAuth) fetchProfile(ctx context.Context, accessToken string) (*GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserinfoEndpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding google userinfo response: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google userinfo carried no email")
	}
	if info.Name == "" {
		info.Name = info.Email
	}
	return &info, nil
}
