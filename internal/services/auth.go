package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/desertthunder/dcx/internal/shared"
)

const loginPath = "/ccadmin/v1/login"

// loginResponse is the token payload returned by the login endpoint.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// loginTokenSource exchanges an application key for an access token.
//
// Wrap it in [oauth2.ReuseTokenSource] so the exchange only happens when the previous token expired.
type loginTokenSource struct {
	ctx     context.Context
	baseURL string
	appKey  string
	client  *http.Client
}

func newLoginTokenSource(ctx context.Context, baseURL, appKey string, client *http.Client) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &loginTokenSource{
		ctx:     ctx,
		baseURL: baseURL,
		appKey:  appKey,
		client:  client,
	})
}

// Token implements [oauth2.TokenSource].
func (s *loginTokenSource) Token() (*oauth2.Token, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.appKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: login request failed: %w", shared.ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: login returned status %d", shared.ErrAuthFailed, resp.StatusCode)
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("%w: failed to decode login response: %w", shared.ErrAuthFailed, err)
	}
	if lr.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response has no access token", shared.ErrAuthFailed)
	}

	token := &oauth2.Token{AccessToken: lr.AccessToken, TokenType: "Bearer"}
	if lr.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(lr.ExpiresIn) * time.Second)
	}
	return token, nil
}
