package meli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marroking/internal/config"
	"marroking/internal/logger"
)

// ErrAuthExchange marks a token exchange whose response carried no access
// token, whatever the HTTP status was.
var ErrAuthExchange = errors.New("meli auth exchange failed")

type OAuthService struct {
	config     *config.Config
	logger     *logger.Logger
	httpClient *http.Client
}

func NewOAuthService(cfg *config.Config, logger *logger.Logger) *OAuthService {
	return &OAuthService{
		config: cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ExchangeCodeForToken exchanges the authorization code for an access token
// and the remote account id.
func (s *OAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*TokenResponse, error) {
	tokenURL := fmt.Sprintf("%s/oauth/token", s.config.MeliAPIURL)

	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", s.config.MeliClientID)
	data.Set("client_secret", s.config.MeliClientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", s.config.MeliRedirectURI)

	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	// The API may answer 200 with an error body; the missing token is the
	// authoritative failure signal.
	if tokenResp.AccessToken == "" {
		if tokenResp.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrAuthExchange, tokenResp.Message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrAuthExchange, resp.StatusCode)
	}

	return &tokenResp, nil
}
