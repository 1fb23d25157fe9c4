// Package google implements the FederationProvider interface for Google Sign-In.
package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"habitly/config"
	"habitly/internal/domain/entity"
	"habitly/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	googleOAuthURL    = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	stateTTL = 10 * time.Minute
)

// federationProvider handles the Google OAuth handshake in both its
// authorization-code and ID-token forms.
type federationProvider struct {
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       string
	httpClient   *http.Client

	// State storage for CSRF protection
	stateStore map[string]time.Time
	stateMutex sync.Mutex
}

// NewFederationProvider creates a new Google federation provider.
func NewFederationProvider(cfg *config.Config) (service.FederationProvider, error) {
	if cfg.GoogleOAuth == nil {
		return nil, errors.New("google oauth configuration is missing")
	}

	return &federationProvider{
		clientID:     cfg.GoogleOAuth.ClientID,
		clientSecret: cfg.GoogleOAuth.ClientSecret,
		redirectURI:  cfg.GoogleOAuth.RedirectURI,
		scopes:       cfg.GoogleOAuth.Scopes,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		stateStore:   make(map[string]time.Time),
	}, nil
}

// NewState generates a cryptographically secure random state string.
func NewState() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// BuildAuthorizationURL constructs the Google OAuth authorization URL with a
// state parameter for CSRF protection.
func (p *federationProvider) BuildAuthorizationURL(state string) string {
	p.storeState(state)

	params := url.Values{}
	params.Set("client_id", p.clientID)
	params.Set("redirect_uri", p.redirectURI)
	params.Set("scope", p.scopes)
	params.Set("response_type", "code")
	params.Set("state", state)

	return googleOAuthURL + "?" + params.Encode()
}

// storeState stores a state parameter with an expiration time and prunes
// expired entries while holding the lock.
func (p *federationProvider) storeState(state string) {
	p.stateMutex.Lock()
	defer p.stateMutex.Unlock()

	now := time.Now()
	p.stateStore[state] = now.Add(stateTTL)

	for s, expiry := range p.stateStore {
		if now.After(expiry) {
			delete(p.stateStore, s)
		}
	}
}

// ValidateState validates and consumes a state parameter. A state is
// single-use to prevent replay.
func (p *federationProvider) ValidateState(state string) bool {
	p.stateMutex.Lock()
	defer p.stateMutex.Unlock()

	expiry, exists := p.stateStore[state]
	if !exists {
		return false
	}
	delete(p.stateStore, state)

	return time.Now().Before(expiry)
}

// Provider returns the OAuth provider type.
func (p *federationProvider) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// Exchange trades an authorization code for the provider's identity claims:
// code -> provider access token -> userinfo.
func (p *federationProvider) Exchange(ctx context.Context, code string) (*entity.FederatedIdentity, error) {
	accessToken, err := p.exchangeCodeForToken(ctx, code)
	if err != nil {
		return nil, err
	}

	return p.fetchUserInfo(ctx, accessToken)
}

// exchangeCodeForToken exchanges an authorization code for an access token.
func (p *federationProvider) exchangeCodeForToken(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", p.clientID)
	data.Set("client_secret", p.clientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", p.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to exchange code for token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return "", errors.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}

	return tokenResponse.AccessToken, nil
}

// fetchUserInfo retrieves the identity claims using a provider access token.
func (p *federationProvider) fetchUserInfo(ctx context.Context, accessToken string) (*entity.FederatedIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, errors.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var googleUser struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		Name          string `json:"name"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	if googleUser.Email == "" {
		return nil, errors.New("provider response is missing the email attribute")
	}

	return &entity.FederatedIdentity{
		Provider:    entity.ProviderTypeGoogle,
		ProviderID:  googleUser.ID,
		Email:       googleUser.Email,
		DisplayName: googleUser.Name,
	}, nil
}
