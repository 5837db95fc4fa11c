package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"pkdindustries/bytebot/internal/config"
)

const refreshTimeout = 15 * time.Second

// Refresher exchanges a long-lived refresh token for a fresh chat access
// token before the bot connects.
type Refresher struct {
	oauth   oauth2.Config
	httpCli *http.Client
	logger  *zap.SugaredLogger
}

func NewRefresher(auth *config.AuthConfig, logger *zap.SugaredLogger) *Refresher {
	tokenURL := auth.TokenURL
	if tokenURL == "" {
		tokenURL = config.DefaultTokenURL
	}
	return &Refresher{
		oauth: oauth2.Config{
			ClientID:     auth.ClientID,
			ClientSecret: auth.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpCli: &http.Client{Timeout: refreshTimeout},
		logger:  logger,
	}
}

// Refresh returns a new token pair. The provider may rotate the refresh
// token; callers should keep the returned one.
func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, errors.New("refresh token is empty")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpCli)
	start := time.Now()
	tok, err := r.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing access token: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, errors.New("refreshing access token: empty access token in response")
	}

	r.logger.Infow("token_refreshed",
		"expiry", tok.Expiry,
		"rotated", tok.RefreshToken != refreshToken,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return tok, nil
}

// Apply refreshes when auth carries what is needed and stores the result
// back into auth. With no refresh credentials the configured access token is
// used as is.
func (r *Refresher) Apply(ctx context.Context, auth *config.AuthConfig) error {
	if !auth.CanRefresh() {
		r.logger.Debugw("token_refresh_skipped", "reason", "no refresh credentials")
		return nil
	}
	tok, err := r.Refresh(ctx, auth.RefreshToken)
	if err != nil {
		return err
	}
	auth.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		auth.RefreshToken = tok.RefreshToken
	}
	return nil
}
