package salesforce

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/knowledge-sync-api/internal/config"
)

// Authenticator exchanges stored Salesforce credentials for a short-lived
// bearer token via the OAuth2 password grant.
type Authenticator struct {
	cfg *config.SalesforceConfig
	log zerolog.Logger
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(cfg *config.SalesforceConfig, log zerolog.Logger) *Authenticator {
	return &Authenticator{
		cfg: cfg,
		log: log.With().Str("client", "salesforce-auth").Logger(),
	}
}

// Authenticate performs the password-grant exchange and returns the access
// token. The token is valid for the remainder of the run only; it is never
// persisted or refreshed.
func (a *Authenticator) Authenticate(ctx context.Context) (string, error) {
	conf := &oauth2.Config{
		ClientID:     a.cfg.ClientID,
		ClientSecret: a.cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  a.cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	// Salesforce requires the security token appended directly to the
	// password, in that order, with no separator.
	password := a.cfg.Password + a.cfg.SecurityToken

	token, err := conf.PasswordCredentialsToken(ctx, a.cfg.Username, password)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access_token")
	}

	a.log.Debug().Msg("Salesforce access token issued")
	return token.AccessToken, nil
}
