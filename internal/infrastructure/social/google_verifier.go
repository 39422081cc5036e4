package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tarzan-1984/odyssea-beckend-sub001/domain"
)

const ProviderGoogle = "google"

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleVerifierImpl implements domain.SocialVerifier against Google's
// OAuth2 endpoints. Provider tokens are consumed in-flight and never
// persisted.
type GoogleVerifierImpl struct {
	oauth       *oauth2.Config
	userinfoURL string
}

// NewGoogleVerifier creates a new Google social verifier
func NewGoogleVerifier(clientID, clientSecret, redirectURL string) domain.SocialVerifier {
	return &GoogleVerifierImpl{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userinfoURL: googleUserinfoURL,
	}
}

type googleUserinfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verify implements domain.SocialVerifier. The artifact carries either an
// authorization code to exchange or an access token issued by the
// provider directly.
func (v *GoogleVerifierImpl) Verify(ctx context.Context, artifact domain.SocialArtifact) (*domain.SocialIdentity, error) {
	if artifact.Provider != ProviderGoogle {
		return nil, fmt.Errorf("%w: unsupported provider %q", domain.ErrProviderExchangeFailed, artifact.Provider)
	}

	token := &oauth2.Token{AccessToken: artifact.AccessToken}
	if artifact.AccessToken == "" {
		exchanged, err := v.oauth.Exchange(ctx, artifact.Code)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrProviderExchangeFailed, err)
		}
		token = exchanged
	}

	info, err := v.fetchUserinfo(ctx, token)
	if err != nil {
		return nil, err
	}

	return &domain.SocialIdentity{
		Provider:  ProviderGoogle,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	}, nil
}

func (v *GoogleVerifierImpl) fetchUserinfo(ctx context.Context, token *oauth2.Token) (*googleUserinfo, error) {
	client := v.oauth.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderExchangeFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned status %d", domain.ErrProviderExchangeFailed, resp.StatusCode)
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderTokenMalformed, err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("%w: identity has no email claim", domain.ErrProviderTokenMalformed)
	}

	return &info, nil
}
