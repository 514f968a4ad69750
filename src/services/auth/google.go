package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleOptions configures sign-in with a Google account. Only accounts that already exist
// are let in; Google never creates users.
type GoogleOptions struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// GoogleUserInfo is the subset of the userinfo response we read.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

type GoogleLogin struct {
	svc         *Service
	conf        *oauth2.Config
	userInfoURL string
}

func NewGoogleLogin(svc *Service, opts GoogleOptions) *GoogleLogin {
	return &GoogleLogin{
		svc: svc,
		conf: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

// AuthCodeURL is where the browser is sent to consent.
func (g *GoogleLogin) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for Google's user info and logs the matching account in.
func (g *GoogleLogin) Exchange(ctx context.Context, code string) (*LoginResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, utils.BadRequest("Missing authorization code")
	}
	tok, err := g.conf.Exchange(ctx, code)
	if err != nil {
		logger.Log.Warn("google token exchange failed", zap.Error(err))
		return nil, utils.Unauthorized("Google sign-in failed")
	}

	info, err := g.userInfo(ctx, tok)
	if err != nil {
		return nil, utils.Internal(err)
	}
	if !info.VerifiedEmail {
		return nil, utils.Unauthorized("Google account email is not verified")
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	user, err := g.svc.accounts.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, utils.Forbidden("This Google account is not registered. Please contact your school administrator")
		}
		return nil, utils.Internal(err)
	}

	res, err := g.svc.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("🔐 google login", zap.String("email", email), zap.String("kind", string(res.Principal.Kind)))
	return res, nil
}

func (g *GoogleLogin) userInfo(ctx context.Context, tok *oauth2.Token) (*GoogleUserInfo, error) {
	resp, err := g.conf.Client(ctx, tok).Get(g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("get google user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get google user info: status %d", resp.StatusCode)
	}
	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode google user info: %w", err)
	}
	return &info, nil
}
