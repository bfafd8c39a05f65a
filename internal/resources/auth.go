package resources

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/config"
	"github.com/eliteresort/resortadmin/internal/session"
)

// ErrBadCredentials is returned when the local fallback rejects a login.
var ErrBadCredentials = errors.New("invalid email or password")

// Admin is the authenticated identity returned by a successful login.
type Admin struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthClient performs login, logout and profile checks, writing the
// session store on success.
type AuthClient struct {
	c       *apiclient.Client
	session *session.Store

	loginPath  string
	logoutPath string
	mePath     string

	// Local fallback credentials, used when configured instead of the
	// backend. Hash is bcrypt.
	localEmail string
	localHash  string
}

// NewAuthClient builds the auth client against the configured paths.
func NewAuthClient(c *apiclient.Client, store *session.Store, cfg *config.Config) *AuthClient {
	return &AuthClient{
		c:          c,
		session:    store,
		loginPath:  cfg.API.LoginEndpoint(),
		logoutPath: cfg.API.Path(config.PathLogout),
		mePath:     cfg.API.Path(config.PathMe),
		localEmail: cfg.LocalAdminEmail,
		localHash:  cfg.LocalAdminHash,
	}
}

type loginResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// Login authenticates against the backend (or the local fallback when one
// is configured) and writes the session on success. A 401 on this path
// never clears existing session state; the client exempts the login
// endpoint from its interceptor.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*Admin, error) {
	if a.localHash != "" {
		return a.localLogin(ctx, email, password)
	}

	raw, err := a.c.Post(ctx, a.loginPath, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return nil, errors.New("login response missing token")
	}
	if resp.Admin.Email == "" {
		resp.Admin.Email = email
	}

	if err := a.session.SetSession(ctx, resp.Token, &session.Extra{Email: resp.Admin.Email}); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &resp.Admin, nil
}

// localLogin checks the configured bcrypt credentials and mints a local
// expiring token so the rest of the session lifecycle behaves the same as
// with a backend-issued one.
func (a *AuthClient) localLogin(ctx context.Context, email, password string) (*Admin, error) {
	if email != a.localEmail {
		return nil, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.localHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("mint local token: %w", err)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"iss":  "resortadmin-local",
		"exp":  time.Now().Add(12 * time.Hour).Unix(),
	}).SignedString(secret)
	if err != nil {
		return nil, fmt.Errorf("mint local token: %w", err)
	}

	if err := a.session.SetSession(ctx, token, &session.Extra{Email: email}); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &Admin{Email: email, Role: "admin"}, nil
}

// Logout tells the backend best-effort and always clears the session.
func (a *AuthClient) Logout(ctx context.Context) error {
	if a.localHash == "" {
		// The session is cleared regardless of what the backend says.
		_, _ = a.c.Post(ctx, a.logoutPath, nil)
	}
	return a.session.ClearSession(ctx)
}

// Me fetches the current admin profile, verifying the session against the
// backend.
func (a *AuthClient) Me(ctx context.Context) (Record, error) {
	raw, err := a.c.Get(ctx, a.mePath, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeOne(raw, "admin"), nil
}
