package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/medesi/portal/internal/client/client"
	"github.com/medesi/portal/internal/logging"
)

// Route is where the app-entry gate sends the user.
type Route string

const (
	RouteAuth Route = "auth"
	RouteMain Route = "main"
)

// SessionInfo describes the stored session. Subject and ExpiresAt are read
// from the token without verifying it and are zero for opaque tokens.
type SessionInfo struct {
	Authenticated bool
	Subject       string
	ExpiresAt     time.Time
}

// Expired reports whether the token claims an expiry in the past.
func (s SessionInfo) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// AuthService defines the authentication flow.
//
// Contract:
//   - Login: exchange credentials for a token and store it; on any failure
//     the stored token is left untouched.
//   - RequestPasswordReset: ask the server to mail a reset link.
//   - Entry: route to RouteMain when a token is stored, RouteAuth otherwise,
//     without contacting the server.
//   - Session: describe the stored token.
//   - Logout: forget the token and the cached profile.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	RequestPasswordReset(ctx context.Context, email string) error
	Entry(ctx context.Context) (Route, error)
	Session(ctx context.Context) (SessionInfo, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  CredentialStore
	logger logging.Logger
}

func NewAuthService(c client.Client, store CredentialStore, logger logging.Logger) AuthService {
	return &authService{client: c, store: store, logger: logger}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "email", email, "error", err)
		return err
	}
	if err := a.store.SetToken(ctx, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	a.logger.Info(ctx, "logged in", "email", email)
	return nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := a.client.ForgotPassword(ctx, email); err != nil {
		a.logger.Warn(ctx, "password reset failed", "email", email, "error", err)
		return err
	}
	a.logger.Info(ctx, "password reset requested", "email", email)
	return nil
}

func (a *authService) Entry(ctx context.Context) (Route, error) {
	token, err := a.store.Token(ctx)
	if err != nil {
		return RouteAuth, err
	}
	if token == "" {
		return RouteAuth, nil
	}
	return RouteMain, nil
}

func (a *authService) Session(ctx context.Context) (SessionInfo, error) {
	token, err := a.store.Token(ctx)
	if err != nil || token == "" {
		return SessionInfo{}, err
	}

	info := SessionInfo{Authenticated: true}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		a.logger.Debug(ctx, "session token is not a JWT", "error", err)
		return info, nil
	}
	info.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	a.logger.Info(ctx, "logged out")
	return nil
}
