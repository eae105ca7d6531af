// Package services contains the application services of the patient CLI:
// the auth flow (login, password reset, app-entry gate, logout) and the
// session/profile sync.
package services

import (
	"context"
	"errors"

	"github.com/medesi/portal/internal/client/models"
)

// ErrNoToken is returned by authenticated operations when no session token
// is stored.
var ErrNoToken = errors.New("not logged in")

// CredentialStore is the part of credentials.Store the services use.
type CredentialStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	Clear(ctx context.Context) error

	CacheProfileFields(ctx context.Context, fields map[string]any) error
	SaveUser(ctx context.Context, u *models.User) error
	SaveMedicalRecord(ctx context.Context, m *models.MedicalRecord) error
	CachedUser(ctx context.Context) (*models.User, error)
	CachedMedicalRecord(ctx context.Context) (*models.MedicalRecord, error)
}
