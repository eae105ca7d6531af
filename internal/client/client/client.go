package client

import (
	"context"

	"github.com/medesi/portal/internal/client/models"
)

// Client is the patient portal API. Methods taking a token send it as a
// bearer credential. The Async variants return immediately and call done
// exactly once from another goroutine.
type Client interface {
	// Login returns the session token issued for the credentials.
	Login(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) error

	GetMe(ctx context.Context, token string) (*models.User, error)
	GetMeAsync(ctx context.Context, token string, done func(*models.User, error))
	UpdateMe(ctx context.Context, token string, update models.ProfileUpdate) error

	GetMedicalRecord(ctx context.Context, token string) (*models.MedicalRecord, error)
	GetMedicalRecordAsync(ctx context.Context, token string, done func(*models.MedicalRecord, error))
}
